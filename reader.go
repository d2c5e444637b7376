package hashbridge

import (
	"errors"
	"fmt"
	"io"

	"github.com/codahale/hashbridge/hazmat/engine"
)

// ReaderState is the position of a Reader in its lifecycle.
type ReaderState uint8

const (
	// Unstarted readers have not yet materialized their output.
	Unstarted ReaderState = iota

	// Reading readers have materialized their output and have bytes remaining. Readers of extendable-output
	// algorithms never leave this state.
	Reading

	// Exhausted readers have delivered every byte of a fixed-length digest.
	Exhausted
)

func (st ReaderState) String() string {
	switch st {
	case Unstarted:
		return "unstarted"
	case Reading:
		return "reading"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("ReaderState(%d)", uint8(st))
	}
}

// Reader streams a session's output from a settable position.
//
// The output is materialized from a snapshot of the session on the first call to Fill. Updates to the session before
// then are reflected in the output; updates after then are not.
//
// A Reader does not keep its session usable: once the session is released, Fill and SetPosition return
// ErrUseAfterRelease. Discarding a Reader has no effect on its session.
type Reader struct {
	s          *Session
	out        engine.Stream // nil until the first Fill
	pos        uint64
	size       uint64
	extendable bool
}

// Fill writes the next min(len(out), remaining) bytes of output into out, advances the position by that amount, and
// returns the number of bytes written. For fixed-length digests, zero bytes written with a nil error means the reader
// is exhausted.
func (r *Reader) Fill(out []byte) (int, error) {
	if r.s.Released() {
		return 0, ErrUseAfterRelease
	}

	if r.out == nil {
		stream := r.s.e.Stream()
		if err := stream.Seek(r.pos); err != nil {
			return 0, seekError(r.pos, err)
		}
		r.out = stream
	}

	if !r.extendable {
		out = out[:min(uint64(len(out)), r.size-r.pos)]
	}
	if len(out) == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(r.out, out)
	r.pos += uint64(n)
	if err != nil {
		return n, fmt.Errorf("hashbridge: reading output: %w", err)
	}
	return n, nil
}

// Read implements io.Reader. It returns io.EOF once a fixed-length digest is exhausted.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.Fill(p)
	if err == nil && n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

// SetPosition moves the reader to the absolute offset pos of its output. For fixed-length digests, pos may be at most
// the digest size. For extendable-output algorithms any offset is accepted, except that BLAKE3 output is addressable
// only up to math.MaxInt64; a larger pos returns ErrSeekOutOfRange, from the first Fill if the reader is unstarted.
//
// BLAKE3 seeks in constant time. KT128 and SHAKE256 are sponges and reach pos by squeezing and discarding every byte
// before it, so the cost of the next Fill grows linearly with pos. Hosts must bound offsets taken from untrusted input.
func (r *Reader) SetPosition(pos uint64) error {
	if r.s.Released() {
		return ErrUseAfterRelease
	}
	if !r.extendable && pos > r.size {
		return fmt.Errorf("%w: position %d beyond %d-byte digest", ErrSeekOutOfRange, pos, r.size)
	}

	if r.out != nil {
		if err := r.out.Seek(pos); err != nil {
			return seekError(pos, err)
		}
	}
	r.pos = pos
	return nil
}

// Position returns the offset of the next byte Fill will write.
func (r *Reader) Position() uint64 { return r.pos }

// State returns the reader's lifecycle state.
func (r *Reader) State() ReaderState {
	switch {
	case r.out == nil:
		return Unstarted
	case !r.extendable && r.pos >= r.size:
		return Exhausted
	default:
		return Reading
	}
}

func seekError(pos uint64, err error) error {
	if errors.Is(err, engine.ErrSeekRange) {
		return fmt.Errorf("%w: position %d", ErrSeekOutOfRange, pos)
	}
	return fmt.Errorf("hashbridge: seeking output: %w", err)
}

var _ io.Reader = (*Reader)(nil)
