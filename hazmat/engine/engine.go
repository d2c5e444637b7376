// Package engine adapts incremental hash primitives to a common interface with non-destructive finalization.
//
// An [Engine] never finalizes its own state. [Engine.Sum] and [Engine.Stream] both operate on a snapshot, so callers
// may keep absorbing input after producing output.
package engine

import (
	"crypto/md5"
	"crypto/sha256"
	"errors"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidKey is returned when a key does not have a length the primitive accepts.
	ErrInvalidKey = errors.New("engine: invalid key length")

	// ErrSeekRange is returned by [Stream.Seek] when a position cannot be represented by the primitive.
	ErrSeekRange = errors.New("engine: seek position out of range")
)

// Engine is an incremental hash primitive.
type Engine interface {
	// Write absorbs p. It never returns an error.
	io.Writer

	// Size returns the number of bytes Sum appends.
	Size() int

	// BlockSize returns the primitive's natural input block size.
	BlockSize() int

	// Sum appends Size bytes of the digest of all absorbed input to b and returns the result. The engine's state is
	// not changed.
	Sum(b []byte) []byte

	// Stream returns an output stream over a snapshot of the current state. Later writes to the engine do not affect
	// the returned stream.
	Stream() Stream

	// Extendable reports whether the primitive is an extendable-output function. Streams of fixed-length engines end
	// after Size bytes.
	Extendable() bool
}

// Stream is a seekable output stream produced by an [Engine].
type Stream interface {
	// Read reads output at the current position and advances it. Fixed-length streams return io.EOF once exhausted.
	io.Reader

	// Seek moves the current position to the absolute offset pos.
	Seek(pos uint64) error
}

// SHA256 returns an Engine for SHA-256.
func SHA256() Engine {
	return &fixed{h: sha256.New()}
}

// MD5 returns an Engine for MD5.
func MD5() Engine {
	return &fixed{h: md5.New()}
}

// BLAKE2b returns an Engine for BLAKE2b-256. A nil or empty key produces the unkeyed hash; otherwise the key must be
// at most 64 bytes and the keyed mode of RFC 7693 is used.
func BLAKE2b(key []byte) (Engine, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return &fixed{h: h}, nil
}

// fixed adapts a hash.Hash, whose Sum already leaves the running state untouched.
type fixed struct {
	h hash.Hash
}

func (f *fixed) Write(p []byte) (int, error) {
	return f.h.Write(p)
}

func (f *fixed) Size() int { return f.h.Size() }

func (f *fixed) BlockSize() int { return f.h.BlockSize() }

func (f *fixed) Sum(b []byte) []byte {
	return f.h.Sum(b)
}

func (f *fixed) Stream() Stream {
	return &digestStream{b: f.h.Sum(nil)}
}

func (f *fixed) Extendable() bool { return false }

// digestStream serves a materialized fixed-length digest.
type digestStream struct {
	b   []byte
	off uint64
}

func (d *digestStream) Read(p []byte) (int, error) {
	if d.off >= uint64(len(d.b)) {
		return 0, io.EOF
	}
	n := copy(p, d.b[d.off:])
	d.off += uint64(n)
	return n, nil
}

func (d *digestStream) Seek(pos uint64) error {
	d.off = pos
	return nil
}

var (
	_ Engine = (*fixed)(nil)
	_ Stream = (*digestStream)(nil)
)
