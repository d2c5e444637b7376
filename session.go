package hashbridge

import (
	"github.com/codahale/hashbridge/hazmat/engine"
)

// Session is an incremental hash computation. Its state reflects the ordered concatenation of every buffer passed to
// Update since it was created.
//
// A Session must be used by one goroutine at a time; callers that share one must serialize access to it and to its
// readers.
type Session struct {
	alg       Algorithm
	e         engine.Engine // nil once released
	size      int
	blockSize int
}

// New returns a new session for the given algorithm with no input absorbed.
//
// New returns ErrUnsupportedAlgorithm if a is not a supported algorithm, and ErrInvalidConstructionArgs if an option
// requests a key, context, or output size the algorithm does not support.
func New(a Algorithm, opts ...Option) (*Session, error) {
	e, err := newEngine(a, opts)
	if err != nil {
		return nil, err
	}
	return &Session{alg: a, e: e, size: e.Size(), blockSize: e.BlockSize()}, nil
}

// NewNamed is like New but selects the algorithm by name (see ParseAlgorithm).
func NewNamed(name string, opts ...Option) (*Session, error) {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return New(a, opts...)
}

// Algorithm returns the session's algorithm.
func (s *Session) Algorithm() Algorithm { return s.alg }

// Algo returns the name of the session's algorithm. It is valid after Release.
func (s *Session) Algo() string { return s.alg.String() }

// Size returns the number of bytes Digest writes.
func (s *Session) Size() int { return s.size }

// BlockSize returns the algorithm's natural input block size.
func (s *Session) BlockSize() int { return s.blockSize }

// Released reports whether Release has been called.
func (s *Session) Released() bool { return s.e == nil }

// Update appends p to the session's input. It does not retain p.
func (s *Session) Update(p []byte) error {
	if s.e == nil {
		return ErrUseAfterRelease
	}
	_, _ = s.e.Write(p)
	return nil
}

// Digest writes the digest of all input absorbed so far into out and returns the number of bytes written, which is
// always Size. The session is left unchanged and may be updated further.
//
// Digest returns ErrBufferTooSmall, without side effects, if out is shorter than Size.
func (s *Session) Digest(out []byte) (int, error) {
	if s.e == nil {
		return 0, ErrUseAfterRelease
	}
	if len(out) < s.size {
		return 0, bufferTooSmall(len(out), s.size)
	}
	return copy(out, s.e.Sum(out[:0])), nil
}

// Sum appends the digest of all input absorbed so far to b and returns the resulting slice. The session is left
// unchanged.
func (s *Session) Sum(b []byte) ([]byte, error) {
	if s.e == nil {
		return b, ErrUseAfterRelease
	}
	return s.e.Sum(b), nil
}

// Reader returns a new reader over the session's output. The reader reflects the session's input as of its first
// Fill.
func (s *Session) Reader() (*Reader, error) {
	if s.e == nil {
		return nil, ErrUseAfterRelease
	}
	return &Reader{s: s, size: uint64(s.size), extendable: s.e.Extendable()}, nil
}

// Release discards the session's state. Subsequent operations on the session and its readers return
// ErrUseAfterRelease. Release may be called any number of times.
func (s *Session) Release() {
	s.e = nil
}
