package engine

import "io"

// squeezer adapts a forward-only XOF reader to Stream. Seeks are recorded and resolved on the next Read: forward by
// discarding output, backward by restarting from a fresh copy of the finalized snapshot.
type squeezer struct {
	fresh func() io.Reader
	r     io.Reader
	off   uint64 // bytes already squeezed from r
	pos   uint64 // logical position
}

func newSqueezer(fresh func() io.Reader) *squeezer {
	return &squeezer{fresh: fresh, r: fresh()}
}

func (s *squeezer) Seek(pos uint64) error {
	s.pos = pos
	return nil
}

func (s *squeezer) Read(p []byte) (int, error) {
	if s.pos < s.off {
		s.r, s.off = s.fresh(), 0
	}

	var scratch [512]byte
	for s.off < s.pos {
		n := int(min(s.pos-s.off, uint64(len(scratch))))
		if _, err := io.ReadFull(s.r, scratch[:n]); err != nil {
			return 0, err
		}
		s.off += uint64(n)
	}

	n, err := s.r.Read(p)
	s.off += uint64(n)
	s.pos = s.off
	return n, err
}

var _ Stream = (*squeezer)(nil)
