// Package digest adapts hash sessions to the standard library's hash.Hash interface.
package digest

import (
	"hash"

	"github.com/codahale/hashbridge"
)

// New returns a new hash.Hash for the given algorithm and options. Sum does not change the underlying state, and
// Reset starts a fresh session with the same options.
func New(alg hashbridge.Algorithm, opts ...hashbridge.Option) (hash.Hash, error) {
	s, err := hashbridge.New(alg, opts...)
	if err != nil {
		return nil, err
	}
	return &digest{alg: alg, opts: opts, s: s}, nil
}

type digest struct {
	alg  hashbridge.Algorithm
	opts []hashbridge.Option
	s    *hashbridge.Session
}

func (d *digest) Write(p []byte) (n int, err error) {
	if err := d.s.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	b, _ = d.s.Sum(b)
	return b
}

func (d *digest) Reset() {
	d.s.Release()

	// The options were validated by New, so this cannot fail.
	d.s, _ = hashbridge.New(d.alg, d.opts...)
}

func (d *digest) Size() int {
	return d.s.Size()
}

func (d *digest) BlockSize() int {
	return d.s.BlockSize()
}

var _ hash.Hash = (*digest)(nil)
