// Package testdata provides deterministic inputs for tests.
package testdata

import (
	"crypto/sha3"
	"encoding/binary"
	"io"
)

// DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a new DRBG instance initialized with the given customization string.
func New(customization string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(customization))
	return &DRBG{h}
}

// Data returns n bytes of deterministic data from the DRBG.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}

// Chunks splits b into consecutive pieces whose lengths are drawn from the DRBG, each at most maxLen bytes. Zero-length
// pieces are included.
func (d *DRBG) Chunks(b []byte, maxLen int) [][]byte {
	maxLen = max(maxLen, 1)
	var chunks [][]byte
	for len(b) > 0 {
		n := min(int(binary.BigEndian.Uint16(d.Data(2)))%(maxLen+1), len(b))
		chunks = append(chunks, b[:n])
		b = b[n:]
	}
	return chunks
}

// Reader returns pseudorandom reader seeded with a value from this DRBG.
func (d *DRBG) Reader() io.Reader {
	h := sha3.NewSHAKE128()
	_, _ = h.Write(d.Data(32))
	return h
}
