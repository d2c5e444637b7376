package engine

import (
	"io"
	"math"

	"github.com/zeebo/blake3"
)

// blockSizeBLAKE3 is the BLAKE3 compression block size in bytes.
const blockSizeBLAKE3 = 64

// BLAKE3 returns an Engine for unkeyed BLAKE3 whose Sum produces size bytes.
func BLAKE3(size int) Engine {
	return &blake3Engine{h: blake3.New(), size: size}
}

// BLAKE3Keyed returns an Engine for BLAKE3's keyed_hash mode. The key must be exactly 32 bytes.
func BLAKE3Keyed(key []byte, size int) (Engine, error) {
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return &blake3Engine{h: h, size: size}, nil
}

// BLAKE3DeriveKey returns an Engine for BLAKE3's derive_key mode with the given context string. Absorbed input is the
// key material.
func BLAKE3DeriveKey(context string, size int) Engine {
	return &blake3Engine{h: blake3.NewDeriveKey(context), size: size}
}

type blake3Engine struct {
	h    *blake3.Hasher
	size int
}

func (e *blake3Engine) Write(p []byte) (int, error) {
	return e.h.Write(p)
}

func (e *blake3Engine) Size() int { return e.size }

func (e *blake3Engine) BlockSize() int { return blockSizeBLAKE3 }

func (e *blake3Engine) Sum(b []byte) []byte {
	out := make([]byte, e.size)
	_, _ = e.h.Digest().Read(out)
	return append(b, out...)
}

func (e *blake3Engine) Stream() Stream {
	return &blake3Stream{d: e.h.Digest()}
}

func (e *blake3Engine) Extendable() bool { return true }

// blake3Stream wraps the library's seekable output, which addresses offsets as int64.
type blake3Stream struct {
	d *blake3.Digest
}

func (s *blake3Stream) Read(p []byte) (int, error) {
	return s.d.Read(p)
}

func (s *blake3Stream) Seek(pos uint64) error {
	if pos > math.MaxInt64 {
		return ErrSeekRange
	}
	_, err := s.d.Seek(int64(pos), io.SeekStart)
	return err
}

var (
	_ Engine = (*blake3Engine)(nil)
	_ Stream = (*blake3Stream)(nil)
)
