package engine

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// rateSHAKE256 is the SHAKE256 sponge rate in bytes.
const rateSHAKE256 = 136

// SHAKE256 returns an Engine for SHAKE256 whose Sum produces size bytes.
func SHAKE256(size int) Engine {
	return &shakeEngine{h: sha3.NewShake256(), size: size}
}

type shakeEngine struct {
	h    sha3.ShakeHash
	size int
}

func (e *shakeEngine) Write(p []byte) (int, error) {
	return e.h.Write(p)
}

func (e *shakeEngine) Size() int { return e.size }

func (e *shakeEngine) BlockSize() int { return rateSHAKE256 }

func (e *shakeEngine) Sum(b []byte) []byte {
	out := make([]byte, e.size)
	_, _ = e.h.Clone().Read(out)
	return append(b, out...)
}

func (e *shakeEngine) Stream() Stream {
	origin := e.h.Clone()
	return newSqueezer(func() io.Reader { return origin.Clone() })
}

func (e *shakeEngine) Extendable() bool { return true }

var _ Engine = (*shakeEngine)(nil)
