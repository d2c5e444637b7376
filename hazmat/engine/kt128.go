package engine

import (
	"io"

	"github.com/codahale/kt128"
)

// KT128 returns an Engine for KT128 (RFC 9861) with the given customization string, whose Sum produces size bytes.
func KT128(custom []byte, size int) Engine {
	return &kt128Engine{h: kt128.New(custom), size: size}
}

type kt128Engine struct {
	h    *kt128.Hasher
	size int
}

func (e *kt128Engine) Write(p []byte) (int, error) {
	return e.h.Write(p)
}

func (e *kt128Engine) Size() int { return e.size }

func (e *kt128Engine) BlockSize() int { return kt128.BlockSize }

// Sum squeezes a clone. The running hasher must never be read, since reading ends absorption.
func (e *kt128Engine) Sum(b []byte) []byte {
	out := make([]byte, e.size)
	_, _ = e.h.Clone().Read(out)
	return append(b, out...)
}

func (e *kt128Engine) Stream() Stream {
	origin := e.h.Clone()
	return newSqueezer(func() io.Reader { return origin.Clone() })
}

func (e *kt128Engine) Extendable() bool { return true }

var _ Engine = (*kt128Engine)(nil)
