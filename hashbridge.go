// Package hashbridge implements incremental hash sessions for callers that own their own memory, such as a host runtime
// embedding this package across a foreign-function boundary.
//
// A [Session] absorbs input from caller-owned buffers without retaining them, and writes digests into caller-owned
// output buffers. Digests are computed over a snapshot of the running state, so a session can be updated again after
// any number of digests. A [Reader] streams a session's output in caller-chosen chunks, and for extendable-output
// algorithms produces an unbounded stream.
//
// No function in this package retains a byte slice passed to it after it returns. Passing overlapping input and
// output slices to the same call is undefined.
package hashbridge

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/codahale/hashbridge/hazmat/engine"
)

var (
	// ErrUnsupportedAlgorithm is returned when the requested algorithm is not one of the supported algorithms.
	ErrUnsupportedAlgorithm = errors.New("hashbridge: unsupported algorithm")

	// ErrInvalidConstructionArgs is returned when a session is requested with a key, context, or output size the
	// algorithm does not support.
	ErrInvalidConstructionArgs = errors.New("hashbridge: invalid construction arguments")

	// ErrBufferTooSmall is returned when an output buffer is shorter than the algorithm's output size.
	ErrBufferTooSmall = errors.New("hashbridge: output buffer too small")

	// ErrUseAfterRelease is returned by operations on a released session, or on a reader whose session was released.
	ErrUseAfterRelease = errors.New("hashbridge: use after release")

	// ErrSeekOutOfRange is returned when a reader is positioned past the end of a fixed-length digest.
	ErrSeekOutOfRange = errors.New("hashbridge: seek out of range")
)

// Algorithm identifies a hash algorithm.
type Algorithm uint8

const (
	// SHA256 is SHA-256 (FIPS 180-4). 32-byte output.
	SHA256 Algorithm = iota + 1

	// MD5 is MD5 (RFC 1321). 16-byte output. Not collision resistant.
	MD5

	// BLAKE3 is the BLAKE3 extendable-output function. Defaults to 32 bytes of output. Supports a 32-byte key
	// (keyed_hash mode) or a context string (derive_key mode).
	BLAKE3

	// KT128 is KT128 (KangarooTwelve, RFC 9861). Defaults to 32 bytes of output. A context string is used as the
	// customization string.
	KT128

	// SHAKE256 is the SHAKE256 extendable-output function (FIPS 202). Defaults to 64 bytes of output.
	SHAKE256

	// BLAKE2b is BLAKE2b-256 (RFC 7693). 32-byte output. Supports a key of 1 to 64 bytes.
	BLAKE2b
)

type algorithmInfo struct {
	name       string
	size       int
	extendable bool
	keyed      bool // accepts WithKey
	contextual bool // accepts WithContext
}

var algorithms = [...]algorithmInfo{
	SHA256:   {name: "sha256", size: 32},
	MD5:      {name: "md5", size: 16},
	BLAKE3:   {name: "blake3", size: 32, extendable: true, keyed: true, contextual: true},
	KT128:    {name: "kt128", size: 32, extendable: true, contextual: true},
	SHAKE256: {name: "shake256", size: 64, extendable: true},
	BLAKE2b:  {name: "blake2b", size: 32, keyed: true},
}

// aliases maps alternative selector strings used by hosts onto canonical names.
var aliases = map[string]Algorithm{
	"sha2":        SHA256,
	"sha-256":     SHA256,
	"blake2b-256": BLAKE2b,
}

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	algs := make([]Algorithm, 0, len(algorithms)-1)
	for a := SHA256; int(a) < len(algorithms); a++ {
		algs = append(algs, a)
	}
	return algs
}

// ParseAlgorithm returns the algorithm with the given name. Names are case-insensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(name)
	for _, a := range Algorithms() {
		if algorithms[a].name == name {
			return a, nil
		}
	}
	if a, ok := aliases[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	return a > 0 && int(a) < len(algorithms)
}

// String returns the algorithm's canonical name.
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", a)
	}
	return algorithms[a].name
}

// Size returns the algorithm's default output size in bytes, or zero if a is not valid.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

// Extendable reports whether a is an extendable-output function.
func (a Algorithm) Extendable() bool {
	return a.Valid() && algorithms[a].extendable
}

// An Option configures the construction of a session.
type Option func(*config)

type config struct {
	key        []byte
	hasKey     bool
	context    string
	hasContext bool
	size       int
}

// WithKey requests the algorithm's keyed mode. The key is copied before WithKey returns.
func WithKey(key []byte) Option {
	k := bytes.Clone(key)
	return func(c *config) {
		c.key, c.hasKey = k, true
	}
}

// WithContext requests the algorithm's context-separated mode: derive_key for BLAKE3, a customization string for
// KT128.
func WithContext(context string) Option {
	return func(c *config) {
		c.context = context
		c.hasContext = true
	}
}

// WithOutputSize sets the number of bytes a digest produces. Only extendable-output algorithms accept a size other
// than their default.
func WithOutputSize(n int) Option {
	return func(c *config) {
		c.size = n
	}
}

// newEngine validates the construction arguments for a and returns its engine.
func newEngine(a Algorithm, opts []Option) (engine.Engine, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
	}

	var c config
	for _, opt := range opts {
		opt(&c)
	}

	info := algorithms[a]
	switch {
	case c.hasKey && !info.keyed:
		return nil, fmt.Errorf("%w: %v does not support keys", ErrInvalidConstructionArgs, a)
	case c.hasContext && !info.contextual:
		return nil, fmt.Errorf("%w: %v does not support contexts", ErrInvalidConstructionArgs, a)
	case c.hasKey && c.hasContext:
		return nil, fmt.Errorf("%w: key and context are mutually exclusive", ErrInvalidConstructionArgs)
	case c.hasKey && len(c.key) == 0:
		return nil, fmt.Errorf("%w: empty key", ErrInvalidConstructionArgs)
	case c.size < 0:
		return nil, fmt.Errorf("%w: negative output size %d", ErrInvalidConstructionArgs, c.size)
	case c.size == 0:
		c.size = info.size
	case !info.extendable && c.size != info.size:
		return nil, fmt.Errorf("%w: %v output size is fixed at %d bytes", ErrInvalidConstructionArgs, a, info.size)
	}

	var (
		e   engine.Engine
		err error
	)
	switch a {
	case SHA256:
		e = engine.SHA256()
	case MD5:
		e = engine.MD5()
	case BLAKE3:
		switch {
		case c.hasKey:
			e, err = engine.BLAKE3Keyed(c.key, c.size)
		case c.hasContext:
			e = engine.BLAKE3DeriveKey(c.context, c.size)
		default:
			e = engine.BLAKE3(c.size)
		}
	case KT128:
		e = engine.KT128([]byte(c.context), c.size)
	case SHAKE256:
		e = engine.SHAKE256(c.size)
	case BLAKE2b:
		e, err = engine.BLAKE2b(c.key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrInvalidConstructionArgs, a, err)
	}
	return e, nil
}

// Hash computes the digest of in with the given algorithm and writes it into out, returning the number of bytes
// written. It returns ErrBufferTooSmall, without hashing, if out is shorter than the output size. Hash is safe for
// concurrent use.
func Hash(a Algorithm, in, out []byte, opts ...Option) (int, error) {
	s, err := New(a, opts...)
	if err != nil {
		return 0, err
	}
	defer s.Release()

	if len(out) < s.size {
		return 0, bufferTooSmall(len(out), s.size)
	}

	if err := s.Update(in); err != nil {
		return 0, err
	}
	return s.Digest(out)
}

// Sum returns the digest of in with the given algorithm.
func Sum(a Algorithm, in []byte, opts ...Option) ([]byte, error) {
	s, err := New(a, opts...)
	if err != nil {
		return nil, err
	}
	defer s.Release()

	if err := s.Update(in); err != nil {
		return nil, err
	}
	return s.Sum(nil)
}

func bufferTooSmall(have, need int) error {
	return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, have, need)
}
