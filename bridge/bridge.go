// Package bridge exposes hash sessions to a host runtime through opaque handles and borrowed views of host memory.
//
// The host owns every buffer. Input arrives as a [View] and results are written in place into a [MutView]; neither is
// retained past the call it is passed to. The only long-lived objects are sessions and readers, which the host refers
// to by [Handle] and must release explicitly. Released handles are tombstoned, so using one returns
// [hashbridge.ErrUseAfterRelease] rather than touching freed state.
//
// No method panics across the boundary. Errors map onto stable codes via [Status].
package bridge

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/codahale/hashbridge"
	"github.com/codahale/hashbridge/internal/handle"
)

// Handle is an opaque reference to a session or reader. The zero Handle is never issued.
type Handle uint64

// ConstructionArg is an optional argument to [Module.Create].
type ConstructionArg struct {
	opt hashbridge.Option
}

// Key requests the algorithm's keyed mode. The key bytes are copied before Key returns.
func Key(key View) ConstructionArg {
	return ConstructionArg{hashbridge.WithKey(key.b)}
}

// Context requests the algorithm's context-separated mode.
func Context(context string) ConstructionArg {
	return ConstructionArg{hashbridge.WithContext(context)}
}

// OutputSize sets the digest size of an extendable-output algorithm.
func OutputSize(n int) ConstructionArg {
	return ConstructionArg{hashbridge.WithOutputSize(n)}
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithLogger sets the logger the module reports handle lifecycle events to.
func WithLogger(logger *slog.Logger) ModuleOption {
	return func(m *Module) {
		m.logger = logger
	}
}

// Module owns the sessions and readers created through it.
//
// The handle tables are safe for concurrent use, so independent sessions may be driven from different goroutines.
// Operations on one session, and on the readers bound to it, must still be serialized by the host.
type Module struct {
	mu       sync.Mutex
	sessions handle.Table[*hashbridge.Session]
	readers  handle.Table[*boundReader]
	logger   *slog.Logger
}

// boundReader resolves its session by handle on every call, so it fails once the session is released. The underlying
// Reader still points at the released Session, whose primitive state has already been dropped.
type boundReader struct {
	session Handle
	r       *hashbridge.Reader
}

// NewModule returns an empty Module.
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hash writes the digest of in into out using the named algorithm and returns the number of bytes written.
func (m *Module) Hash(alg string, in View, out MutView) (n int, err error) {
	defer m.guard("hash", &err)

	a, err := hashbridge.ParseAlgorithm(alg)
	if err != nil {
		return 0, err
	}
	return hashbridge.Hash(a, in.b, out.b)
}

// Create returns a handle to a new session for the named algorithm. With no arguments the algorithm's plain mode is
// used; keyed and context-separated modes are rejected with ErrInvalidConstructionArgs where unsupported.
func (m *Module) Create(alg string, args ...ConstructionArg) (h Handle, err error) {
	defer m.guard("create", &err)

	opts := make([]hashbridge.Option, len(args))
	for i, arg := range args {
		opts[i] = arg.opt
	}

	s, err := hashbridge.NewNamed(alg, opts...)
	if err != nil {
		m.logger.Debug("session rejected", "algorithm", alg, "err", err)
		return 0, err
	}

	m.mu.Lock()
	h = Handle(m.sessions.Insert(s))
	m.mu.Unlock()

	m.logger.Debug("session created", "handle", uint64(h), "algorithm", s.Algo())
	return h, nil
}

// Update appends in to the session's input.
func (m *Module) Update(h Handle, in View) (err error) {
	defer m.guard("update", &err)

	s, err := m.session("update", h)
	if err != nil {
		return err
	}
	return s.Update(in.b)
}

// Digest writes the session's current digest into out and returns the number of bytes written.
func (m *Module) Digest(h Handle, out MutView) (n int, err error) {
	defer m.guard("digest", &err)

	s, err := m.session("digest", h)
	if err != nil {
		return 0, err
	}
	return s.Digest(out.b)
}

// Release releases the session. Readers bound to it remain allocated until released, but fail with
// ErrUseAfterRelease. Releasing a stale handle does nothing.
func (m *Module) Release(h Handle) {
	m.mu.Lock()
	s, ok := m.sessions.Remove(handle.Handle(h))
	m.mu.Unlock()

	if ok {
		s.Release()
		m.logger.Debug("session released", "handle", uint64(h))
	}
}

// Reader returns a handle to a new reader bound to the session.
func (m *Module) Reader(h Handle) (rh Handle, err error) {
	defer m.guard("reader", &err)

	s, err := m.session("reader", h)
	if err != nil {
		return 0, err
	}

	r, err := s.Reader()
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	rh = Handle(m.readers.Insert(&boundReader{session: h, r: r}))
	m.mu.Unlock()

	m.logger.Debug("reader created", "handle", uint64(rh), "session", uint64(h))
	return rh, nil
}

// Fill writes the reader's next bytes into out and returns the number written. Zero bytes with a nil error means a
// fixed-length digest is exhausted.
func (m *Module) Fill(rh Handle, out MutView) (n int, err error) {
	defer m.guard("fill", &err)

	br, err := m.reader("fill", rh)
	if err != nil {
		return 0, err
	}
	return br.r.Fill(out.b)
}

// SetPosition moves the reader to an absolute offset in its output.
func (m *Module) SetPosition(rh Handle, pos uint64) (err error) {
	defer m.guard("set_position", &err)

	br, err := m.reader("set_position", rh)
	if err != nil {
		return err
	}
	return br.r.SetPosition(pos)
}

// ReleaseReader releases the reader. Its session is unaffected. Releasing a stale handle does nothing.
func (m *Module) ReleaseReader(rh Handle) {
	m.mu.Lock()
	_, ok := m.readers.Remove(handle.Handle(rh))
	m.mu.Unlock()

	if ok {
		m.logger.Debug("reader released", "handle", uint64(rh))
	}
}

// Algo returns the name of the session's algorithm, or the empty string if h is not a live session.
func (m *Module) Algo(h Handle) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.sessions.Get(handle.Handle(h))
	if err != nil {
		return ""
	}
	return s.Algo()
}

// Live returns the number of unreleased sessions and readers.
func (m *Module) Live() (sessions, readers int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sessions.Len(), m.readers.Len()
}

func (m *Module) session(op string, h Handle) (*hashbridge.Session, error) {
	m.mu.Lock()
	s, err := m.sessions.Get(handle.Handle(h))
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("use after release", "op", op, "handle", uint64(h))
		return nil, fmt.Errorf("%w: session %#x", hashbridge.ErrUseAfterRelease, uint64(h))
	}
	return s, nil
}

func (m *Module) reader(op string, rh Handle) (*boundReader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	br, err := m.readers.Get(handle.Handle(rh))
	if err != nil {
		m.logger.Warn("use after release", "op", op, "reader", uint64(rh))
		return nil, fmt.Errorf("%w: reader %#x", hashbridge.ErrUseAfterRelease, uint64(rh))
	}

	if _, err := m.sessions.Get(handle.Handle(br.session)); err != nil {
		m.logger.Warn("use after release", "op", op, "reader", uint64(rh), "session", uint64(br.session))
		return nil, fmt.Errorf("%w: session %#x of reader %#x", hashbridge.ErrUseAfterRelease,
			uint64(br.session), uint64(rh))
	}
	return br, nil
}

// guard converts a panic in a boundary call into ErrInternal.
func (m *Module) guard(op string, err *error) {
	if r := recover(); r != nil {
		m.logger.Error("recovered panic", "op", op, "panic", r)
		*err = fmt.Errorf("%w: %s: %v", ErrInternal, op, r)
	}
}
