// Package handle implements a table of opaque, generation-tagged handles.
//
// A Handle packs a 1-based slot index into its low 32 bits and the slot's generation into its high 32 bits. Removing
// an entry tombstones the slot and bumps its generation before the slot is reused, so a handle that outlives its entry
// is reported as stale instead of aliasing whatever occupies the slot next.
package handle

import "errors"

// ErrStale is returned for handles that were removed or never issued.
var ErrStale = errors.New("handle: stale or unknown handle")

// Handle is an opaque reference to a table entry. The zero Handle is never issued.
type Handle uint64

// Index returns the 1-based slot index of h.
func (h Handle) Index() uint32 { return uint32(h) }

// Generation returns the slot generation h was issued under.
func (h Handle) Generation() uint32 { return uint32(h >> 32) }

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

type slot[T any] struct {
	v    T
	gen  uint32
	live bool
}

// Table maps handles to values. It is not safe for concurrent use.
type Table[T any] struct {
	slots []slot[T]
	free  []uint32 // indexes of tombstoned slots
	n     int
}

// Insert stores v and returns a new handle for it.
func (t *Table[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot[T]{gen: 1})
		idx = uint32(len(t.slots))
	}

	s := &t.slots[idx-1]
	s.v, s.live = v, true
	t.n++
	return makeHandle(idx, s.gen)
}

// Get returns the value for h, or ErrStale.
func (t *Table[T]) Get(h Handle) (T, error) {
	s := t.lookup(h)
	if s == nil {
		var zero T
		return zero, ErrStale
	}
	return s.v, nil
}

// Remove deletes the entry for h and returns its value. It reports false, and does nothing, if h is stale.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T
	s := t.lookup(h)
	if s == nil {
		return zero, false
	}

	v := s.v
	s.v, s.live = zero, false
	s.gen++
	if s.gen == 0 {
		// Generation wrapped; retire the slot rather than reissue a handle that may still be held.
		t.n--
		return v, true
	}
	t.free = append(t.free, h.Index())
	t.n--
	return v, true
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int { return t.n }

func (t *Table[T]) lookup(h Handle) *slot[T] {
	idx := h.Index()
	if idx == 0 || int(idx) > len(t.slots) {
		return nil
	}
	s := &t.slots[idx-1]
	if !s.live || s.gen != h.Generation() {
		return nil
	}
	return s
}
