package bridge

import "unsafe"

// View is a read-only borrowed view of host memory. A View is valid only for the duration of the call it is passed
// to; the module never stores one.
type View struct {
	b []byte
}

// ViewOf returns a View of b.
func ViewOf(b []byte) View {
	return View{b: b}
}

// ViewAt returns a View of the n bytes of host memory starting at p. The memory must stay valid and unmodified until
// the call the View is passed to returns.
func ViewAt(p unsafe.Pointer, n int) View {
	if p == nil || n <= 0 {
		return View{}
	}
	return View{b: unsafe.Slice((*byte)(p), n)}
}

// Len returns the length of the view in bytes.
func (v View) Len() int { return len(v.b) }

// MutView is a read-write borrowed view of host memory that the module writes results into. Like View, it is valid
// only for the duration of one call.
type MutView struct {
	b []byte
}

// MutViewOf returns a MutView of b.
func MutViewOf(b []byte) MutView {
	return MutView{b: b}
}

// MutViewAt returns a MutView of the n bytes of host memory starting at p.
func MutViewAt(p unsafe.Pointer, n int) MutView {
	if p == nil || n <= 0 {
		return MutView{}
	}
	return MutView{b: unsafe.Slice((*byte)(p), n)}
}

// Len returns the length of the view in bytes.
func (v MutView) Len() int { return len(v.b) }
