package handle

import (
	"testing"
)

func TestInsertGet(t *testing.T) {
	var tab Table[string]
	a := tab.Insert("a")
	b := tab.Insert("b")

	if a == 0 || b == 0 {
		t.Fatal("issued zero handle")
	}
	if a == b {
		t.Fatal("issued duplicate handles")
	}

	for h, want := range map[Handle]string{a: "a", b: "b"} {
		got, err := tab.Get(h)
		if err != nil {
			t.Fatalf("Get(%x): %v", h, err)
		}
		if got != want {
			t.Errorf("Get(%x) = %q, want %q", h, got, want)
		}
	}

	if got, want := tab.Len(), 2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestRemove(t *testing.T) {
	var tab Table[int]
	h := tab.Insert(42)

	v, ok := tab.Remove(h)
	if !ok || v != 42 {
		t.Fatalf("Remove = %d, %v; want 42, true", v, ok)
	}

	if _, ok := tab.Remove(h); ok {
		t.Error("second Remove reported true")
	}

	if _, err := tab.Get(h); err != ErrStale {
		t.Errorf("Get after Remove: err = %v, want %v", err, ErrStale)
	}

	if got := tab.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestReuseDetectsStale(t *testing.T) {
	var tab Table[string]
	old := tab.Insert("old")
	tab.Remove(old)

	fresh := tab.Insert("fresh")
	if fresh.Index() != old.Index() {
		t.Fatalf("slot not reused: old=%d fresh=%d", old.Index(), fresh.Index())
	}
	if fresh.Generation() == old.Generation() {
		t.Fatal("generation not bumped on reuse")
	}

	if _, err := tab.Get(old); err != ErrStale {
		t.Errorf("Get(old) err = %v, want %v", err, ErrStale)
	}
	if got, err := tab.Get(fresh); err != nil || got != "fresh" {
		t.Errorf("Get(fresh) = %q, %v", got, err)
	}
}

func TestUnknownHandles(t *testing.T) {
	var tab Table[int]
	tab.Insert(1)

	for _, h := range []Handle{0, makeHandle(2, 1), makeHandle(1, 7)} {
		if _, err := tab.Get(h); err != ErrStale {
			t.Errorf("Get(%x) err = %v, want %v", h, err, ErrStale)
		}
	}
}
