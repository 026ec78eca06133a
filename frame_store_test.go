package gui_test

import (
	"testing"

	gui "github.com/go-theft-auto/gui-demo"
)

func TestFrameStoreSweep(t *testing.T) {
	store := gui.NewFrameStore[int]()
	a, b := gui.IDOf("a"), gui.IDOf("b")

	v, created := store.Get(a, 1)
	if !created || *v != 1 {
		t.Fatalf("Get(a) = %d, created=%v", *v, created)
	}
	*v = 5
	store.Get(b, 2)
	if n := store.Sweep(); n != 0 {
		t.Errorf("first sweep removed %d entries", n)
	}

	// Only a is used this frame.
	v, created = store.Get(a, 1)
	if created || *v != 5 {
		t.Errorf("Get(a) = %d, created=%v; want stored 5", *v, created)
	}
	if n := store.Sweep(); n != 1 {
		t.Errorf("sweep removed %d entries, want 1", n)
	}
	if store.Lookup(b) != nil {
		t.Error("b should be gone")
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	store.Reset()
	if store.Len() != 0 || store.Lookup(a) != nil {
		t.Error("Reset should drop everything")
	}
}

func TestIDOf(t *testing.T) {
	if gui.IDOf("panel") != gui.IDOf("panel") {
		t.Error("IDOf is not stable")
	}
	if gui.IDOf("panel") == gui.IDOf("Panel") {
		t.Error("distinct names should hash differently")
	}
}
