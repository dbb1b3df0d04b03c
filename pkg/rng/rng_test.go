package rng

import "testing"

func TestDeterministicStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		va := a.NextInt(1000)
		vb := b.NextInt(1000)
		if va != vb {
			t.Fatalf("streams diverged at draw %d: %d != %d", i, va, vb)
		}
	}
}

func TestDifferentSeedsUsuallyDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.NextInt(1<<30) != b.NextInt(1<<30) {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different seeds to diverge within 20 draws")
	}
}

func TestNextIntBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.NextInt(5)
		if v < 0 || v >= 5 {
			t.Fatalf("draw out of bounds: %d", v)
		}
	}
}

func TestNextIntPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-positive bound")
		}
	}()
	New(1).NextInt(0)
}
