package core

import "testing"

func TestBoundsClampAndIndex(t *testing.T) {
	b := NewBounds(4, 3)
	if !b.Contains(3, 2) || b.Contains(4, 0) || b.Contains(-1, 0) || b.Contains(0, 3) {
		t.Fatal("Contains disagrees with [0,W)x[0,H)")
	}
	if x, y := b.Clamp(-5, 9); x != 0 || y != 2 {
		t.Fatalf("Clamp(-5,9) = (%d,%d), want (0,2)", x, y)
	}
	if got := b.Index(2, 1); got != 6 {
		t.Fatalf("Index(2,1) = %d, want 6", got)
	}
	if got := b.Index(10, 10); got != b.Area()-1 {
		t.Fatalf("out of range index should clamp to last cell, got %d", got)
	}
}

func TestNewBoundsRaisesDimensions(t *testing.T) {
	b := NewBounds(0, -3)
	if b.W != 1 || b.H != 1 {
		t.Fatalf("expected 1x1 bounds, got %dx%d", b.W, b.H)
	}
}

func TestRegistryNames(t *testing.T) {
	Register("zz-test", func(map[string]string) Sim { return nil })
	Register("", func(map[string]string) Sim { return nil })
	defer delete(sims, "zz-test")

	names := Names()
	if len(names) == 0 || names[len(names)-1] != "zz-test" {
		t.Fatalf("Names() = %v", names)
	}
	for _, n := range names {
		if n == "" {
			t.Fatal("empty name registered")
		}
	}
}
