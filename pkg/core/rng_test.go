package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 64; i++ {
		if a.Float32() != b.Float32() {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}

	a.Reseed(99)
	b.Reseed(99)
	if !slices.Equal(a.Perm(16), b.Perm(16)) {
		t.Fatal("permutations differ after reseeding with the same seed")
	}
}

func TestSignAndBounds(t *testing.T) {
	r := NewRNG(1)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		s := r.Sign()
		if s != 1 && s != -1 {
			t.Fatalf("Sign returned %d", s)
		}
		seen[s] = true
		if v := r.Float64(); v < 0 || v >= 1 {
			t.Fatalf("Float64 returned %v", v)
		}
	}
	if !seen[1] || !seen[-1] {
		t.Fatal("Sign never produced both directions")
	}
	if r.Perm(0) != nil {
		t.Fatal("Perm(0) should be nil")
	}
}
