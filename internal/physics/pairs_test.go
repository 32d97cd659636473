package physics

import (
	"math/rand"
	"slices"
	"testing"
)

func rect(t *testing.T, x, y, w, h float32) *Rectangle {
	t.Helper()
	r, err := NewRectangle(x, y, w, h, 1)
	if err != nil {
		t.Fatalf("construct failed: %v", err)
	}
	return r
}

func TestIntersects(t *testing.T) {
	a := rect(t, 5, 5, 10, 10)

	tests := []struct {
		name     string
		b        *Rectangle
		expected bool
	}{
		{"touching right edge", rect(t, 15, 5, 10, 10), false},
		{"touching bottom edge", rect(t, 5, 15, 10, 10), false},
		{"touching corner", rect(t, 15, 15, 10, 10), false},
		{"overlap by epsilon", rect(t, 14.99, 5, 10, 10), true},
		{"contained", rect(t, 5, 5, 2, 2), true},
		{"far away", rect(t, 100, 100, 10, 10), false},
		{"same box", rect(t, 5, 5, 10, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(a, tt.b); got != tt.expected {
				t.Errorf("a,b: expected %v, got %v", tt.expected, got)
			}
			if got := Intersects(tt.b, a); got != tt.expected {
				t.Errorf("b,a: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAllPairs(t *testing.T) {
	var got []Pair
	for p := range AllPairs(4) {
		got = append(got, p)
	}
	expected := []Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !slices.Equal(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	// restartable
	count := 0
	for range AllPairs(4) {
		count++
	}
	if count != 6 {
		t.Errorf("second pass: expected 6 pairs, got %d", count)
	}

	for p := range AllPairs(4) {
		if p != (Pair{0, 1}) {
			t.Errorf("expected first pair (0,1), got %v", p)
		}
		break
	}

	for range AllPairs(1) {
		t.Error("a single body has no pairs")
	}
}

func TestDetectPairs(t *testing.T) {
	bodies := []Body{
		rect(t, 5, 5, 10, 10),
		rect(t, 12, 5, 10, 10),
		rect(t, 100, 100, 10, 10),
		rect(t, 8, 8, 2, 2),
	}

	got := DetectPairs(bodies)
	expected := []Pair{{0, 1}, {0, 3}, {1, 3}}
	if !slices.Equal(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}

	if pairs := DetectPairs(nil); len(pairs) != 0 {
		t.Errorf("expected no pairs for empty collection, got %v", pairs)
	}
}

func TestDetectPairsParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bodies := make([]Body, 200)
	for i := range bodies {
		bodies[i] = rect(t, rng.Float32()*400, rng.Float32()*300, 5+rng.Float32()*20, 5+rng.Float32()*20)
	}

	seq := DetectPairs(bodies)
	if len(seq) == 0 {
		t.Fatal("expected some overlaps in a crowded world")
	}
	for _, workers := range []int{0, 1, 2, 8} {
		par := DetectPairsParallel(bodies, workers)
		if !slices.Equal(seq, par) {
			t.Errorf("workers=%d: parallel result differs (%d vs %d pairs)", workers, len(par), len(seq))
		}
	}
}
