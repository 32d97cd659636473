package physics

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("add: expected (4,-2), got %v", got)
	}
	if got := a.Scale(2.5); got != V(2.5, 5) {
		t.Errorf("scale: expected (2.5,5), got %v", got)
	}
	if got := b.Neg(); got != V(-3, 4) {
		t.Errorf("neg: expected (-3,4), got %v", got)
	}
	if a != V(1, 2) || b != V(3, -4) {
		t.Error("pure operators must not modify their operands")
	}
}

func TestVecInPlace(t *testing.T) {
	v := V(1, 1)
	v.Accumulate(V(2, 3)).ScaleInPlace(2)

	if v != V(6, 8) {
		t.Errorf("expected (6,8), got %v", v)
	}
	if v.Len() != 10 {
		t.Errorf("expected length 10, got %f", v.Len())
	}
	if v.LenSq() != 100 {
		t.Errorf("expected squared length 100, got %f", v.LenSq())
	}
}

func TestVecNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	v := V(nan, 1).Add(V(1, 1))

	if v.IsFinite() {
		t.Error("NaN should propagate through add")
	}
	if !V(1, 2).IsFinite() {
		t.Error("expected finite vector")
	}
	inf := V(float32(math.Inf(1)), 0).Scale(-1)
	if inf.X != float32(math.Inf(-1)) {
		t.Errorf("expected -Inf, got %f", inf.X)
	}
}
