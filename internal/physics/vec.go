package physics

import "github.com/chewxy/math32"

// Vec2 is a 2D vector in world units (pixels).
type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Accumulate adds o to v in place and returns v for chaining.
func (v *Vec2) Accumulate(o Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v Vec2) Scale(k float32) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// ScaleInPlace multiplies v by k in place and returns v for chaining.
func (v *Vec2) ScaleInPlace(k float32) *Vec2 {
	v.X *= k
	v.Y *= k
	return v
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float32 {
	return math32.Hypot(v.X, v.Y)
}

func (v Vec2) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) &&
		!math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}
