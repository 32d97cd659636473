package physics

const (
	DefaultGravity        = 980.0
	DefaultRestitution    = 0.3
	DefaultGroundFriction = 0.9
)

// Tuning carries the constants used by the step functions.
type Tuning struct {
	// Gravity is the downward acceleration given to a body when it is released (px/s²).
	Gravity float32
	// Restitution is the fraction of normal velocity kept after hitting a wall.
	Restitution float32
	// GroundFriction scales horizontal velocity on floor contact.
	GroundFriction float32
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:        DefaultGravity,
		Restitution:    DefaultRestitution,
		GroundFriction: DefaultGroundFriction,
	}
}

// Bounds is the rectangular world the bodies live in, y growing downward.
type Bounds struct {
	Left, Top, Right, Bottom float32
}

func NewBounds(width, height float32) Bounds {
	return Bounds{Left: 0, Top: 0, Right: width, Bottom: height}
}

// ResolveBoundary clamps b inside world and reflects the velocity component
// normal to any wall it reached. Only the floor applies friction.
func ResolveBoundary(b Body, world Bounds, t Tuning) {
	k := b.State()

	if b.Bottom() >= world.Bottom {
		k.Pos.Y -= b.Bottom() - world.Bottom
		k.Vel.Y *= -t.Restitution
		k.Vel.X *= t.GroundFriction
	} else if b.Top() <= world.Top {
		k.Pos.Y += world.Top - b.Top()
		k.Vel.Y *= -t.Restitution
	}

	if b.Left() <= world.Left {
		k.Pos.X += world.Left - b.Left()
		k.Vel.X *= -t.Restitution
	} else if b.Right() >= world.Right {
		k.Pos.X -= b.Right() - world.Right
		k.Vel.X *= -t.Restitution
	}
}
