package physics

// Surface is the drawing target a body renders itself onto.
// Coordinates are world units with y growing downward.
type Surface interface {
	FillRect(left, top, width, height float32)
	StrokeRect(left, top, width, height float32)
}

// Body is a simulated entity with an axis-aligned bounding box.
// Implementations must keep Left() <= Right() and Top() <= Bottom().
type Body interface {
	Top() float32
	Bottom() float32
	Left() float32
	Right() float32

	Update(dt float32)
	Render(s Surface)

	State() *Kinematics
}

// Kinematics holds the state shared by every shape. Shapes embed it.
type Kinematics struct {
	Pos Vec2
	Vel Vec2
	Acc Vec2

	mass float32
}

func NewKinematics(pos Vec2, mass float32) Kinematics {
	return Kinematics{Pos: pos, mass: mass}
}

// Mass is fixed at construction. Nothing in the physics step reads it yet.
func (k *Kinematics) Mass() float32 { return k.mass }

// State gives shapes embedding Kinematics access to the shared state.
func (k *Kinematics) State() *Kinematics { return k }

// Update advances one semi-implicit Euler step: position moves by the
// velocity held before this step, then velocity picks up acceleration.
func (k *Kinematics) Update(dt float32) {
	k.Pos.Accumulate(k.Vel.Scale(dt))
	k.Vel.Accumulate(k.Acc.Scale(dt))
}

// Box is a snapshot of a body's bounding edges.
type Box struct {
	Left, Top, Right, Bottom float32
}

func BoxOf(b Body) Box {
	return Box{Left: b.Left(), Top: b.Top(), Right: b.Right(), Bottom: b.Bottom()}
}

func (b Box) Width() float32  { return b.Right - b.Left }
func (b Box) Height() float32 { return b.Bottom - b.Top }

// Overlaps reports whether two boxes share interior area. Boxes that only
// touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return !(b.Right <= o.Left ||
		b.Left >= o.Right ||
		b.Bottom <= o.Top ||
		b.Top >= o.Bottom)
}
