package physics

// Rectangle is an axis-aligned box centred on its position.
type Rectangle struct {
	Kinematics
	width  float32
	height float32
}

// NewRectangle builds a rectangle centred at (x, y). Width and height must
// be non-negative; zero is allowed.
func NewRectangle(x, y, width, height, mass float32) (*Rectangle, error) {
	if width < 0 {
		return nil, &ArgumentError{Param: "width", Value: float64(width), Reason: "must be non-negative"}
	}
	if height < 0 {
		return nil, &ArgumentError{Param: "height", Value: float64(height), Reason: "must be non-negative"}
	}
	return &Rectangle{
		Kinematics: NewKinematics(V(x, y), mass),
		width:      width,
		height:     height,
	}, nil
}

func (r *Rectangle) Width() float32  { return r.width }
func (r *Rectangle) Height() float32 { return r.height }

func (r *Rectangle) Top() float32    { return r.Pos.Y - r.height/2 }
func (r *Rectangle) Bottom() float32 { return r.Pos.Y + r.height/2 }
func (r *Rectangle) Left() float32   { return r.Pos.X - r.width/2 }
func (r *Rectangle) Right() float32  { return r.Pos.X + r.width/2 }

func (r *Rectangle) Render(s Surface) {
	s.FillRect(r.Left(), r.Top(), r.width, r.height)
}
