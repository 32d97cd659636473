package analysis

import (
	"strings"

	"github.com/san-kum/boxdrop/internal/sim"
)

// Frame fields of one body, as stored by sim.Result.
const (
	FieldX = iota
	FieldY
	FieldVX
	FieldVY
)

var FieldNames = []string{"x", "y", "vx", "vy"}

type Point struct{ X, Y float64 }

// PhasePortrait2D holds two fields of one body over a run.
type PhasePortrait2D struct {
	Body           int
	XField, YField int
	Points         []Point
}

// PhasePortrait extracts (xField, yField) of body from every recorded
// frame. It returns nil when the body or a field is out of range.
func PhasePortrait(result *sim.Result, body, xField, yField int) *PhasePortrait2D {
	if body < 0 || xField < 0 || yField < 0 || xField >= sim.FrameWidth || yField >= sim.FrameWidth {
		return nil
	}

	portrait := &PhasePortrait2D{
		Body:   body,
		XField: xField,
		YField: yField,
		Points: make([]Point, 0, len(result.Frames)),
	}

	base := body * sim.FrameWidth
	for _, f := range result.Frames {
		if base+sim.FrameWidth > len(f) {
			continue
		}
		portrait.Points = append(portrait.Points, Point{X: f[base+xField], Y: f[base+yField]})
	}
	if len(portrait.Points) == 0 {
		return nil
	}
	return portrait
}

type extent struct{ minX, maxX, minY, maxY float64 }

// paddedExtent is the bounding box of points grown by 10% on each side.
func paddedExtent(points []Point) extent {
	e := extent{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		e.minX, e.maxX = min(e.minX, p.X), max(e.maxX, p.X)
		e.minY, e.maxY = min(e.minY, p.Y), max(e.maxY, p.Y)
	}

	rangeX, rangeY := e.maxX-e.minX, e.maxY-e.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	e.minX -= rangeX * 0.1
	e.maxX += rangeX * 0.1
	e.minY -= rangeY * 0.1
	e.maxY += rangeY * 0.1
	return e
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	e := paddedExtent(portrait.Points)
	rangeX, rangeY := e.maxX-e.minX, e.maxY-e.minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// axes first so points draw over them
	if e.minX <= 0 && e.maxX >= 0 {
		col := int((0 - e.minX) / rangeX * float64(width-1))
		for row := range canvas {
			canvas[row][col] = '│'
		}
	}
	if e.minY <= 0 && e.maxY >= 0 {
		row := height - 1 - int((0-e.minY)/rangeY*float64(height-1))
		for col := range canvas[row] {
			canvas[row][col] = '─'
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - e.minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-e.minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
