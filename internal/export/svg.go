package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/boxdrop/internal/analysis"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

const (
	colBg    = "#0a0a0a"
	colBody  = "#ffffff"
	colDebug = "#ff0000"
	colPair  = "#ffff00"
)

// svgSurface writes rectangles as SVG elements in world units.
type svgSurface struct {
	sb     *strings.Builder
	stroke string
}

func (s svgSurface) FillRect(left, top, width, height float32) {
	fmt.Fprintf(s.sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, left, top, width, height, colBody)
}

func (s svgSurface) StrokeRect(left, top, width, height float32) {
	fmt.Fprintf(s.sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="1"/>
`, left, top, width, height, s.stroke)
}

// FrameBodies rebuilds the rectangles of one recorded frame. Every body
// gets the same extents since runs only record positions.
func FrameBodies(frame []float64, boxWidth, boxHeight float32) ([]physics.Body, error) {
	n := len(frame) / sim.FrameWidth
	bodies := make([]physics.Body, 0, n)
	for i := range n {
		f := frame[i*sim.FrameWidth:]
		r, err := physics.NewRectangle(float32(f[0]), float32(f[1]), boxWidth, boxHeight, 0)
		if err != nil {
			return nil, err
		}
		r.Vel = physics.V(float32(f[2]), float32(f[3]))
		bodies = append(bodies, r)
	}
	return bodies, nil
}

// FrameToSVG draws bodies the way the window does: filled boxes, and with
// boxes on, red outlines that turn yellow for overlapping pairs.
func FrameToSVG(w io.Writer, bodies []physics.Body, width, height int, boxes bool) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, colBg)

	paired := make([]bool, len(bodies))
	for _, p := range physics.DetectPairs(bodies) {
		paired[p.I], paired[p.J] = true, true
	}

	for i, b := range bodies {
		s := svgSurface{sb: &sb, stroke: colDebug}
		b.Render(s)
		if boxes {
			if paired[i] {
				s.stroke = colPair
			}
			box := physics.BoxOf(b)
			s.StrokeRect(box.Left, box.Top, box.Width(), box.Height())
		}
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// TrajectoryToSVG draws a polyline through points in world coordinates.
func TrajectoryToSVG(w io.Writer, points []analysis.Point, width, height int, strokeColor string) error {
	if len(points) < 2 {
		return fmt.Errorf("trajectory needs at least 2 points, got %d", len(points))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, colBg, strokeColor)

	for i, p := range points {
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
	}

	sb.WriteString(`"/>
</svg>
`)
	_, err := io.WriteString(w, sb.String())
	return err
}
