package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/boxdrop/internal/physics"
)

// surface draws bodies in window pixels, one world unit per pixel.
type surface struct {
	fill, stroke rl.Color
}

func (s surface) FillRect(left, top, width, height float32) {
	rl.DrawRectangleRec(rl.NewRectangle(left, top, width, height), s.fill)
}

func (s surface) StrokeRect(left, top, width, height float32) {
	rl.DrawRectangleLinesEx(rl.NewRectangle(left, top, width, height), 1, s.stroke)
}

// drawBodies fills every body and, with boxes shown, outlines each one:
// red, or yellow when it is part of an overlapping pair.
func (a *App) drawBodies() {
	bodies := a.World.Bodies()
	paired := make([]bool, len(bodies))
	for _, p := range a.World.DetectedPairs() {
		paired[p.I], paired[p.J] = true, true
	}

	plain := surface{fill: ColBody, stroke: ColDebug}
	for i, b := range bodies {
		b.Render(plain)
		if !a.ShowBoxes {
			continue
		}
		s := plain
		if paired[i] {
			s.stroke = ColPair
		}
		box := physics.BoxOf(b)
		s.StrokeRect(box.Left, box.Top, box.Width(), box.Height())
	}
	if h := a.World.Held(); h != nil {
		h.Render(plain)
		if a.ShowBoxes {
			box := physics.BoxOf(h)
			plain.StrokeRect(box.Left, box.Top, box.Width(), box.Height())
		}
	}
}
