package gui

import (
	"fmt"

	"github.com/san-kum/boxdrop/internal/physics"
)

// restSpeed is the speed below which a body counts as resting.
const restSpeed = 5

// hudStats follows the world tick by tick for the overlay.
type hudStats struct {
	time      float64
	bodies    int
	pairs     int
	peakPairs int
	resting   int
}

func (h *hudStats) OnTick(bodies []physics.Body, pairs []physics.Pair, t float64) {
	h.time = t
	h.bodies = len(bodies)
	h.pairs = len(pairs)
	h.peakPairs = max(h.peakPairs, len(pairs))
	h.resting = 0
	for _, b := range bodies {
		if b.State().Vel.Len() < restSpeed {
			h.resting++
		}
	}
}

func (h *hudStats) String() string {
	return fmt.Sprintf("t=%.1fs  %d bodies (%d resting)  %d pairs (peak %d)",
		h.time, h.bodies, h.resting, h.pairs, h.peakPairs)
}
