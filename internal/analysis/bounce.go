package analysis

import "github.com/san-kum/boxdrop/internal/sim"

// Bounce is a tick on which a body's vertical velocity turned from
// falling to rising.
type Bounce struct {
	Time  float64
	Speed float64 // |vy| just after the turn
}

// Bounces lists the floor and ceiling turnarounds of body in a run, in
// time order. Screen y grows downward, so falling is vy > 0.
func Bounces(result *sim.Result, body int) []Bounce {
	idx := body*sim.FrameWidth + FieldVY
	var out []Bounce

	prev, havePrev := 0.0, false
	for i, f := range result.Frames {
		if idx >= len(f) {
			havePrev = false
			continue
		}
		vy := f[idx]
		if havePrev && prev > 0 && vy < 0 {
			out = append(out, Bounce{Time: result.Times[i], Speed: -vy})
		}
		prev, havePrev = vy, true
	}
	return out
}

// SettleTime is the first time after which every body's speed stays at
// or below threshold for the rest of the run. ok is false if the run
// never settles.
func SettleTime(result *sim.Result, threshold float64) (t float64, ok bool) {
	th2 := threshold * threshold
	settledFrom := -1
	for i, f := range result.Frames {
		calm := true
		for b := 0; b+sim.FrameWidth <= len(f); b += sim.FrameWidth {
			vx, vy := f[b+FieldVX], f[b+FieldVY]
			if vx*vx+vy*vy > th2 {
				calm = false
				break
			}
		}
		switch {
		case !calm:
			settledFrom = -1
		case settledFrom < 0:
			settledFrom = i
		}
	}
	if settledFrom < 0 {
		return 0, false
	}
	return result.Times[settledFrom], true
}
