package sim

import (
	"context"
	"math"

	"github.com/san-kum/boxdrop/internal/physics"
)

// Run advances the world for cfg.Duration at a fixed cfg.Dt and records
// every tick. The context is checked between ticks only.
func (w *World) Run(ctx context.Context, cfg RunConfig, bounds physics.Bounds) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	result := &Result{
		Times:      make([]float64, 0, steps+1),
		Frames:     make([][]float64, 0, steps+1),
		PairCounts: make([]int, 0, steps+1),
		Metrics:    make(map[string]float64),
		Errors:     make([]error, 0),
	}

	for _, m := range w.metrics {
		m.Reset()
	}

	dt := float32(cfg.Dt)
	result.Times = append(result.Times, w.t)
	result.Frames = append(result.Frames, w.frame())
	result.PairCounts = append(result.PairCounts, len(w.pairs))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		w.Tick(dt, bounds)

		if cfg.ValidateState && !w.finite() {
			result.Errors = append(result.Errors, SimError{Time: w.t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		result.StepsTaken++
		result.Times = append(result.Times, w.t)
		result.Frames = append(result.Frames, w.frame())
		result.PairCounts = append(result.PairCounts, len(w.pairs))
	}

	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback ticks until the callback returns false or the context
// is done. bounds is asked for the world size before every tick.
func (w *World) RunWithCallback(ctx context.Context, dt float32, bounds func() physics.Bounds, callback func(*World) bool) error {
	if dt <= 0 {
		return &physics.ArgumentError{Param: "dt", Value: float64(dt), Reason: "must be positive"}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.Tick(dt, bounds())

		if !callback(w) {
			return nil
		}
	}
}

func validateConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return &physics.ArgumentError{Param: "dt", Value: cfg.Dt, Reason: "must be positive"}
	}
	if cfg.Duration <= 0 {
		return &physics.ArgumentError{Param: "duration", Value: cfg.Duration, Reason: "must be positive"}
	}
	return nil
}

func (w *World) frame() []float64 {
	f := make([]float64, 0, len(w.bodies)*FrameWidth)
	for _, b := range w.bodies {
		k := b.State()
		f = append(f, float64(k.Pos.X), float64(k.Pos.Y), float64(k.Vel.X), float64(k.Vel.Y))
	}
	return f
}

func (w *World) finite() bool {
	for _, b := range w.bodies {
		k := b.State()
		if !k.Pos.IsFinite() || !k.Vel.IsFinite() {
			return false
		}
	}
	return true
}
