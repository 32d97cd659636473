package sim

import (
	"fmt"

	"github.com/san-kum/boxdrop/internal/physics"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(bodies []physics.Body, pairs []physics.Pair, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(bodies []physics.Body, pairs []physics.Pair, t float64)
}

// RunConfig drives a headless run.
type RunConfig struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            1.0 / 60,
		Duration:      5.0,
		ValidateState: true,
	}
}

// Result is the recorded history of a headless run. Each frame holds
// x, y, vx, vy for every body in spawn order.
type Result struct {
	Times      []float64
	Frames     [][]float64
	PairCounts []int
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// FrameWidth is the number of values a single body contributes to a frame.
const FrameWidth = 4

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
