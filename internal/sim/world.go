package sim

import (
	"slices"

	"github.com/san-kum/boxdrop/internal/physics"
)

// World owns every body in the playground and advances them one fixed tick
// at a time. It is not safe for concurrent use.
type World struct {
	tuning    physics.Tuning
	workers   int
	bodies    []physics.Body
	held      physics.Body
	pairs     []physics.Pair
	metrics   []Metric
	observers []Observer
	t         float64
	ticks     int
}

func New(tuning physics.Tuning) *World {
	return &World{
		tuning:    tuning,
		bodies:    make([]physics.Body, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// SetWorkers spreads pair detection over n goroutines. n <= 1 keeps it on
// the calling goroutine.
func (w *World) SetWorkers(n int) { w.workers = n }

func (w *World) Tuning() physics.Tuning { return w.tuning }

// SetTuning takes effect from the next tick and the next release.
func (w *World) SetTuning(t physics.Tuning) { w.tuning = t }

// SpawnRectangle creates a rectangle and holds it at the pointer. A held
// body is not simulated until Release. Spawning while already holding a
// body discards the previous one.
func (w *World) SpawnRectangle(x, y, width, height, mass float32) (*physics.Rectangle, error) {
	r, err := physics.NewRectangle(x, y, width, height, mass)
	if err != nil {
		return nil, err
	}
	w.held = r
	return r, nil
}

// Drag moves the held body, if any, to (x, y).
func (w *World) Drag(x, y float32) {
	if w.held == nil {
		return
	}
	w.held.State().Pos = physics.V(x, y)
}

// Release hands the held body over to the simulation with gravity applied.
// It returns nil when nothing is held.
func (w *World) Release() physics.Body {
	b := w.held
	if b == nil {
		return nil
	}
	w.held = nil
	b.State().Acc.Y = w.tuning.Gravity
	w.bodies = append(w.bodies, b)
	return b
}

// Add appends a body as is, without touching its acceleration.
func (w *World) Add(b physics.Body) {
	w.bodies = append(w.bodies, b)
}

// Tick runs one step: integrate every body, clamp each to bounds, then
// collect the overlapping pairs from the resolved positions.
func (w *World) Tick(dt float32, bounds physics.Bounds) {
	for _, b := range w.bodies {
		b.Update(dt)
	}
	for _, b := range w.bodies {
		physics.ResolveBoundary(b, bounds, w.tuning)
	}
	w.pairs = physics.DetectPairsParallel(w.bodies, w.workers)

	w.t += float64(dt)
	w.ticks++

	for _, m := range w.metrics {
		m.Observe(w.bodies, w.pairs, w.t)
	}
	for _, o := range w.observers {
		o.OnTick(w.bodies, w.pairs, w.t)
	}
}

// DetectedPairs returns the pairs found by the most recent tick.
func (w *World) DetectedPairs() []physics.Pair {
	return slices.Clone(w.pairs)
}

// Bodies returns the simulated bodies in spawn order. The slice is a copy;
// the bodies are not and must not be kept past the current tick.
func (w *World) Bodies() []physics.Body {
	return slices.Clone(w.bodies)
}

func (w *World) Held() physics.Body { return w.held }
func (w *World) Len() int           { return len(w.bodies) }
func (w *World) Time() float64      { return w.t }
func (w *World) Ticks() int         { return w.ticks }

// Reset drops every body and rewinds the clock. Metrics are reset too.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
	w.held = nil
	w.pairs = nil
	w.t = 0
	w.ticks = 0
	for _, m := range w.metrics {
		m.Reset()
	}
}
