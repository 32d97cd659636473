package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

// PeakContacts is the largest number of overlapping pairs seen in one tick.
type PeakContacts struct {
	name string
	peak int
}

func NewPeakContacts() *PeakContacts {
	return &PeakContacts{name: "peak_contacts"}
}

func (c *PeakContacts) Name() string { return c.name }

func (c *PeakContacts) Observe(bodies []physics.Body, pairs []physics.Pair, t float64) {
	c.peak = max(c.peak, len(pairs))
}

func (c *PeakContacts) Value() float64 { return float64(c.peak) }

func (c *PeakContacts) Reset() { c.peak = 0 }

// MaxSpeed tracks the fastest body speed observed.
type MaxSpeed struct {
	name string
	peak float32
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(bodies []physics.Body, pairs []physics.Pair, t float64) {
	for _, b := range bodies {
		m.peak = math32.Max(m.peak, b.State().Vel.Len())
	}
}

func (m *MaxSpeed) Value() float64 { return float64(m.peak) }

func (m *MaxSpeed) Reset() { m.peak = 0 }

// Default is the metric set recorded by headless runs.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPeakContacts(),
		NewMaxSpeed(),
		NewStability(1.0),
	}
}
