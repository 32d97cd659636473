package metrics

import (
	"github.com/san-kum/boxdrop/internal/physics"
)

// KineticEnergy averages the total kinetic energy of all bodies over the
// observed ticks. It only reads mass; nothing feeds back into the step.
type KineticEnergy struct {
	name    string
	total   float64
	last    float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(bodies []physics.Body, pairs []physics.Pair, t float64) {
	ke := Kinetic(bodies)
	e.total += ke
	e.last = ke
	e.peak = max(e.peak, ke)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last is the energy seen on the most recent tick.
func (e *KineticEnergy) Last() float64 { return e.last }
func (e *KineticEnergy) Peak() float64 { return e.peak }

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.last = 0
	e.peak = 0
	e.samples = 0
}

// Kinetic returns Σ ½·m·|v|² over bodies.
func Kinetic(bodies []physics.Body) float64 {
	sum := 0.0
	for _, b := range bodies {
		k := b.State()
		sum += 0.5 * float64(k.Mass()) * float64(k.Vel.LenSq())
	}
	return sum
}
