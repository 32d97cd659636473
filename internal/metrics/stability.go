package metrics

import (
	"github.com/san-kum/boxdrop/internal/physics"
)

// Stability is the fraction of ticks on which every body moved slower
// than threshold, i.e. the pile had settled.
type Stability struct {
	name      string
	threshold float32
	settled   int
	samples   int
}

func NewStability(threshold float32) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(bodies []physics.Body, pairs []physics.Pair, t float64) {
	s.samples++
	for _, b := range bodies {
		if b.State().Vel.Len() > s.threshold {
			return
		}
	}
	s.settled++
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.settled) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.settled = 0
	s.samples = 0
}
