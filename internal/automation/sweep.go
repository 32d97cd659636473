package automation

import (
	"context"
	"log"
	"math/rand"

	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/metrics"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

// DropWorld returns a factory that scatters n boxes over the top half of
// the window with a random sideways velocity, all released at once.
func DropWorld(cfg *config.Config, n int) sim.Factory {
	return func(seed int64) (*sim.World, error) {
		rng := rand.New(rand.NewSource(seed))
		w := sim.New(cfg.Tuning())
		w.SetWorkers(cfg.Workers)
		for _, m := range metrics.Default() {
			w.AddMetric(m)
		}

		s := cfg.Spawn
		width, height := float32(cfg.Width), float32(cfg.Height)
		for range n {
			x := s.Width/2 + rng.Float32()*(width-s.Width)
			y := s.Height/2 + rng.Float32()*(height/2-s.Height)
			if _, err := w.SpawnRectangle(x, y, s.Width, s.Height, s.Mass); err != nil {
				return nil, err
			}
			b := w.Release()
			b.State().Vel.X = (rng.Float32()*2 - 1) * 200
		}
		return w, nil
	}
}

// ParameterSweep runs the same drop across a range of one tuning value.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Duration  float64
	Bodies    int
	Seed      int64
}

// SweepResult holds the metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Steps      int
}

// RunSweep executes a parameter sweep. Every point uses the same seed so
// only the swept value differs between runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep, cfg *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, &physics.ArgumentError{Param: "steps", Value: float64(sweep.NumSteps), Reason: "must be at least 1"}
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	runCfg := sim.RunConfig{Dt: float64(cfg.Dt()), Duration: sweep.Duration, ValidateState: true}
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := range sweep.NumSteps {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		c := *cfg
		if err := c.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		w, err := DropWorld(&c, sweep.Bodies)(sweep.Seed)
		if err != nil {
			return nil, err
		}

		result, err := w.Run(ctx, runCfg, c.Bounds())
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			Steps:      result.StepsTaken,
		})

		log.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
