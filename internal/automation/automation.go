package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/metrics"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of pointer actions played against a
// world, the way a user would with the mouse.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Action is one of spawn,
// drag, release or wait. X and Y are used by spawn and drag, Ticks by wait.
type ScenarioStep struct {
	Action string  `yaml:"action"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Ticks  int     `yaml:"ticks"`
}

// StepReport is the world as it was after a step.
type StepReport struct {
	Action string
	Tick   int
	Time   float64
	Bodies int
	Pairs  int
}

type ScenarioResult struct {
	Name    string
	Steps   []StepReport
	Metrics map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Validate checks every step before anything runs.
func (s *Scenario) Validate() error {
	for i, step := range s.Steps {
		switch step.Action {
		case "spawn", "drag", "release":
		case "wait":
			if step.Ticks < 0 {
				return fmt.Errorf("step %d: %w", i+1, &physics.ArgumentError{Param: "ticks", Value: float64(step.Ticks), Reason: "must be non-negative"})
			}
		default:
			return fmt.Errorf("step %d: unknown action %q: %w", i+1, step.Action, physics.ErrInvalidArgument)
		}
	}
	if s.Preset != "" && config.GetPreset(s.Preset) == nil {
		return fmt.Errorf("unknown preset %q: %w", s.Preset, physics.ErrInvalidArgument)
	}
	return nil
}

// RunScenario executes all steps against a fresh world built from cfg.
// A preset named by the scenario replaces cfg's physics.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config) (*ScenarioResult, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	c := *cfg
	if scenario.Preset != "" {
		c.Physics = config.Presets[scenario.Preset]
	}

	world := sim.New(c.Tuning())
	world.SetWorkers(c.Workers)
	ms := metrics.Default()
	for _, m := range ms {
		world.AddMetric(m)
	}

	dt, bounds := c.Dt(), c.Bounds()
	res := &ScenarioResult{
		Name:    scenario.Name,
		Steps:   make([]StepReport, 0, len(scenario.Steps)),
		Metrics: make(map[string]float64),
	}

	for i, step := range scenario.Steps {
		switch step.Action {
		case "spawn":
			s := c.Spawn
			if _, err := world.SpawnRectangle(step.X, step.Y, s.Width, s.Height, s.Mass); err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
		case "drag":
			world.Drag(step.X, step.Y)
		case "release":
			if world.Release() == nil {
				log.Printf("scenario %s step %d: release with nothing held", scenario.Name, i+1)
			}
		case "wait":
			for range step.Ticks {
				select {
				case <-ctx.Done():
					return res, ctx.Err()
				default:
				}
				world.Tick(dt, bounds)
			}
		}

		res.Steps = append(res.Steps, StepReport{
			Action: step.Action,
			Tick:   world.Ticks(),
			Time:   world.Time(),
			Bodies: world.Len(),
			Pairs:  len(world.DetectedPairs()),
		})
	}

	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}

	return res, nil
}
