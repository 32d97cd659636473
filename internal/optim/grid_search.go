package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

// Builder returns a fresh world for one grid point.
type Builder func(params map[string]float64) (*sim.World, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Maximize makes Search look for the largest metric value instead of the
// smallest.
func (g *GridSearch) Maximize() *GridSearch {
	g.maximize = true
	return g
}

// Search runs every combination of the grid and returns the best one.
// Points whose world fails to build or run are skipped; the first such
// error is returned only if no point succeeded.
func (g *GridSearch) Search(
	ctx context.Context,
	build Builder,
	cfg sim.RunConfig,
	bounds physics.Bounds,
	metricName string,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d params but %d ranges: %w", len(g.paramNames), len(g.ranges), physics.ErrInvalidArgument)
	}

	s := &search{
		g:      g,
		build:  build,
		cfg:    cfg,
		bounds: bounds,
		metric: metricName,
		best:   math.Inf(1),
	}
	if g.maximize {
		s.best = math.Inf(-1)
	}

	if err := s.recurse(ctx, 0, make(map[string]float64)); err != nil {
		return nil, 0, err
	}
	if s.bestParams == nil {
		if s.firstErr != nil {
			return nil, 0, s.firstErr
		}
		return nil, 0, fmt.Errorf("metric %q not reported by any grid point", metricName)
	}
	return s.bestParams, s.best, nil
}

type search struct {
	g          *GridSearch
	build      Builder
	cfg        sim.RunConfig
	bounds     physics.Bounds
	metric     string
	best       float64
	bestParams map[string]float64
	firstErr   error
}

func (s *search) better(v float64) bool {
	if s.g.maximize {
		return v > s.best
	}
	return v < s.best
}

func (s *search) recurse(ctx context.Context, depth int, current map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(s.g.paramNames) {
		w, err := s.build(current)
		if err == nil {
			var result *sim.Result
			result, err = w.Run(ctx, s.cfg, s.bounds)
			if err == nil {
				val, ok := result.Metrics[s.metric]
				if ok && s.better(val) {
					s.best = val
					s.bestParams = make(map[string]float64, len(current))
					for k, v := range current {
						s.bestParams[k] = v
					}
				}
				return nil
			}
		}
		if s.firstErr == nil {
			s.firstErr = err
		}
		return nil
	}

	paramName := s.g.paramNames[depth]
	for _, val := range s.g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := s.recurse(ctx, depth+1, next); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
