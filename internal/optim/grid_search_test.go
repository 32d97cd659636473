package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/boxdrop/internal/metrics"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

func dropBuilder(params map[string]float64) (*sim.World, error) {
	tuning := physics.DefaultTuning()
	tuning.Restitution = float32(params["restitution"])

	w := sim.New(tuning)
	w.AddMetric(metrics.NewKineticEnergy())
	if _, err := w.SpawnRectangle(400, 100, 10, 10, 10); err != nil {
		return nil, err
	}
	w.Release()
	return w, nil
}

func runConfig() sim.RunConfig {
	return sim.RunConfig{Dt: 1.0 / 60, Duration: 2}
}

func TestGridSearch(t *testing.T) {
	bounds := physics.NewBounds(800, 450)
	grid := [][]float64{{0.9, 0, 0.5}}

	best, val, err := NewGridSearch([]string{"restitution"}, grid).
		Search(context.Background(), dropBuilder, runConfig(), bounds, "kinetic_energy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best["restitution"] != 0 {
		t.Errorf("least energy should come from a dead bounce, got %v", best)
	}

	bestMax, valMax, err := NewGridSearch([]string{"restitution"}, grid).Maximize().
		Search(context.Background(), dropBuilder, runConfig(), bounds, "kinetic_energy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if bestMax["restitution"] != 0.9 {
		t.Errorf("most energy should come from the liveliest bounce, got %v", bestMax)
	}
	if valMax <= val {
		t.Errorf("max %v should exceed min %v", valMax, val)
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	boom := errors.New("boom")
	build := func(params map[string]float64) (*sim.World, error) {
		if params["restitution"] > 0.5 {
			return nil, boom
		}
		return dropBuilder(params)
	}

	best, _, err := NewGridSearch([]string{"restitution"}, [][]float64{{0.2, 0.9}}).
		Search(context.Background(), build, runConfig(), physics.NewBounds(800, 450), "kinetic_energy")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best["restitution"] != 0.2 {
		t.Errorf("got %v", best)
	}

	_, _, err = NewGridSearch([]string{"restitution"}, [][]float64{{0.9}}).
		Search(context.Background(), build, runConfig(), physics.NewBounds(800, 450), "kinetic_energy")
	if !errors.Is(err, boom) {
		t.Errorf("expected build error when nothing succeeds, got %v", err)
	}
}

func TestGridSearchMismatchedRanges(t *testing.T) {
	_, _, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}).
		Search(context.Background(), dropBuilder, runConfig(), physics.NewBounds(800, 450), "kinetic_energy")
	if !errors.Is(err, physics.ErrInvalidArgument) {
		t.Errorf("expected invalid argument, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("single point: got %v", got)
	}
}
