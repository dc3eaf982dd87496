package sweep

import (
	"context"
	"testing"

	"github.com/san-kum/tsunami/internal/metrics"
	"github.com/san-kum/tsunami/internal/sim"
	"github.com/san-kum/tsunami/internal/solver"
)

// baseParams runs at the Courant limit with the pulse well inside the
// basin, so the final peak is the front value damped per step and the
// decay ordering below is exact.
func baseParams() solver.SimParams {
	return solver.SimParams{
		ICenter:   16,
		GridSize:  33,
		Timesteps: 12,
		Dt:        1.0,
		Dx:        1.0,
		C:         1.0,
	}
}

func TestNewGridValidation(t *testing.T) {
	if _, err := NewGrid([]string{"decay"}, nil); err == nil {
		t.Error("expected mismatch rejection")
	}
	if _, err := NewGrid([]string{"icenter"}, [][]float64{{1}}); err == nil {
		t.Error("expected unknown parameter rejection")
	}
	if _, err := NewGrid([]string{"decay"}, [][]float64{{}}); err == nil {
		t.Error("expected empty list rejection")
	}
}

func TestVariantsCartesian(t *testing.T) {
	g, err := NewGrid([]string{"decay", "c"}, [][]float64{{0, 0.1}, {0.5, 0.8, 1.0}})
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	variants, assignments := g.Variants(baseParams())
	if len(variants) != 6 {
		t.Fatalf("expected 6 variants, got %d", len(variants))
	}

	seen := map[[2]float64]bool{}
	for i, p := range variants {
		if p.Decay != assignments[i]["decay"] || p.C != assignments[i]["c"] {
			t.Errorf("variant %d does not match its assignment", i)
		}
		seen[[2]float64{p.Decay, p.C}] = true
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 distinct combinations, got %d", len(seen))
	}
}

func TestSearchFindsStrongestDamping(t *testing.T) {
	g, err := NewGrid([]string{"decay"}, [][]float64{{0, 0.02, 0.08}})
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	best, all, err := g.Search(context.Background(), baseParams(), "final_peak", sim.Config{}, func() []sim.Metric {
		return []sim.Metric{metrics.NewFinalPeak()}
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("expected 3 combinations, got %d", len(all))
	}
	// The most damped run leaves the least wave behind.
	if best.Params["decay"] != 0.08 {
		t.Errorf("expected decay 0.08 to win, got %g", best.Params["decay"])
	}
	if best.Score <= 0 {
		t.Errorf("expected a positive residual peak, got %g", best.Score)
	}
}

func TestSearchUnknownMetric(t *testing.T) {
	g, err := NewGrid([]string{"decay"}, [][]float64{{0}})
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	_, _, err = g.Search(context.Background(), baseParams(), "nope", sim.Config{}, nil)
	if err == nil {
		t.Error("expected unknown metric error")
	}
}
