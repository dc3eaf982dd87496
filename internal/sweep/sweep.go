// Package sweep runs a parameter grid search over solve parameters,
// scoring each combination by a recorded metric.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/tsunami/internal/sim"
	"github.com/san-kum/tsunami/internal/solver"
)

// Grid enumerates the cartesian product of per-parameter value lists.
// Supported parameter names: c, decay, dt, dx, amplitude.
type Grid struct {
	names  []string
	values [][]float64
}

func NewGrid(names []string, values [][]float64) (*Grid, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("sweep: %d names but %d value lists", len(names), len(values))
	}
	for i, name := range names {
		if !tunable(name) {
			return nil, fmt.Errorf("sweep: unknown parameter %q", name)
		}
		if len(values[i]) == 0 {
			return nil, fmt.Errorf("sweep: empty value list for %q", name)
		}
	}
	return &Grid{names: names, values: values}, nil
}

func tunable(name string) bool {
	switch name {
	case "c", "decay", "dt", "dx", "amplitude":
		return true
	}
	return false
}

func apply(p solver.SimParams, name string, v float64) solver.SimParams {
	switch name {
	case "c":
		p.C = v
	case "decay":
		p.Decay = v
	case "dt":
		p.Dt = v
	case "dx":
		p.Dx = v
	case "amplitude":
		p.Amplitude = v
	}
	return p
}

// Combination pairs one parameter assignment with its score.
type Combination struct {
	Params map[string]float64
	Score  float64
}

// Variants expands the grid against a base parameter set, in
// deterministic order.
func (g *Grid) Variants(base solver.SimParams) ([]solver.SimParams, []map[string]float64) {
	params := []solver.SimParams{base}
	assignments := []map[string]float64{{}}

	for d, name := range g.names {
		nextParams := make([]solver.SimParams, 0, len(params)*len(g.values[d]))
		nextAssign := make([]map[string]float64, 0, len(params)*len(g.values[d]))
		for i, p := range params {
			for _, v := range g.values[d] {
				nextParams = append(nextParams, apply(p, name, v))
				a := make(map[string]float64, len(assignments[i])+1)
				for k, val := range assignments[i] {
					a[k] = val
				}
				a[name] = v
				nextAssign = append(nextAssign, a)
			}
		}
		params, assignments = nextParams, nextAssign
	}
	return params, assignments
}

// Search runs every combination concurrently and returns the one with
// the smallest value of the named metric, plus all scored combinations
// in grid order.
func (g *Grid) Search(ctx context.Context, base solver.SimParams, metricName string, cfg sim.Config, metrics func() []sim.Metric) (*Combination, []Combination, error) {
	variants, assignments := g.Variants(base)

	ensemble := sim.NewEnsemble(cfg, metrics)
	results, err := ensemble.Run(ctx, variants)
	if err != nil {
		return nil, nil, err
	}

	best := math.Inf(1)
	bestIdx := -1
	all := make([]Combination, len(results))
	for i, res := range results {
		score, ok := res.Metrics[metricName]
		if !ok {
			return nil, nil, fmt.Errorf("sweep: metric %q not recorded", metricName)
		}
		all[i] = Combination{Params: assignments[i], Score: score}
		if score < best {
			best = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return nil, nil, fmt.Errorf("sweep: no combinations evaluated")
	}
	return &all[bestIdx], all, nil
}
