package sim

import (
	"context"
	"sync"

	"github.com/san-kum/tsunami/internal/solver"
)

// Ensemble runs several parameter variants concurrently. Each run owns
// its own solver buffers and metric instances, so no coordination is
// needed beyond the final join.
type Ensemble struct {
	cfg     Config
	metrics func() []Metric
}

// NewEnsemble builds an ensemble; metrics (optional) is called once per
// run so each gets fresh accumulator instances.
func NewEnsemble(cfg Config, metrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, metrics: metrics}
}

// Run executes every variant and returns results in input order. The
// first error wins; remaining results are discarded.
func (e *Ensemble) Run(ctx context.Context, variants []solver.SimParams) ([]*Result, error) {
	results := make([]*Result, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, p := range variants {
		wg.Add(1)
		go func(idx int, p solver.SimParams) {
			defer wg.Done()

			r := New(p)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}
			results[idx], errs[idx] = r.Run(ctx, e.cfg)
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
