package sim

import (
	"context"
	"math"

	"github.com/san-kum/tsunami/internal/solver"
)

// Runner drives one solve to completion while recording the time
// history and feeding metrics and observers. The bare solver entry
// point produces only the final snapshot; the Runner is what the CLI,
// storage, and sweep layers build on.
type Runner struct {
	params    solver.SimParams
	metrics   []Metric
	observers []Observer
}

func New(p solver.SimParams) *Runner {
	return &Runner{params: p}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances Timesteps steps, recording layers per cfg.Stride. The
// context is checked between steps; on cancellation the partial result
// is returned alongside ctx.Err(). Parameter validation happens before
// any stepping.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	s, err := solver.New(r.params)
	if err != nil {
		return nil, err
	}

	stride := cfg.Stride
	if stride < 1 {
		stride = 1
	}

	steps := r.params.Timesteps
	result := &Result{
		Heights: make([][]float64, 0, steps/stride+2),
		Times:   make([]float64, 0, steps/stride+2),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	record := func() {
		layer := make([]float64, r.params.GridSize)
		s.CopyHeight(layer)
		result.Heights = append(result.Heights, layer)
		result.Times = append(result.Times, s.Time())
	}

	record() // initial condition
	initialEnergy := s.Energy()
	maxDrift := 0.0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.finish(result, maxDrift)
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(s.Height(), s.Time())
		}
		for _, o := range r.observers {
			o.OnStep(s.Height(), s.StepCount(), s.Time())
		}

		if err := s.Step(); err != nil {
			r.finish(result, maxDrift)
			return result, err
		}
		result.StepsTaken++

		if initialEnergy != 0 {
			drift := math.Abs(s.Energy()-initialEnergy) / math.Abs(initialEnergy)
			if drift > maxDrift {
				maxDrift = drift
			}
		}

		if s.StepCount()%stride == 0 {
			record()
		}
	}

	if steps%stride != 0 {
		record() // final layer regardless of stride
	}

	r.finish(result, maxDrift)
	return result, nil
}

func (r *Runner) finish(result *Result, maxDrift float64) {
	result.EnergyDrift = maxDrift
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
