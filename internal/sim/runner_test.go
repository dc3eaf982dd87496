package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/tsunami/internal/solver"
)

func testParams() solver.SimParams {
	return solver.SimParams{
		ICenter:   16,
		GridSize:  33,
		Timesteps: 10,
		Dt:        0.5,
		Dx:        1.0,
		C:         1.0,
	}
}

type countingMetric struct {
	count int
}

func (m *countingMetric) Name() string                   { return "count" }
func (m *countingMetric) Observe(h []float64, t float64) { m.count++ }
func (m *countingMetric) Value() float64                 { return float64(m.count) }
func (m *countingMetric) Reset()                         { m.count = 0 }

func TestRunnerRecordsHistory(t *testing.T) {
	r := New(testParams())

	result, err := r.Run(context.Background(), Config{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Heights) != 11 {
		t.Errorf("expected 11 layers (initial + 10 steps), got %d", len(result.Heights))
	}
	if len(result.Times) != len(result.Heights) {
		t.Errorf("times/heights length mismatch: %d vs %d", len(result.Times), len(result.Heights))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	if result.Times[0] != 0 {
		t.Errorf("first time should be 0, got %g", result.Times[0])
	}
	if result.Heights[0][16] != 1.0 {
		t.Errorf("initial layer should carry the seed, got %g", result.Heights[0][16])
	}
}

func TestRunnerStride(t *testing.T) {
	p := testParams()
	p.Timesteps = 10

	r := New(p)
	result, err := r.Run(context.Background(), Config{Stride: 4})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// initial + steps 4, 8 + final layer 10
	if len(result.Heights) != 4 {
		t.Errorf("expected 4 recorded layers, got %d", len(result.Heights))
	}
	last := result.Times[len(result.Times)-1]
	if last != 5.0 {
		t.Errorf("final layer should be at t=5, got %g", last)
	}
}

func TestRunnerMetrics(t *testing.T) {
	r := New(testParams())
	m := &countingMetric{}
	r.AddMetric(m)

	result, err := r.Run(context.Background(), Config{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.count != 10 {
		t.Errorf("expected 10 observations, got %d", m.count)
	}
	if _, ok := result.Metrics["count"]; !ok {
		t.Error("metric missing from result")
	}
}

func TestRunnerInvalidParams(t *testing.T) {
	p := testParams()
	p.Dt = 2.0 // Courant 2.0

	_, err := New(p).Run(context.Background(), Config{})
	if !errors.Is(err, solver.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRunnerCancellation(t *testing.T) {
	p := testParams()
	p.Timesteps = 1000000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(p)
	r.AddMetric(&countingMetric{})
	result, err := r.Run(ctx, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.Heights) == 0 {
		t.Error("expected partial result with the initial layer")
	}
	// Partial results are finished like complete ones.
	if _, ok := result.Metrics["count"]; !ok {
		t.Error("expected metrics on the partial result")
	}
}

func TestResultFinal(t *testing.T) {
	empty := &Result{}
	if empty.Final() != nil {
		t.Error("expected nil final layer for empty result")
	}

	r := New(testParams())
	result, err := r.Run(context.Background(), Config{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := result.Final()
	direct := make([]float64, 33)
	if err := solver.Run(testParams(), direct); err != nil {
		t.Fatalf("direct run failed: %v", err)
	}
	for i := range direct {
		if final[i] != direct[i] {
			t.Fatalf("runner final layer diverges from direct solve at %d", i)
		}
	}
}
