package metrics

import (
	"math"
	"testing"
)

func TestPeakHeight(t *testing.T) {
	m := NewPeakHeight()

	m.Observe([]float64{0, 0.5, -0.8}, 0)
	if m.Value() != 0.8 {
		t.Errorf("expected 0.8, got %g", m.Value())
	}

	m.Observe([]float64{0.1, -0.2}, 1)
	if m.Value() != 0.8 {
		t.Errorf("peak should not decrease, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %g", m.Value())
	}
}

func TestFinalPeak(t *testing.T) {
	m := NewFinalPeak()

	m.Observe([]float64{0, 1.0}, 0)
	m.Observe([]float64{0.1, -0.3}, 1)

	if m.Value() != 0.3 {
		t.Errorf("expected last-layer peak 0.3, got %g", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(1.0)

	m.Observe([]float64{0.5, -0.5}, 0)
	m.Observe([]float64{2.0, 0}, 1)
	m.Observe([]float64{math.NaN()}, 2)
	m.Observe([]float64{0.1}, 3)

	if got := m.Value(); got != 0.5 {
		t.Errorf("expected 0.5, got %g", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 with no samples, got %g", m.Value())
	}
}

func TestWaveFront(t *testing.T) {
	m := NewWaveFront(2, 1e-9)

	m.Observe([]float64{0, 0, 1, 0, 0}, 0)
	if m.Value() != 0 {
		t.Errorf("expected reach 0, got %g", m.Value())
	}

	m.Observe([]float64{0, 0.2, 0.5, 0.2, 0}, 1)
	if m.Value() != 1 {
		t.Errorf("expected reach 1, got %g", m.Value())
	}

	m.Observe([]float64{0.1, 0, 0, 0, 0}, 2)
	if m.Value() != 2 {
		t.Errorf("expected reach 2, got %g", m.Value())
	}
}
