package solver

import (
	"errors"
	"math"
	"testing"
)

func baseParams() SimParams {
	return SimParams{
		ICenter:   16,
		GridSize:  33,
		Timesteps: 10,
		Dt:        0.5,
		Dx:        1.0,
		C:         1.0,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SimParams)
	}{
		{"grid too small", func(p *SimParams) { p.GridSize = 2; p.ICenter = 0 }},
		{"icenter negative", func(p *SimParams) { p.ICenter = -1 }},
		{"icenter out of range", func(p *SimParams) { p.ICenter = 33 }},
		{"negative timesteps", func(p *SimParams) { p.Timesteps = -1 }},
		{"zero dt", func(p *SimParams) { p.Dt = 0 }},
		{"negative dx", func(p *SimParams) { p.Dx = -1 }},
		{"zero c", func(p *SimParams) { p.C = 0 }},
		{"negative decay", func(p *SimParams) { p.Decay = -0.1 }},
		{"courant violated", func(p *SimParams) { p.Dt = 1.5 }},
		{"nan dt", func(p *SimParams) { p.Dt = math.NaN() }},
		{"inf amplitude", func(p *SimParams) { p.Amplitude = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.modify(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	if err := baseParams().Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
}

func TestRunCourantViolation(t *testing.T) {
	p := baseParams()
	p.C = 3.0 // c*dt/dx = 1.5

	h := make([]float64, p.GridSize)
	h[0] = 42 // sentinel: buffer must stay untouched on failure

	err := Run(p, h)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if h[0] != 42 {
		t.Error("output buffer was written despite validation failure")
	}
}

func TestRunUndersizedBuffer(t *testing.T) {
	p := baseParams()
	h := make([]float64, p.GridSize-1)
	if err := Run(p, h); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for short buffer, got %v", err)
	}
}

func TestZeroTimesteps(t *testing.T) {
	p := baseParams()
	p.Timesteps = 0

	h := make([]float64, p.GridSize)
	if err := Run(p, h); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i, v := range h {
		want := 0.0
		if i == p.ICenter {
			want = 1.0
		}
		if v != want {
			t.Errorf("h[%d] = %g, want %g", i, v, want)
		}
	}
}

// Single-step values for grid_size=5, icenter=2, r=0.1: the seed loses
// 2r² to the curvature term and each neighbor gains r².
func TestSingleStepStencil(t *testing.T) {
	p := SimParams{ICenter: 2, GridSize: 5, Timesteps: 1, Dt: 0.1, Dx: 1.0, C: 1.0}

	h := make([]float64, 5)
	if err := Run(p, h); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(h[2]-0.98) > 1e-15 {
		t.Errorf("h[2] = %g, want 0.98", h[2])
	}
	if h[1] != h[3] {
		t.Errorf("expected symmetric neighbors, got h[1]=%g h[3]=%g", h[1], h[3])
	}
	if math.Abs(h[1]-0.01) > 1e-15 {
		t.Errorf("h[1] = %g, want 0.01", h[1])
	}
	if h[0] != 0 || h[4] != 0 {
		t.Errorf("fixed boundaries must stay zero, got h[0]=%g h[4]=%g", h[0], h[4])
	}
}

func TestDeterminism(t *testing.T) {
	p := baseParams()
	p.Timesteps = 50
	p.Decay = 0.01

	a := make([]float64, p.GridSize)
	b := make([]float64, p.GridSize)
	if err := Run(p, a); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := Run(p, b); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestBoundaryPoliciesDiffer(t *testing.T) {
	p := baseParams()
	p.Timesteps = 60 // long enough for the wave to hit both edges

	fixed := make([]float64, p.GridSize)
	if err := Run(p, fixed); err != nil {
		t.Fatalf("fixed run failed: %v", err)
	}

	p.Boundary = BoundaryReflective
	refl := make([]float64, p.GridSize)
	if err := Run(p, refl); err != nil {
		t.Fatalf("reflective run failed: %v", err)
	}

	same := true
	for i := range fixed {
		if fixed[i] != refl[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("boundary policy had no effect after edge contact")
	}
}

func TestInstabilityDetected(t *testing.T) {
	p := baseParams()
	p.Amplitude = math.MaxFloat64 // 2*amp overflows in the first update
	p.Timesteps = 5

	s, err := New(p)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	err = s.Step()
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}

	var se *StepError
	if !errors.As(err, &se) {
		t.Fatal("expected StepError")
	}
	if se.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", se.Step)
	}
}

func TestSetParam(t *testing.T) {
	s, err := New(baseParams())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if err := s.SetParam("decay", 0.05); err != nil {
		t.Errorf("set decay failed: %v", err)
	}
	if got := s.GetParams()["decay"]; got != 0.05 {
		t.Errorf("decay = %g, want 0.05", got)
	}

	// c=3 would push the Courant number to 1.5
	if err := s.SetParam("c", 3.0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected Courant rejection, got %v", err)
	}
	if got := s.GetParams()["c"]; got != 1.0 {
		t.Errorf("rejected SetParam mutated c to %g", got)
	}

	if err := s.SetParam("dx", 2.0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected rejection of non-tunable param, got %v", err)
	}
}

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in   string
		want BoundaryPolicy
		ok   bool
	}{
		{"", BoundaryFixed, true},
		{"fixed", BoundaryFixed, true},
		{"reflective", BoundaryReflective, true},
		{"absorbing", BoundaryFixed, false},
	}

	for _, tt := range tests {
		got, err := ParseBoundary(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ParseBoundary(%q) failed: %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseBoundary(%q) accepted", tt.in)
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseBoundary(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStepErrorFormat(t *testing.T) {
	err := &StepError{Step: 12, Time: 6.0, Wrapped: ErrUnstable}
	want := "step 12 (t=6.0000): solver: numerical instability (non-finite height)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
