package solver

import (
	"fmt"
	"math"
)

// BoundaryPolicy selects how the two grid edges are treated.
type BoundaryPolicy int

const (
	// BoundaryFixed holds both edges at zero (Dirichlet).
	BoundaryFixed BoundaryPolicy = iota
	// BoundaryReflective mirrors the interior neighbor across each edge
	// (Neumann), so waves reflect without sign inversion.
	BoundaryReflective
)

func (b BoundaryPolicy) String() string {
	switch b {
	case BoundaryReflective:
		return "reflective"
	default:
		return "fixed"
	}
}

// ParseBoundary maps a config/CLI string to a BoundaryPolicy.
func ParseBoundary(s string) (BoundaryPolicy, error) {
	switch s {
	case "", "fixed":
		return BoundaryFixed, nil
	case "reflective":
		return BoundaryReflective, nil
	default:
		return BoundaryFixed, &ParamError{Field: "boundary", Reason: fmt.Sprintf("unknown policy %q", s)}
	}
}

// SimParams describes one solve. The struct is read-only to the solver;
// a caller fills it, passes it in, and owns it afterwards.
type SimParams struct {
	ICenter   int     // grid index of the initial disturbance
	GridSize  int     // number of spatial sample points, > 2
	Timesteps int     // number of discrete steps to advance, >= 0
	Dt        float64 // time-step size, > 0
	Dx        float64 // spatial-step size, > 0
	C         float64 // wave propagation speed, > 0
	Decay     float64 // per-step amplitude damping, >= 0

	// Amplitude of the initial disturbance. Zero means a unit impulse.
	Amplitude float64
	// Boundary defaults to BoundaryFixed. Note that seeding ICenter on a
	// fixed edge produces a disturbance that vanishes after one step.
	Boundary BoundaryPolicy
}

// Courant returns the stability ratio C*Dt/Dx. The explicit scheme is
// stable only when this does not exceed 1.
func (p SimParams) Courant() float64 { return p.C * p.Dt / p.Dx }

func (p SimParams) amplitude() float64 {
	if p.Amplitude == 0 {
		return 1.0
	}
	return p.Amplitude
}

// Validate checks every precondition of the scheme. It returns a
// ParamError (unwrapping to ErrInvalidParameter) for the first
// violation found.
func (p SimParams) Validate() error {
	switch {
	case p.GridSize <= 2:
		return &ParamError{Field: "grid_size", Reason: fmt.Sprintf("must be > 2, got %d", p.GridSize)}
	case p.ICenter < 0 || p.ICenter >= p.GridSize:
		return &ParamError{Field: "icenter", Reason: fmt.Sprintf("must be in [0, %d), got %d", p.GridSize, p.ICenter)}
	case p.Timesteps < 0:
		return &ParamError{Field: "timesteps", Reason: fmt.Sprintf("must be >= 0, got %d", p.Timesteps)}
	case p.Dt <= 0 || math.IsNaN(p.Dt) || math.IsInf(p.Dt, 0):
		return &ParamError{Field: "dt", Reason: fmt.Sprintf("must be positive and finite, got %g", p.Dt)}
	case p.Dx <= 0 || math.IsNaN(p.Dx) || math.IsInf(p.Dx, 0):
		return &ParamError{Field: "dx", Reason: fmt.Sprintf("must be positive and finite, got %g", p.Dx)}
	case p.C <= 0 || math.IsNaN(p.C) || math.IsInf(p.C, 0):
		return &ParamError{Field: "c", Reason: fmt.Sprintf("must be positive and finite, got %g", p.C)}
	case p.Decay < 0 || math.IsNaN(p.Decay):
		return &ParamError{Field: "decay", Reason: fmt.Sprintf("must be >= 0, got %g", p.Decay)}
	case math.IsNaN(p.Amplitude) || math.IsInf(p.Amplitude, 0):
		return &ParamError{Field: "amplitude", Reason: "must be finite"}
	case p.Courant() > 1:
		return &ParamError{Field: "courant", Reason: fmt.Sprintf("c*dt/dx = %.4f exceeds 1 (unstable)", p.Courant())}
	}
	return nil
}
