package solver

import "fmt"

// Solver advances one damped-wave solve step by step. It is not safe
// for concurrent use; run concurrent solves with separate Solvers.
type Solver struct {
	p    SimParams
	f    *field
	step int
	r2   float64 // squared Courant number
	damp float64 // 1 - decay
}

// New validates p, allocates the three time layers, and seeds the
// initial disturbance. No stepping has happened yet; Height returns
// the initial condition.
func New(p SimParams) (*Solver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{p: p, f: newField(p.GridSize)}
	s.deriveCoeffs()
	s.f.seed(p.ICenter, p.amplitude())
	return s, nil
}

func (s *Solver) deriveCoeffs() {
	r := s.p.Courant()
	s.r2 = r * r
	s.damp = 1 - s.p.Decay
}

// Params returns a copy of the parameters the solver was built with,
// including any live adjustments made through SetParam.
func (s *Solver) Params() SimParams { return s.p }

// StepCount returns the number of steps taken so far.
func (s *Solver) StepCount() int { return s.step }

// Time returns the simulated time of the current layer.
func (s *Solver) Time() float64 { return float64(s.step) * s.p.Dt }

// Height returns the current layer. The slice aliases solver-owned
// memory and is invalidated by the next Step; use CopyHeight to keep it.
func (s *Solver) Height() []float64 { return s.f.curr }

// CopyHeight writes the current layer into dst, which must hold at
// least GridSize values.
func (s *Solver) CopyHeight(dst []float64) {
	copy(dst[:s.p.GridSize], s.f.curr)
}

// Step advances the field by one leapfrog update, applies the boundary
// policy, and rotates the layers. A non-finite result stops the solve
// with a StepError wrapping ErrUnstable.
func (s *Solver) Step() error {
	n := s.p.GridSize
	prev, curr, next := s.f.prev, s.f.curr, s.f.next

	for i := 1; i < n-1; i++ {
		next[i] = (2*curr[i] - prev[i] + s.r2*(curr[i+1]-2*curr[i]+curr[i-1])) * s.damp
	}

	switch s.p.Boundary {
	case BoundaryReflective:
		// Ghost points mirror the interior neighbor: u[-1] = u[1].
		next[0] = (2*curr[0] - prev[0] + 2*s.r2*(curr[1]-curr[0])) * s.damp
		next[n-1] = (2*curr[n-1] - prev[n-1] + 2*s.r2*(curr[n-2]-curr[n-1])) * s.damp
	default:
		next[0] = 0
		next[n-1] = 0
	}

	s.f.rotate()
	s.step++

	if !s.f.finite() {
		return &StepError{Step: s.step, Time: s.Time(), Wrapped: ErrUnstable}
	}
	return nil
}

// Energy returns the discrete invariant of the leapfrog scheme, built
// from the current and previous layers. For Decay == 0 it is conserved
// exactly (up to roundoff) under both boundary policies; with damping
// it decreases monotonically.
func (s *Solver) Energy() float64 {
	n := s.p.GridSize
	prev, curr := s.f.prev, s.f.curr
	dt, dx, c := s.p.Dt, s.p.Dx, s.p.C

	ke, pe := 0.0, 0.0
	for i := 0; i < n; i++ {
		w := 1.0
		var lap float64
		switch {
		case i == 0:
			if s.p.Boundary == BoundaryReflective {
				w = 0.5
				lap = 2 * (prev[1] - prev[0])
			}
		case i == n-1:
			if s.p.Boundary == BoundaryReflective {
				w = 0.5
				lap = 2 * (prev[n-2] - prev[n-1])
			}
		default:
			lap = prev[i+1] - 2*prev[i] + prev[i-1]
		}
		d := curr[i] - prev[i]
		ke += w * d * d
		pe += w * curr[i] * lap
	}
	return ke/(2*dt*dt) - c*c/(2*dx*dx)*pe
}

// GetParams exposes the live-tunable coefficients.
func (s *Solver) GetParams() map[string]float64 {
	return map[string]float64{"c": s.p.C, "decay": s.p.Decay}
}

// SetParam adjusts a coefficient mid-run. Changing c revalidates the
// Courant condition against the existing dt and dx.
func (s *Solver) SetParam(name string, v float64) error {
	q := s.p
	switch name {
	case "c":
		q.C = v
	case "decay":
		q.Decay = v
	default:
		return &ParamError{Field: name, Reason: "not tunable"}
	}
	if err := q.Validate(); err != nil {
		return err
	}
	s.p = q
	s.deriveCoeffs()
	return nil
}

// Run is the one-shot entry point: it advances Timesteps steps and
// writes the final snapshot into the caller-allocated h, which must
// hold at least GridSize values. On any error h is left untouched;
// partial results are never written.
func Run(p SimParams, h []float64) error {
	if len(h) < p.GridSize {
		return &ParamError{Field: "h", Reason: fmt.Sprintf("output buffer holds %d values, need %d", len(h), p.GridSize)}
	}
	s, err := New(p)
	if err != nil {
		return err
	}
	for i := 0; i < p.Timesteps; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	s.CopyHeight(h)
	return nil
}
