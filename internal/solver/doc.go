// Package solver implements a finite-difference time-domain (FDTD)
// integrator for the damped 1-D wave equation, modeling tsunami wave
// propagation over a uniform spatial grid.
//
// A solve is described by [SimParams] and driven either through the
// one-shot entry point:
//
//	h := make([]float64, p.GridSize)
//	err := solver.Run(p, h)
//
// or step by step through a [Solver], which the surrounding tooling uses
// to record time histories and drive live views:
//
//	s, _ := solver.New(p)
//	for i := 0; i < p.Timesteps; i++ {
//	    if err := s.Step(); err != nil { ... }
//	}
//
// The scheme is the explicit leapfrog discretization
//
//	next[i] = 2*curr[i] - prev[i] + r²*(curr[i+1] - 2*curr[i] + curr[i-1])
//
// with r = C*Dt/Dx, followed by per-step amplitude damping by (1-Decay).
// The scheme is stable only for Courant numbers r <= 1; [SimParams.Validate]
// rejects anything else up front.
//
// # Boundary conditions
//
// The grid edges are configurable via [BoundaryPolicy]: fixed (both edges
// held at zero, the default) or reflective (ghost-mirrored neighbor, so
// waves bounce back without sign inversion).
//
// # State
//
// A Solver owns three grid-length layers (previous, current, next) that
// are rotated in place each step; nothing is allocated inside the loop
// and no state survives outside the Solver. Concurrent solves with
// separate Solver values are independent.
package solver
