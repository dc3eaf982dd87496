package solver_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tsunami/internal/solver"
)

func maxAbs(h []float64) float64 {
	m := 0.0
	for _, v := range h {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

var _ = Describe("wave propagation properties", func() {
	newParams := func() solver.SimParams {
		return solver.SimParams{
			ICenter:  16,
			GridSize: 33,
			Dt:       0.5,
			Dx:       1.0,
			C:        1.0,
		}
	}

	Describe("energy", func() {
		conservesEnergy := func(b solver.BoundaryPolicy) {
			p := newParams()
			p.Boundary = b

			s, err := solver.New(p)
			Expect(err).NotTo(HaveOccurred())

			e0 := s.Energy()
			Expect(e0).To(BeNumerically(">", 0))

			for i := 0; i < 300; i++ {
				Expect(s.Step()).To(Succeed())
				drift := math.Abs(s.Energy()-e0) / e0
				Expect(drift).To(BeNumerically("<", 1e-9),
					"energy drifted at step %d", i+1)
			}
		}

		It("is conserved with fixed boundaries and no damping", func() {
			conservesEnergy(solver.BoundaryFixed)
		})

		It("is conserved with reflective boundaries and no damping", func() {
			conservesEnergy(solver.BoundaryReflective)
		})

		It("drains under damping", func() {
			p := newParams()
			p.Decay = 0.05

			s, err := solver.New(p)
			Expect(err).NotTo(HaveOccurred())

			e0 := s.Energy()
			for i := 0; i < 100; i++ {
				Expect(s.Step()).To(Succeed())
				Expect(s.Energy()).To(BeNumerically(">=", -1e-12))
			}
			// Oscillatory modes lose amplitude at sqrt(1-decay) per
			// step, so energy shrinks roughly as (1-decay)^n.
			Expect(s.Energy()).To(BeNumerically("<", e0*0.05))
		})
	})

	Describe("damping", func() {
		// At the Courant limit the scheme is damped translation, so the
		// peak shrinks by exactly (1-decay) per step. Below the limit
		// dispersive ringing can produce transient local upticks.
		It("makes the peak height non-increasing step over step", func() {
			p := solver.SimParams{
				ICenter:  64,
				GridSize: 129,
				Dt:       1.0,
				Dx:       1.0,
				C:        1.0,
				Decay:    0.1,
			}

			s, err := solver.New(p)
			Expect(err).NotTo(HaveOccurred())

			prev := maxAbs(s.Height())
			for i := 0; i < 50; i++ {
				Expect(s.Step()).To(Succeed())
				peak := maxAbs(s.Height())
				Expect(peak).To(BeNumerically("<=", prev*(1+1e-12)),
					"peak rose at step %d", i+1)
				prev = peak
			}
		})
	})

	Describe("symmetry", func() {
		symmetricAboutCenter := func(b solver.BoundaryPolicy) {
			p := newParams()
			p.Boundary = b
			p.Timesteps = 100

			h := make([]float64, p.GridSize)
			Expect(solver.Run(p, h)).To(Succeed())

			n := p.GridSize
			for i := 0; i < n/2; i++ {
				Expect(h[i]).To(BeNumerically("~", h[n-1-i], 1e-12),
					"asymmetry at index %d", i)
			}
		}

		It("holds with a midpoint seed and fixed boundaries", func() {
			symmetricAboutCenter(solver.BoundaryFixed)
		})

		It("holds with a midpoint seed and reflective boundaries", func() {
			symmetricAboutCenter(solver.BoundaryReflective)
		})
	})

	Describe("stability margin", func() {
		It("stays bounded at the Courant limit", func() {
			p := newParams()
			p.Dt = 1.0 // r = 1.0 exactly

			s, err := solver.New(p)
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 500; i++ {
				Expect(s.Step()).To(Succeed())
			}
			// Neutral stability: amplitude bounded by the seed energy.
			Expect(maxAbs(s.Height())).To(BeNumerically("<", 10.0))
		})
	})
})
