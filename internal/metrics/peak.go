// Package metrics provides height-field statistics accumulated while a
// run advances. Each type implements the sim.Metric interface.
package metrics

import "math"

// PeakHeight tracks the running maximum |h| over every observed layer.
type PeakHeight struct {
	name string
	max  float64
}

func NewPeakHeight() *PeakHeight {
	return &PeakHeight{name: "peak_height"}
}

func (p *PeakHeight) Name() string { return p.name }

func (p *PeakHeight) Observe(h []float64, t float64) {
	for _, v := range h {
		if a := math.Abs(v); a > p.max {
			p.max = a
		}
	}
}

func (p *PeakHeight) Value() float64 { return p.max }

func (p *PeakHeight) Reset() { p.max = 0 }

// FinalPeak reports the maximum |h| of the most recently observed
// layer only, i.e. how much wave survives at the end of a run.
type FinalPeak struct {
	name string
	last float64
}

func NewFinalPeak() *FinalPeak {
	return &FinalPeak{name: "final_peak"}
}

func (f *FinalPeak) Name() string { return f.name }

func (f *FinalPeak) Observe(h []float64, t float64) {
	m := 0.0
	for _, v := range h {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	f.last = m
}

func (f *FinalPeak) Value() float64 { return f.last }

func (f *FinalPeak) Reset() { f.last = 0 }
