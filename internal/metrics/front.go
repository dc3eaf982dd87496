package metrics

import "math"

// WaveFront tracks how far from the seed index a disturbance above a
// small threshold has traveled, in grid cells. Useful as a discrete
// propagation-speed check: the front moves at most one cell per step.
type WaveFront struct {
	name      string
	center    int
	threshold float64
	reach     int
}

func NewWaveFront(center int, threshold float64) *WaveFront {
	if threshold <= 0 {
		threshold = 1e-12
	}
	return &WaveFront{name: "wave_front", center: center, threshold: threshold}
}

func (w *WaveFront) Name() string { return w.name }

func (w *WaveFront) Observe(h []float64, t float64) {
	for i, v := range h {
		if math.Abs(v) > w.threshold {
			d := i - w.center
			if d < 0 {
				d = -d
			}
			if d > w.reach {
				w.reach = d
			}
		}
	}
}

func (w *WaveFront) Value() float64 { return float64(w.reach) }

func (w *WaveFront) Reset() { w.reach = 0 }
