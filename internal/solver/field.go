package solver

import "math"

// field holds the three time layers the leapfrog recurrence needs. The
// buffers are allocated once and rotated; nothing is freed or grown
// during a solve.
type field struct {
	n    int
	prev []float64
	curr []float64
	next []float64
}

func newField(n int) *field {
	return &field{
		n:    n,
		prev: make([]float64, n),
		curr: make([]float64, n),
		next: make([]float64, n),
	}
}

// seed places the initial disturbance and copies it into the previous
// layer, which encodes zero initial velocity.
func (f *field) seed(i int, amp float64) {
	for j := range f.curr {
		f.curr[j] = 0
		f.prev[j] = 0
		f.next[j] = 0
	}
	f.curr[i] = amp
	f.prev[i] = amp
}

// rotate advances the layers: next becomes current, current becomes
// previous, and the old previous buffer is recycled as the next next.
func (f *field) rotate() {
	f.prev, f.curr, f.next = f.curr, f.next, f.prev
}

func (f *field) finite() bool {
	for _, v := range f.curr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
