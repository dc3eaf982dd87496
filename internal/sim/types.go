package sim

// Metric accumulates a scalar statistic over the height field as a
// run advances.
type Metric interface {
	Name() string
	Observe(h []float64, t float64)
	Value() float64
	Reset()
}

// Observer receives each layer as it is produced. The slice aliases
// solver memory and must be copied if retained.
type Observer interface {
	OnStep(h []float64, step int, t float64)
}

// Config controls what a Runner records.
type Config struct {
	// Stride records every Stride-th layer; values < 1 record all of
	// them. The initial condition and the final layer are always kept.
	Stride int
}

// Result is the recorded output of one run: a time history of height
// layers plus accumulated metrics.
type Result struct {
	Heights     [][]float64
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded layer: the height field after the
// final step.
func (r *Result) Final() []float64 {
	if len(r.Heights) == 0 {
		return nil
	}
	return r.Heights[len(r.Heights)-1]
}
