package config

import "sort"

// Presets are ready-made parameter sets for common experiments.
var Presets = map[string]*Config{
	// The classic shallow-basin run: a pulse at x=25 on a 100-point
	// grid, lightly damped, at the Courant limit.
	"classic": {
		ICenter: 25, GridSize: 100, Timesteps: 100,
		Dt: 1.0, Dx: 1.0, C: 1.0, Decay: 0.02,
		Boundary: "fixed",
	},
	// Lossless basin with reflecting walls; the pulse bounces forever.
	"reflective": {
		ICenter: 50, GridSize: 101, Timesteps: 400,
		Dt: 0.5, Dx: 1.0, C: 1.0, Decay: 0,
		Boundary: "reflective",
	},
	// No damping, fixed edges; for energy-conservation experiments.
	"lossless": {
		ICenter: 50, GridSize: 101, Timesteps: 200,
		Dt: 0.5, Dx: 1.0, C: 1.0, Decay: 0,
		Boundary: "fixed",
	},
	// Finer grid, below the Courant limit; shows dispersion clearly.
	"fine": {
		ICenter: 200, GridSize: 400, Timesteps: 600,
		Dt: 0.2, Dx: 0.25, C: 1.0, Decay: 0.005,
		Boundary: "fixed",
	},
	// Heavy damping: the disturbance dies out before reaching the edge.
	"swell": {
		ICenter: 25, GridSize: 100, Timesteps: 150,
		Dt: 1.0, Dx: 1.0, C: 1.0, Decay: 0.15,
		Boundary: "fixed",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
