package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tsunami/internal/solver"
)

const (
	DefaultICenter   = 25
	DefaultGridSize  = 100
	DefaultTimesteps = 100
	DefaultDt        = 1.0
	DefaultDx        = 1.0
	DefaultC         = 1.0
	DefaultDecay     = 0.02
)

// Config is the yaml-facing description of a run: the solve parameters
// plus recording options.
type Config struct {
	ICenter   int     `yaml:"icenter"`
	GridSize  int     `yaml:"grid_size"`
	Timesteps int     `yaml:"timesteps"`
	Dt        float64 `yaml:"dt"`
	Dx        float64 `yaml:"dx"`
	C         float64 `yaml:"c"`
	Decay     float64 `yaml:"decay"`
	Amplitude float64 `yaml:"amplitude"`
	Boundary  string  `yaml:"boundary"`
	Stride    int     `yaml:"stride"`
}

func DefaultConfig() *Config {
	return &Config{
		ICenter:   DefaultICenter,
		GridSize:  DefaultGridSize,
		Timesteps: DefaultTimesteps,
		Dt:        DefaultDt,
		Dx:        DefaultDx,
		C:         DefaultC,
		Decay:     DefaultDecay,
		Boundary:  "fixed",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the config into validated solve parameters.
func (c *Config) Params() (solver.SimParams, error) {
	b, err := solver.ParseBoundary(c.Boundary)
	if err != nil {
		return solver.SimParams{}, err
	}
	p := solver.SimParams{
		ICenter:   c.ICenter,
		GridSize:  c.GridSize,
		Timesteps: c.Timesteps,
		Dt:        c.Dt,
		Dx:        c.Dx,
		C:         c.C,
		Decay:     c.Decay,
		Amplitude: c.Amplitude,
		Boundary:  b,
	}
	if err := p.Validate(); err != nil {
		return solver.SimParams{}, err
	}
	return p, nil
}
