// Package export turns stored runs into shareable artifacts: indented
// JSON documents and SVG profile plots.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/tsunami/internal/sim"
	"github.com/san-kum/tsunami/internal/solver"
)

type RunData struct {
	ID          string             `json:"id"`
	ICenter     int                `json:"icenter"`
	GridSize    int                `json:"grid_size"`
	Timesteps   int                `json:"timesteps"`
	Dt          float64            `json:"dt"`
	Dx          float64            `json:"dx"`
	C           float64            `json:"c"`
	Decay       float64            `json:"decay"`
	Boundary    string             `json:"boundary"`
	Layers      int                `json:"layers"`
	Times       []float64          `json:"times"`
	Heights     [][]float64        `json:"heights"`
	Metrics     map[string]float64 `json:"metrics"`
	EnergyDrift float64            `json:"energy_drift"`
}

func NewRunData(id string, p solver.SimParams, result *sim.Result) *RunData {
	return &RunData{
		ID:          id,
		ICenter:     p.ICenter,
		GridSize:    p.GridSize,
		Timesteps:   p.Timesteps,
		Dt:          p.Dt,
		Dx:          p.Dx,
		C:           p.C,
		Decay:       p.Decay,
		Boundary:    p.Boundary.String(),
		Layers:      len(result.Heights),
		Times:       result.Times,
		Heights:     result.Heights,
		Metrics:     result.Metrics,
		EnergyDrift: result.EnergyDrift,
	}
}

func WriteJSON(w io.Writer, data *RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func JSONToFile(path string, data *RunData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}
