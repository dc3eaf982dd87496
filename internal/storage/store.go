// Package storage persists runs as per-run directories holding a
// metadata.json and a heights.csv time-history table (one row per
// recorded layer, one column per grid point).
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/tsunami/internal/sim"
	"github.com/san-kum/tsunami/internal/solver"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	ICenter     int                `json:"icenter"`
	GridSize    int                `json:"grid_size"`
	Timesteps   int                `json:"timesteps"`
	Dt          float64            `json:"dt"`
	Dx          float64            `json:"dx"`
	C           float64            `json:"c"`
	Decay       float64            `json:"decay"`
	Boundary    string             `json:"boundary"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

func metadataFor(runID string, p solver.SimParams, result *sim.Result) RunMetadata {
	return RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		ICenter:     p.ICenter,
		GridSize:    p.GridSize,
		Timesteps:   p.Timesteps,
		Dt:          p.Dt,
		Dx:          p.Dx,
		C:           p.C,
		Decay:       p.Decay,
		Boundary:    p.Boundary.String(),
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
}

// Save writes one run under a fresh directory and returns its id.
func (s *Store) Save(p solver.SimParams, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("wave_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metadataFor(runID, p, result)); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "heights.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Heights) == 0 {
		return runID, nil
	}

	header := []string{"time"}
	for i := range result.Heights[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, layer := range result.Heights {
		row := make([]string, 0, len(layer)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 6, 64))
		for _, v := range layer {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHeights reads back the recorded time history of a run.
func (s *Store) LoadHeights(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "heights.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	heights := make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		layer := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = 0
			}
			layer = append(layer, v)
		}

		times = append(times, t)
		heights = append(heights, layer)
	}

	return heights, times, nil
}
