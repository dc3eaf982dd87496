package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tsunami/internal/analysis"
	"github.com/san-kum/tsunami/internal/config"
	"github.com/san-kum/tsunami/internal/export"
	"github.com/san-kum/tsunami/internal/metrics"
	"github.com/san-kum/tsunami/internal/sim"
	"github.com/san-kum/tsunami/internal/solver"
	"github.com/san-kum/tsunami/internal/storage"
	"github.com/san-kum/tsunami/internal/sweep"
	"github.com/san-kum/tsunami/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	icenter   int
	gridSize  int
	timesteps int
	dt        float64
	dx        float64
	c         float64
	decay     float64
	amplitude float64
	boundary  string
	stride    int
	// Config file
	configFile string
	// Preset name
	preset string
	// Skip persisting the run
	noSave bool
	// Sweep options
	varySpecs   []string
	sweepMetric string
	// SVG output path
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsunami",
		Short: "1-D tsunami wave simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tsunami", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().IntVar(&stride, "stride", 0, "record every n-th layer (0 = all)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the wave evolve in the terminal",
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spatial frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export recorded layers to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final wave profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solver throughput",
		RunE:  benchSolver,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search over parameter values",
		Long: `Sweep runs every combination of the given parameter values
concurrently and reports the one minimizing the chosen metric.

  tsunami sweep --vary decay=0,0.02,0.05 --vary c=0.8,1.0 --metric final_peak`,
		RunE: runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&varySpecs, "vary", nil, "parameter values, e.g. decay=0,0.02,0.05")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "final_peak", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s grid=%d steps=%d dt=%g decay=%g boundary=%s\n",
					name, p.GridSize, p.Timesteps, p.Dt, p.Decay, p.Boundary)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		benchCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&icenter, "icenter", config.DefaultICenter, "grid index of the initial disturbance")
	cmd.Flags().IntVar(&gridSize, "grid", config.DefaultGridSize, "number of grid points")
	cmd.Flags().IntVar(&timesteps, "steps", config.DefaultTimesteps, "number of timesteps")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time-step size")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "spatial-step size")
	cmd.Flags().Float64Var(&c, "c", config.DefaultC, "wave speed")
	cmd.Flags().Float64Var(&decay, "decay", config.DefaultDecay, "per-step damping factor")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0, "initial disturbance height (0 = unit)")
	cmd.Flags().StringVar(&boundary, "boundary", "fixed", "boundary policy: fixed or reflective")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildParams resolves the effective parameters. Precedence:
// CLI flags > config file > preset > defaults.
func buildParams(cmd *cobra.Command) (solver.SimParams, sim.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return solver.SimParams{}, sim.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		applyConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return solver.SimParams{}, sim.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	b, err := solver.ParseBoundary(boundary)
	if err != nil {
		return solver.SimParams{}, sim.Config{}, err
	}

	p := solver.SimParams{
		ICenter:   icenter,
		GridSize:  gridSize,
		Timesteps: timesteps,
		Dt:        dt,
		Dx:        dx,
		C:         c,
		Decay:     decay,
		Amplitude: amplitude,
		Boundary:  b,
	}
	return p, sim.Config{Stride: stride}, p.Validate()
}

// applyConfig copies cfg values into the flag variables, except where
// the user set the flag explicitly.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("icenter") {
		icenter = cfg.ICenter
	}
	if !cmd.Flags().Changed("grid") {
		gridSize = cfg.GridSize
	}
	if !cmd.Flags().Changed("steps") {
		timesteps = cfg.Timesteps
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("dx") {
		dx = cfg.Dx
	}
	if !cmd.Flags().Changed("c") {
		c = cfg.C
	}
	if !cmd.Flags().Changed("decay") {
		decay = cfg.Decay
	}
	if !cmd.Flags().Changed("amplitude") {
		amplitude = cfg.Amplitude
	}
	if cfg.Boundary != "" && !cmd.Flags().Changed("boundary") {
		boundary = cfg.Boundary
	}
	if f := cmd.Flags().Lookup("stride"); f != nil && !f.Changed {
		stride = cfg.Stride
	}
}

func defaultMetrics(p solver.SimParams) []sim.Metric {
	amp := p.Amplitude
	if amp == 0 {
		amp = 1.0
	}
	return []sim.Metric{
		metrics.NewPeakHeight(),
		metrics.NewFinalPeak(),
		metrics.NewStability(10 * amp),
		metrics.NewWaveFront(p.ICenter, amp*1e-6),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	p, simCfg, err := buildParams(cmd)
	if err != nil {
		return err
	}

	runner := sim.New(p)
	for _, m := range defaultMetrics(p) {
		runner.AddMetric(m)
	}

	fmt.Printf("running %d steps on a %d-point grid (courant %.3f)...\n",
		p.Timesteps, p.GridSize, p.Courant())
	start := time.Now()

	result, err := runner.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("layers recorded: %d\n", len(result.Heights))
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(p, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	p, _, err := buildParams(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(p)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m)
	_, err = prog.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRID\tSTEPS\tCOURANT\tDECAY\tBOUNDARY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\t%.4f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridSize,
			run.Timesteps,
			run.C*run.Dt/run.Dx,
			run.Decay,
			run.Boundary,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	heights, times, err := st.LoadHeights(runID)
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("layers: %d\n\n", len(heights))

	final := heights[len(heights)-1]
	graph := asciigraph.Plot(final,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("surface profile at t=%.2f", times[len(times)-1])),
	)
	fmt.Println(graph)
	fmt.Println()

	peaks := make([]float64, len(heights))
	for i, layer := range heights {
		for _, v := range layer {
			if v > peaks[i] {
				peaks[i] = v
			} else if -v > peaks[i] {
				peaks[i] = -v
			}
		}
	}
	graph = asciigraph.Plot(peaks,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("peak height over time"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	heights, _, err := st.LoadHeights(runID)
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no data")
	}

	final := heights[len(heights)-1]

	fmt.Printf("spatial frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(final)
	plotData := ps[:len(ps)/2]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("spatial power spectrum (final layer)"),
	)
	fmt.Println(graph)
	fmt.Println()

	wavelength := analysis.DominantWavelength(final, meta.Dx)
	if wavelength > 0 {
		fmt.Printf("dominant wavelength: %.3f\n", wavelength)
	} else {
		fmt.Println("no dominant wavelength (flat field)")
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	heights, times, err := st.LoadHeights(args[0])
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range heights[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range heights {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range heights[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	heights, times, err := st.LoadHeights(args[0])
	if err != nil {
		return err
	}

	b, err := solver.ParseBoundary(meta.Boundary)
	if err != nil {
		return err
	}
	p := solver.SimParams{
		ICenter:   meta.ICenter,
		GridSize:  meta.GridSize,
		Timesteps: meta.Timesteps,
		Dt:        meta.Dt,
		Dx:        meta.Dx,
		C:         meta.C,
		Decay:     meta.Decay,
		Boundary:  b,
	}
	result := &sim.Result{
		Heights:     heights,
		Times:       times,
		Metrics:     meta.Metrics,
		EnergyDrift: meta.EnergyDrift,
		StepsTaken:  meta.Timesteps,
	}

	return export.WriteJSON(os.Stdout, export.NewRunData(meta.ID, p, result))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	heights, _, err := st.LoadHeights(runID)
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no data to export")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	svg := export.ProfileToSVG(heights[len(heights)-1], 800, 300, "#00ccff")
	if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func benchSolver(cmd *cobra.Command, args []string) error {
	grids := []int{100, 1000, 10000}
	steps := []int{100, 1000}

	fmt.Println("benchmarking solver")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tSTEPS\tTIME\tCELL-STEPS/SEC")

	for _, n := range grids {
		for _, ts := range steps {
			p := solver.SimParams{
				ICenter: n / 2, GridSize: n, Timesteps: ts,
				Dt: 0.5, Dx: 1.0, C: 1.0, Decay: 0.01,
			}
			h := make([]float64, n)

			start := time.Now()
			if err := solver.Run(p, h); err != nil {
				return err
			}
			elapsed := time.Since(start)

			rate := float64(n*ts) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, ts, elapsed, rate)
		}
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(varySpecs) == 0 {
		return fmt.Errorf("at least one --vary is required")
	}

	base, simCfg, err := buildParams(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(varySpecs))
	values := make([][]float64, 0, len(varySpecs))
	for _, spec := range varySpecs {
		name, vals, err := parseVary(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		values = append(values, vals)
	}

	g, err := sweep.NewGrid(names, values)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %d combinations, minimizing %s...\n\n", countCombos(values), sweepMetric)
	start := time.Now()

	best, all, err := g.Search(context.Background(), base, sweepMetric, simCfg, func() []sim.Metric {
		return defaultMetrics(base)
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := strings.ToUpper(strings.Join(names, "\t")) + "\t" + strings.ToUpper(sweepMetric)
	fmt.Fprintln(w, header)
	for _, combo := range all {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", combo.Params[name])
		}
		fmt.Fprintf(w, "%.6f\n", combo.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest (%v):", time.Since(start))
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best.Params[name])
	}
	fmt.Printf(" -> %s=%.6f\n", sweepMetric, best.Score)
	return nil
}

func parseVary(spec string) (string, []float64, error) {
	name, list, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad --vary %q, want name=v1,v2,...", spec)
	}
	parts := strings.Split(list, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --vary value %q: %w", part, err)
		}
		vals = append(vals, v)
	}
	return strings.TrimSpace(name), vals, nil
}

func countCombos(values [][]float64) int {
	n := 1
	for _, v := range values {
		n *= len(v)
	}
	return n
}
