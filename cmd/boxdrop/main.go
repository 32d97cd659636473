package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/boxdrop/internal/analysis"
	"github.com/san-kum/boxdrop/internal/automation"
	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/export"
	"github.com/san-kum/boxdrop/internal/gui"
	"github.com/san-kum/boxdrop/internal/optim"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
	"github.com/san-kum/boxdrop/internal/storage"
	"github.com/san-kum/boxdrop/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logFile    string
	configFile string
	preset     string
	workers    int
	theme      string
	fps        float64
	duration   float64
	seed       int64
	numBodies  int
	numRuns    int
	plotBodies int
	// sweep and tune
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	tuneSteps    int
	gridSeed     int64
	tuneMetric   string
	tuneMaximize bool
	// phase, analyze and export-svg
	bodyIdx   int
	xAxis     string
	yAxis     string
	frameIdx  int
	showBoxes bool
	trail     bool
	outFile   string
)

// main registers the commands and maps errors to exit codes: 2 for bad
// arguments, 1 for everything else.
func main() {
	rootCmd := &cobra.Command{
		Use:               "boxdrop",
		Short:             "2D box physics playground",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boxdrop", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "append debug log to file")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use physics preset")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines for pair detection")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "terminal color theme")
	rootCmd.PersistentFlags().Float64Var(&fps, "fps", config.DefaultFPS, "ticks per second")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the playground in a native window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cmd.Context(), cfg)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "drop boxes headless and save the run",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", 5.0, "duration in seconds")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&numBodies, "bodies", 20, "number of boxes")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of runs with consecutive seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot box heights of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotBodies, "bodies", 3, "number of boxes to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available physics presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRAVITY\tRESTITUTION\tFRICTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%.2f\n", name, p.Gravity, p.Restitution, p.GroundFriction)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [file]",
		Short: "write the effective configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a scripted pointer scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter over a seeded drop",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "parameter to sweep (gravity, restitution, ground_friction)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")
	sweepCmd.Flags().Float64Var(&duration, "time", 5.0, "duration in seconds")
	sweepCmd.Flags().IntVar(&numBodies, "bodies", 20, "number of boxes")
	sweepCmd.Flags().Int64Var(&gridSeed, "seed", 1, "random seed, shared by every point")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search restitution and ground friction for a metric",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "stability", "metric to optimize")
	tuneCmd.Flags().BoolVar(&tuneMaximize, "maximize", true, "maximize instead of minimize")
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 5, "values per parameter")
	tuneCmd.Flags().Float64Var(&duration, "time", 5.0, "duration in seconds")
	tuneCmd.Flags().IntVar(&numBodies, "bodies", 20, "number of boxes")
	tuneCmd.Flags().Int64Var(&gridSeed, "seed", 1, "random seed, shared by every point")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce and frequency analysis of one box",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIdx, "body", 0, "box index")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of one box",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyIdx, "body", 0, "box index")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "y", "field for x-axis (x, y, vx, vy)")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "vy", "field for y-axis (x, y, vx, vy)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded frame or a box trail as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index, negative counts from the end")
	exportSVGCmd.Flags().BoolVar(&showBoxes, "boxes", false, "draw bounding boxes")
	exportSVGCmd.Flags().BoolVar(&trail, "trail", false, "draw the path of --body instead of a frame")
	exportSVGCmd.Flags().IntVar(&bodyIdx, "body", 0, "box index for --trail")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(guiCmd, runCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, configCmd,
		scenarioCmd, sweepCmd, tuneCmd, analyzeCmd, phaseCmd, exportSVGCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, physics.ErrInvalidArgument) {
		return 2
	}
	return 1
}

// setupLogging sends the log package to --log, or nowhere. The terminal UI
// owns stdout and stderr while it runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(logFile, "boxdrop")
	if err != nil {
		return &physics.SystemError{Op: "open log", Err: err}
	}
	cobra.OnFinalize(func() { f.Close() })
	return nil
}

// loadConfig builds the config from defaults, then the preset, then the
// config file, then any flag given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v): %w", preset, config.ListPresets(), physics.ErrInvalidArgument)
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" {
			fileCfg.Physics = cfg.Physics
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: %+v", *cfg)
	return cfg, nil
}

// writeConfig saves defaults, preset, file and flags merged, as a starting
// point for --config.
func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return &physics.SystemError{Op: "write config", Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numBodies < 0 {
		return &physics.ArgumentError{Param: "bodies", Value: float64(numBodies), Reason: "must be non-negative"}
	}
	if numRuns < 1 {
		return &physics.ArgumentError{Param: "runs", Value: float64(numRuns), Reason: "must be at least 1"}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runCfg := sim.RunConfig{Dt: float64(cfg.Dt()), Duration: duration, ValidateState: true}

	presetName := preset
	if presetName == "" {
		presetName = "custom"
	}

	fmt.Printf("dropping %d boxes for %.1fs (%d run(s))...\n", numBodies, duration, numRuns)
	start := time.Now()

	results, err := sim.NewEnsemble(automation.DropWorld(cfg, numBodies), numRuns, seed).Run(cmd.Context(), runCfg, cfg.Bounds())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	for i, result := range results {
		meta := storage.RunMetadata{
			Preset:         presetName,
			Seed:           seed + int64(i),
			Dt:             runCfg.Dt,
			Duration:       duration,
			Bodies:         numBodies,
			BoxWidth:       cfg.Spawn.Width,
			BoxHeight:      cfg.Spawn.Height,
			Width:          cfg.Width,
			Height:         cfg.Height,
			Gravity:        cfg.Physics.Gravity,
			Restitution:    cfg.Physics.Restitution,
			GroundFriction: cfg.Physics.GroundFriction,
		}
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("steps: %d\n", result.StepsTaken)
		for _, e := range result.Errors {
			fmt.Printf("  error: %v\n", e)
		}
		fmt.Println("metrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tDT\tBODIES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
			run.Seed,
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

	result, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(result.Frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.Frames))

	n := min(plotBodies, meta.Bodies)
	for i := range n {
		// screen y grows downward; plot height above the floor
		ys := storage.BodySeries(result, i, 1)
		for j := range ys {
			ys[j] = float64(meta.Height) - ys[j]
		}
		graph := asciigraph.Plot(ys,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("box %d height", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(result.PairCounts) > 1 {
		pairs := make([]float64, len(result.PairCounts))
		for i, c := range result.PairCounts {
			pairs[i] = float64(c)
		}
		fmt.Println(asciigraph.Plot(pairs,
			asciigraph.Height(5),
			asciigraph.Width(80),
			asciigraph.Caption("overlapping pairs"),
		))
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	res, err := automation.RunScenario(cmd.Context(), sc, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", res.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tACTION\tTICK\tTIME\tBODIES\tPAIRS")
	for i, r := range res.Steps {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2fs\t%d\t%d\n", i+1, r.Action, r.Tick, r.Time, r.Bodies, r.Pairs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	for name, val := range res.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Duration:  duration,
		Bodies:    numBodies,
		Seed:      gridSeed,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tKINETIC\tPEAK CONTACTS\tMAX SPEED\tSTABILITY\n", strings.ToUpper(sweepParam))
	energy := make([]float64, len(results))
	for i, r := range results {
		energy[i] = r.Metrics["kinetic_energy"]
		fmt.Fprintf(w, "%.4f\t%.1f\t%.0f\t%.1f\t%.3f\n", r.ParamValue,
			r.Metrics["kinetic_energy"], r.Metrics["peak_contacts"], r.Metrics["max_speed"], r.Metrics["stability"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energy,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("mean kinetic energy vs %s", sweepParam)),
		))
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if tuneSteps < 1 {
		return &physics.ArgumentError{Param: "steps", Value: float64(tuneSteps), Reason: "must be at least 1"}
	}

	params := []string{"restitution", "ground_friction"}
	grid := [][]float64{optim.Linspace(0, 1, tuneSteps), optim.Linspace(0, 1, tuneSteps)}

	build := func(p map[string]float64) (*sim.World, error) {
		c := *cfg
		for name, v := range p {
			if err := c.SetParam(name, v); err != nil {
				return nil, err
			}
		}
		return automation.DropWorld(&c, numBodies)(gridSeed)
	}

	gs := optim.NewGridSearch(params, grid)
	if tuneMaximize {
		gs.Maximize()
	}

	fmt.Printf("searching %d combinations for %s...\n", tuneSteps*tuneSteps, tuneMetric)
	runCfg := sim.RunConfig{Dt: float64(cfg.Dt()), Duration: duration, ValidateState: true}
	best, val, err := gs.Search(cmd.Context(), build, runCfg, cfg.Bounds(), tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f\n", tuneMetric, val)
	for _, name := range params {
		fmt.Printf("  %s: %.3f\n", name, best[name])
	}
	return nil
}

func fieldIndex(name string) (int, error) {
	for i, f := range analysis.FieldNames {
		if f == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q (available: %v): %w", name, analysis.FieldNames, physics.ErrInvalidArgument)
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.Frames) == 0 {
		return nil, nil, fmt.Errorf("no data")
	}
	return meta, result, nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if bodyIdx < 0 || bodyIdx >= meta.Bodies {
		return &physics.ArgumentError{Param: "body", Value: float64(bodyIdx), Reason: fmt.Sprintf("run has %d bodies", meta.Bodies)}
	}

	fmt.Printf("analysis: %s, box %d\n\n", meta.ID, bodyIdx)

	bounces := analysis.Bounces(result, bodyIdx)
	fmt.Printf("bounces: %d\n", len(bounces))
	for i, b := range bounces[:min(len(bounces), 5)] {
		line := fmt.Sprintf("  %.3fs  speed %.1f", b.Time, b.Speed)
		if i > 0 && bounces[i-1].Speed > 0 {
			line += fmt.Sprintf("  ratio %.3f", b.Speed/bounces[i-1].Speed)
		}
		fmt.Println(line)
	}

	if t, ok := analysis.SettleTime(result, 1.0); ok {
		fmt.Printf("settled at: %.3fs\n", t)
	} else {
		fmt.Println("settled at: never")
	}

	ys := storage.BodySeries(result, bodyIdx, analysis.FieldY)
	ps := analysis.PowerSpectrum(ys)
	if len(ps) >= 16 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ps[1:len(ps)/4],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (y)"),
		))
	}

	freq := analysis.DominantFrequency(ys, meta.Dt)
	fmt.Printf("\ndominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	xi, err := fieldIndex(xAxis)
	if err != nil {
		return err
	}
	yi, err := fieldIndex(yAxis)
	if err != nil {
		return err
	}

	portrait := analysis.PhasePortrait(result, bodyIdx, xi, yi)
	if portrait == nil {
		return &physics.ArgumentError{Param: "body", Value: float64(bodyIdx), Reason: "not in run"}
	}

	fmt.Printf("box %d: %s vs %s\n\n", bodyIdx, yAxis, xAxis)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 80, 24))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if trail {
		portrait := analysis.PhasePortrait(result, bodyIdx, analysis.FieldX, analysis.FieldY)
		if portrait == nil {
			return &physics.ArgumentError{Param: "body", Value: float64(bodyIdx), Reason: "not in run"}
		}
		return export.TrajectoryToSVG(out, portrait.Points, meta.Width, meta.Height, "#00ff00")
	}

	idx := frameIdx
	if idx < 0 {
		idx += len(result.Frames)
	}
	if idx < 0 || idx >= len(result.Frames) {
		return &physics.ArgumentError{Param: "frame", Value: float64(frameIdx), Reason: fmt.Sprintf("run has %d frames", len(result.Frames))}
	}

	bodies, err := export.FrameBodies(result.Frames[idx], meta.BoxWidth, meta.BoxHeight)
	if err != nil {
		return err
	}
	return export.FrameToSVG(out, bodies, meta.Width, meta.Height, showBoxes)
}
