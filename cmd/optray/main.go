package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/config"
	"github.com/avierra/optray/internal/export"
	"github.com/avierra/optray/internal/plotting"
	"github.com/avierra/optray/internal/psf"
	"github.com/avierra/optray/internal/report"
	"github.com/avierra/optray/internal/tui"
)

var (
	configFile string
	preset     string
	jsonPath   string
	csvPath    string
	plotPath   string
	// Analysis overrides; negative means "use configured value"
	numRings  int
	numRays   int
	numPoints int
	distModel string
	threshold float64
	fieldIdx  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "optray",
		Short: "optical analysis engine",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the interactive browser when no command given
			cfg, err := loadConfig()
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			if _, err := tea.NewProgram(tui.NewBrowser(cfg)).Run(); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset system")
	rootCmd.PersistentFlags().StringVar(&jsonPath, "json", "", "write results as JSON (\"-\" for stdout)")
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "", "write curves as CSV")
	rootCmd.PersistentFlags().StringVar(&plotPath, "plot", "", "write plot PNG")

	spotCmd := &cobra.Command{
		Use:   "spot",
		Short: "spot diagram centroids and radii",
		RunE:  runSpot,
	}
	spotCmd.Flags().IntVar(&numRings, "rings", -1, "hexapolar rings")

	eeCmd := &cobra.Command{
		Use:   "encircled",
		Short: "encircled energy curves",
		RunE:  runEncircled,
	}
	eeCmd.Flags().IntVar(&numRays, "rays", -1, "rays per field")
	eeCmd.Flags().IntVar(&numPoints, "points", -1, "radius samples")

	fanCmd := &cobra.Command{
		Use:   "fan",
		Short: "transverse ray aberration fans",
		RunE:  runFan,
	}
	fanCmd.Flags().IntVar(&numPoints, "points", -1, "rays per fan")

	distCmd := &cobra.Command{
		Use:   "distortion",
		Short: "distortion versus field",
		RunE:  runDistortion,
	}
	distCmd.Flags().IntVar(&numPoints, "points", -1, "field samples")
	distCmd.Flags().StringVar(&distModel, "model", "", "projection model (f-tan, f-theta)")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "chief ray grid distortion",
		RunE:  runGrid,
	}
	gridCmd.Flags().IntVar(&numPoints, "points", -1, "grid points per side")
	gridCmd.Flags().StringVar(&distModel, "model", "", "projection model (f-tan, f-theta)")

	curvCmd := &cobra.Command{
		Use:   "curvature",
		Short: "tangential and sagittal field curvature",
		RunE:  runCurvature,
	}
	curvCmd.Flags().IntVar(&numPoints, "points", -1, "field samples")

	yybarCmd := &cobra.Command{
		Use:   "yybar",
		Short: "paraxial marginal and chief ray heights",
		RunE:  runYYbar,
	}

	psfCmd := &cobra.Command{
		Use:   "psf",
		Short: "FFT diffraction point spread function",
		RunE:  runPSF,
	}
	psfCmd.Flags().IntVar(&numRays, "rays", -1, "pupil samples per side")
	psfCmd.Flags().IntVar(&numPoints, "grid", -1, "padded FFT grid size")
	psfCmd.Flags().Float64Var(&threshold, "threshold", -1, "crop threshold for the plot")
	psfCmd.Flags().IntVar(&fieldIdx, "field", 0, "field index")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset systems",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(spotCmd, eeCmd, fanCmd, distCmd, gridCmd, curvCmd,
		yybarCmd, psfCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see 'optray presets')", preset)
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

// pick returns override when set, fallback otherwise.
func pick(override, fallback int) int {
	if override >= 0 {
		return override
	}
	return fallback
}

func runSpot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	dist, err := cfg.Distribution()
	if err != nil {
		return err
	}
	sd, err := analysis.NewSpotDiagram(context.Background(), sys, analysis.SpotOptions{
		NumRings:     pick(numRings, cfg.Analysis.NumRings),
		Distribution: dist,
	})
	if err != nil {
		return err
	}
	fmt.Print(report.Spot(sd))
	if jsonPath != "" {
		if err := writeJSON(export.BuildSpot(sd)); err != nil {
			return err
		}
	}
	if plotPath != "" {
		return plotting.Spot(sd, plotPath)
	}
	return nil
}

func runEncircled(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	ee, err := analysis.NewEncircledEnergy(context.Background(), sys, analysis.EncircledOptions{
		NumRays:   pick(numRays, cfg.Analysis.EERays),
		NumPoints: pick(numPoints, cfg.Analysis.NumPoints),
	})
	if err != nil {
		return err
	}
	fmt.Print(report.Encircled(ee))
	if jsonPath != "" {
		if err := writeJSON(export.BuildEncircled(ee)); err != nil {
			return err
		}
	}
	if csvPath != "" {
		headers := []string{"radius"}
		for _, f := range ee.Fields() {
			headers = append(headers, fmt.Sprintf("field_%.2f_%.2f", f.Hx, f.Hy))
		}
		if err := export.WriteCurvesCSV(csvPath, headers, ee.Radii(), ee.Curves()...); err != nil {
			return err
		}
	}
	if plotPath != "" {
		return plotting.Encircled(ee, plotPath)
	}
	return nil
}

func runFan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	rf, err := analysis.NewRayFan(context.Background(), sys, analysis.RayFanOptions{
		NumPoints: pick(numPoints, cfg.Analysis.FanPoints),
	})
	if err != nil {
		return err
	}
	fmt.Print(report.RayFan(rf))
	if plotPath != "" {
		return plotting.RayFan(rf, plotPath)
	}
	return nil
}

func runDistortion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	model := cfg.Analysis.DistortionType
	if distModel != "" {
		model = distModel
	}
	dm, err := analysis.ParseDistortionModel(model)
	if err != nil {
		return err
	}
	d, err := analysis.NewDistortion(context.Background(), sys, analysis.DistortionOptions{
		NumPoints: pick(numPoints, cfg.Analysis.NumPoints),
		Model:     dm,
	})
	if err != nil {
		return err
	}
	fmt.Print(report.Distortion(d))
	if jsonPath != "" {
		if err := writeJSON(export.BuildDistortion(d)); err != nil {
			return err
		}
	}
	if csvPath != "" {
		headers := []string{"field"}
		for _, wave := range d.Wavelengths() {
			headers = append(headers, fmt.Sprintf("w%.4f", wave))
		}
		if err := export.WriteCurvesCSV(csvPath, headers, d.FieldAxis(), d.Curves()...); err != nil {
			return err
		}
	}
	if plotPath != "" {
		return plotting.Distortion(d, plotPath)
	}
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	model := cfg.Analysis.DistortionType
	if distModel != "" {
		model = distModel
	}
	dm, err := analysis.ParseDistortionModel(model)
	if err != nil {
		return err
	}
	gd, err := analysis.NewGridDistortion(context.Background(), sys, analysis.GridDistortionOptions{
		NumPoints: pick(numPoints, cfg.Analysis.GridPoints),
		Model:     dm,
	})
	if err != nil {
		return err
	}
	fmt.Print(report.GridDistortion(gd))
	if jsonPath != "" {
		if err := writeJSON(export.BuildGridDistortion(gd)); err != nil {
			return err
		}
	}
	if plotPath != "" {
		return plotting.GridDistortion(gd, plotPath)
	}
	return nil
}

func runCurvature(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	fc, err := analysis.NewFieldCurvature(context.Background(), sys, analysis.FieldCurvatureOptions{
		NumPoints: pick(numPoints, cfg.Analysis.NumPoints),
	})
	if err != nil {
		return err
	}
	fmt.Print(report.Curvature(fc))
	if jsonPath != "" {
		if err := writeJSON(export.BuildCurvature(fc)); err != nil {
			return err
		}
	}
	if csvPath != "" {
		headers := []string{"field"}
		curves := make([][]float64, 0, 2*len(fc.Wavelengths()))
		for wi, wave := range fc.Wavelengths() {
			headers = append(headers, fmt.Sprintf("t_w%.4f", wave), fmt.Sprintf("s_w%.4f", wave))
			curves = append(curves, fc.Tangential()[wi], fc.Sagittal()[wi])
		}
		if err := export.WriteCurvesCSV(csvPath, headers, fc.FieldAxis(), curves...); err != nil {
			return err
		}
	}
	if plotPath != "" {
		return plotting.FieldCurvature(fc, plotPath)
	}
	return nil
}

func runYYbar(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	fmt.Print(report.YYbar(analysis.NewYYbar(sys)))
	return nil
}

func runPSF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	fields := sys.Fields().Coords()
	if fieldIdx < 0 || fieldIdx >= len(fields) {
		return fmt.Errorf("field index %d out of range (%d fields)", fieldIdx, len(fields))
	}
	p, err := psf.New(sys, fields[fieldIdx], nil, psf.Options{
		NumRays:  pick(numRays, cfg.Analysis.PSFRays),
		GridSize: pick(numPoints, cfg.Analysis.PSFGrid),
	})
	if err != nil {
		return err
	}
	fmt.Print(report.PSF(p))
	if jsonPath != "" {
		if err := writeJSON(export.BuildPSF(p)); err != nil {
			return err
		}
	}
	if plotPath != "" {
		th := cfg.Analysis.PSFThreshold
		if threshold >= 0 {
			th = threshold
		}
		return plotting.PSFHeatmap(p, th, plotPath)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tfocal length\taperture\tmax field")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\n",
			name, cfg.System.FocalLength, cfg.System.Aperture, cfg.System.MaxField)
	}
	return w.Flush()
}

func writeJSON(v any) error {
	if jsonPath == "-" {
		return export.WriteJSONStdout(v)
	}
	return export.WriteJSON(jsonPath, v)
}
