package plotting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/config"
	"github.com/avierra/optray/internal/psf"
)

func requirePNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "plot file should exist")
	assert.Greater(t, info.Size(), int64(0), "plot file should not be empty")
}

func TestSpotPanels(t *testing.T) {
	cfg := config.GetPreset("spherical")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	sd, err := analysis.NewSpotDiagram(context.Background(), sys, analysis.SpotOptions{NumRings: 4})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, Spot(sd, filepath.Join(dir, "spot.png")))
	for i := range sd.Fields() {
		requirePNG(t, filepath.Join(dir, panelPath("spot.png", i)))
	}
}

func TestCurvesValidation(t *testing.T) {
	dir := t.TempDir()
	err := Curves(filepath.Join(dir, "c.png"), "t", "x", "y",
		[]float64{0, 1}, []string{"only one label"})
	assert.Error(t, err, "label count must match curves")

	err = Curves(filepath.Join(dir, "c.png"), "t", "x", "y",
		[]float64{0, 1}, []string{"a"}, []float64{1})
	assert.Error(t, err, "curve length must match axis")
}

func TestEncircledPlot(t *testing.T) {
	cfg := config.GetPreset("defocused")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	ee, err := analysis.NewEncircledEnergy(context.Background(), sys,
		analysis.EncircledOptions{NumRays: 500, NumPoints: 32})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ee.png")
	require.NoError(t, Encircled(ee, path))
	requirePNG(t, path)
}

func TestGridDistortionPlot(t *testing.T) {
	cfg := config.GetPreset("wide_angle")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	gd, err := analysis.NewGridDistortion(context.Background(), sys,
		analysis.GridDistortionOptions{NumPoints: 7})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "grid.png")
	require.NoError(t, GridDistortion(gd, path))
	requirePNG(t, path)
}

func TestPSFHeatmapPlot(t *testing.T) {
	cfg := config.GetPreset("ideal")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	p, err := psf.New(sys, sys.Fields().Coords()[0], nil, psf.Options{NumRays: 32, GridSize: 128})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "psf.png")
	require.NoError(t, PSFHeatmap(p, 0.05, path))
	requirePNG(t, path)
}

func TestPanelPath(t *testing.T) {
	assert.Equal(t, "spot_f0.png", panelPath("spot.png", 0))
	assert.Equal(t, "out/spot_f2.png", panelPath("out/spot.png", 2))
	assert.Equal(t, "noext_f1", panelPath("noext", 1))
}
