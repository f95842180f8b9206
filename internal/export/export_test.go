package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/config"
)

func spotFixture(t *testing.T) *analysis.SpotDiagram {
	t.Helper()
	cfg := config.GetPreset("defocused")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	sd, err := analysis.NewSpotDiagram(context.Background(), sys, analysis.SpotOptions{NumRings: 4})
	require.NoError(t, err)
	return sd
}

func TestWriteJSONSpot(t *testing.T) {
	sd := spotFixture(t)
	path := filepath.Join(t.TempDir(), "spot.json")

	require.NoError(t, WriteJSON(path, BuildSpot(sd)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got SpotData
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Len(t, got.Fields, 3)
	assert.Len(t, got.Wavelengths, 3)
	assert.Len(t, got.Centroids, 3)
	assert.Len(t, got.GeometricRadius, 3)
	assert.Len(t, got.GeometricRadius[0], 3)
}

func TestWriteCurvesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curves.csv")
	x := []float64{0, 0.5, 1}
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}

	require.NoError(t, WriteCurvesCSV(path, []string{"x", "a", "b"}, x, a, b))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"x", "a", "b"}, rows[0])
	assert.Equal(t, []string{"0.5", "2", "5"}, rows[2])
}

func TestWriteCurvesCSVValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")

	err := WriteCurvesCSV(path, []string{"x"}, []float64{0}, []float64{1})
	assert.Error(t, err, "header count must match columns")

	err = WriteCurvesCSV(path, []string{"x", "a"}, []float64{0, 1}, []float64{1})
	assert.Error(t, err, "curve length must match axis")
}

func TestBuildEncircled(t *testing.T) {
	cfg := config.GetPreset("defocused")
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)

	ee, err := analysis.NewEncircledEnergy(context.Background(), sys,
		analysis.EncircledOptions{NumRays: 500, NumPoints: 32})
	require.NoError(t, err)

	data := BuildEncircled(ee)
	assert.Equal(t, 0.5876, data.Wavelength)
	assert.Len(t, data.Radii, 32)
	assert.Len(t, data.Curves, 3)
	assert.Len(t, data.TotalEnergy, 3)
}
