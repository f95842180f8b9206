package report

import (
	"context"
	"strings"
	"testing"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/config"
	"github.com/avierra/optray/internal/psf"
)

func buildSystem(t *testing.T, preset string) *config.Config {
	t.Helper()
	cfg := config.GetPreset(preset)
	if cfg == nil {
		t.Fatalf("unknown preset %q", preset)
	}
	return cfg
}

func TestSpotReport(t *testing.T) {
	cfg := buildSystem(t, "defocused")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}
	sd, err := analysis.NewSpotDiagram(context.Background(), sys, analysis.SpotOptions{NumRings: 4})
	if err != nil {
		t.Fatalf("NewSpotDiagram: %v", err)
	}

	out := Spot(sd)
	for _, want := range []string{"spot diagram", "rms radius", "0.5876"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestEncircledReport(t *testing.T) {
	cfg := buildSystem(t, "defocused")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}
	ee, err := analysis.NewEncircledEnergy(context.Background(), sys,
		analysis.EncircledOptions{NumRays: 500, NumPoints: 32})
	if err != nil {
		t.Fatalf("NewEncircledEnergy: %v", err)
	}

	out := Encircled(ee)
	if !strings.Contains(out, "encircled energy") {
		t.Errorf("report missing title:\n%s", out)
	}
	if !strings.Contains(out, "total energy") {
		t.Errorf("report missing totals table:\n%s", out)
	}
}

func TestCurvatureReport(t *testing.T) {
	cfg := buildSystem(t, "wide_angle")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}
	fc, err := analysis.NewFieldCurvature(context.Background(), sys,
		analysis.FieldCurvatureOptions{NumPoints: 16})
	if err != nil {
		t.Fatalf("NewFieldCurvature: %v", err)
	}

	out := Curvature(fc)
	if !strings.Contains(out, "field curvature") {
		t.Errorf("report missing title:\n%s", out)
	}
}

func TestPSFReport(t *testing.T) {
	cfg := buildSystem(t, "ideal")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}
	p, err := psf.New(sys, sys.Fields().Coords()[0], nil, psf.Options{NumRays: 32, GridSize: 128})
	if err != nil {
		t.Fatalf("psf.New: %v", err)
	}

	out := PSF(p)
	for _, want := range []string{"fft psf", "strehl", "peak"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestYYbarReport(t *testing.T) {
	cfg := buildSystem(t, "ideal")
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}

	out := YYbar(analysis.NewYYbar(sys))
	if !strings.Contains(out, "chief y") {
		t.Errorf("report missing table header:\n%s", out)
	}
}

func TestCenterWindow(t *testing.T) {
	row := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	got := centerWindow(row, 2)
	if len(got) != 4 || got[0] != 2 || got[3] != 5 {
		t.Errorf("centerWindow = %v, want [2 3 4 5]", got)
	}

	// Clamped at the edges.
	if got := centerWindow(row, 100); len(got) != len(row) {
		t.Errorf("oversized window has %d samples, want %d", len(got), len(row))
	}
}
