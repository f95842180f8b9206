package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/avierra/optray/internal/lens"
)

func TestGridDistortionIdealSystem(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	gd, err := NewGridDistortion(context.Background(), sys, GridDistortionOptions{NumPoints: 11})
	if err != nil {
		t.Fatalf("NewGridDistortion: %v", err)
	}
	if gd.MaxDistortion() > 1e-6 {
		t.Errorf("ideal system max distortion = %g%%, want ~0", gd.MaxDistortion())
	}
}

func TestGridDistortionDimensions(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	gd, err := NewGridDistortion(context.Background(), sys, GridDistortionOptions{NumPoints: 7})
	if err != nil {
		t.Fatalf("NewGridDistortion: %v", err)
	}

	xr, yr := gd.Real()
	xp, yp := gd.Ideal()
	for _, grid := range [][][]float64{xr, yr, xp, yp} {
		if len(grid) != 7 {
			t.Fatalf("grid has %d rows, want 7", len(grid))
		}
		for _, row := range grid {
			if len(row) != 7 {
				t.Fatalf("grid row has %d columns, want 7", len(row))
			}
		}
	}
}

func TestGridDistortionHandedness(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	gd, err := NewGridDistortion(context.Background(), sys, GridDistortionOptions{NumPoints: 5})
	if err != nil {
		t.Fatalf("NewGridDistortion: %v", err)
	}

	// The traced grid is x-inverted; the ideal grid must share that
	// orientation or every off-axis point would show phantom distortion.
	xr, _ := gd.Real()
	xp, _ := gd.Ideal()
	if xr[0][0] <= 0 || xp[0][0] <= 0 {
		t.Errorf("negative Hx corner should image at positive x: real %g, ideal %g",
			xr[0][0], xp[0][0])
	}
}

func TestGridDistortionKnob(t *testing.T) {
	const coeff = 0.04
	sys := newSystem(t, lens.Aberrations{Distortion: coeff})
	gd, err := NewGridDistortion(context.Background(), sys, GridDistortionOptions{NumPoints: 11})
	if err != nil {
		t.Fatalf("NewGridDistortion: %v", err)
	}

	// The corner of the ±√2/2 grid sits at h² = 1, so the deviation
	// peaks near 100·coeff percent.
	if math.Abs(gd.MaxDistortion()-100*coeff) > 0.5 {
		t.Errorf("max distortion = %g%%, want about %g%%", gd.MaxDistortion(), 100*coeff)
	}
}

func TestGridDistortionQuadrantSymmetry(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{Distortion: -0.06})
	gd, err := NewGridDistortion(context.Background(), sys, GridDistortionOptions{NumPoints: 9})
	if err != nil {
		t.Fatalf("NewGridDistortion: %v", err)
	}

	// A rotationally symmetric system distorts all four grid corners
	// identically.
	xr, yr := gd.Real()
	n := len(xr)
	corners := []float64{
		math.Hypot(xr[0][0], yr[0][0]),
		math.Hypot(xr[0][n-1], yr[0][n-1]),
		math.Hypot(xr[n-1][0], yr[n-1][0]),
		math.Hypot(xr[n-1][n-1], yr[n-1][n-1]),
	}
	for i := 1; i < 4; i++ {
		if math.Abs(corners[i]-corners[0]) > 1e-9 {
			t.Errorf("corner %d radius %g differs from corner 0 radius %g",
				i, corners[i], corners[0])
		}
	}
}
