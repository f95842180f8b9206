package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/avierra/optray/internal/lens"
	"github.com/avierra/optray/internal/optic"
)

func TestParseDistortionModel(t *testing.T) {
	m, err := ParseDistortionModel("f-tan")
	if err != nil || m != FTan {
		t.Errorf("ParseDistortionModel(f-tan) = %v, %v", m, err)
	}
	m, err = ParseDistortionModel("f-theta")
	if err != nil || m != FTheta {
		t.Errorf("ParseDistortionModel(f-theta) = %v, %v", m, err)
	}
	if _, err := ParseDistortionModel("orthographic"); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestDistortionIdealSystem(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	d, err := NewDistortion(context.Background(), sys, DistortionOptions{NumPoints: 32})
	if err != nil {
		t.Fatalf("NewDistortion: %v", err)
	}

	// A rectilinear system against the f-tan reference has no distortion.
	for wi, curve := range d.Curves() {
		for i, v := range curve {
			if math.Abs(v) > 1e-6 {
				t.Errorf("wavelength %d sample %d: distortion %g%%, want 0", wi, i, v)
			}
		}
	}
}

func TestDistortionCubicKnob(t *testing.T) {
	const coeff = -0.05
	sys := newSystem(t, lens.Aberrations{Distortion: coeff})
	d, err := NewDistortion(context.Background(), sys, DistortionOptions{NumPoints: 64})
	if err != nil {
		t.Fatalf("NewDistortion: %v", err)
	}

	// The model scales image height by (1 + coeff·h²), so the full-field
	// distortion approaches 100·coeff percent.
	curve := d.Curves()[0]
	got := curve[len(curve)-1]
	if math.Abs(got-100*coeff) > 0.1 {
		t.Errorf("full-field distortion = %g%%, want about %g%%", got, 100*coeff)
	}

	// Barrel distortion grows monotonically with field.
	for i := 1; i < len(curve); i++ {
		if curve[i] > curve[i-1]+1e-9 {
			t.Errorf("sample %d: barrel distortion should not increase, %g -> %g",
				i, curve[i-1], curve[i])
		}
	}
}

func TestDistortionFThetaReference(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	d, err := NewDistortion(context.Background(), sys, DistortionOptions{
		NumPoints: 32,
		Model:     FTheta,
	})
	if err != nil {
		t.Fatalf("NewDistortion: %v", err)
	}

	// A rectilinear mapping measured against the equidistant reference
	// shows tan(θ)/θ - 1 distortion: about +1.03% at a 10 degree field.
	curve := d.Curves()[0]
	theta := 10 * math.Pi / 180
	want := 100 * (math.Tan(theta)/theta - 1)
	got := curve[len(curve)-1]
	if math.Abs(got-want) > 0.05 {
		t.Errorf("full-field f-theta distortion = %g%%, want about %g%%", got, want)
	}
	if got <= 0 {
		t.Error("f-theta distortion of a rectilinear system should be positive")
	}
}

func TestDistortionZeroMaxField(t *testing.T) {
	tl, err := lens.New(lens.Config{FocalLength: 100, Aperture: 25},
		optic.NewFieldSet([]optic.Field{{Hx: 0, Hy: 0}}, 0),
		optic.NewWavelengthSet([]float64{0.5876}, 0))
	if err != nil {
		t.Fatalf("lens.New: %v", err)
	}
	if _, err := NewDistortion(context.Background(), tl, DistortionOptions{}); err == nil {
		t.Fatal("expected error for zero max field")
	}
}

func TestDistortionFieldAxisInDegrees(t *testing.T) {
	sys := newSystem(t, lens.Aberrations{})
	d, err := NewDistortion(context.Background(), sys, DistortionOptions{NumPoints: 16})
	if err != nil {
		t.Fatalf("NewDistortion: %v", err)
	}
	axis := d.FieldAxis()
	if len(axis) != 16 {
		t.Fatalf("axis length = %d, want 16", len(axis))
	}
	if math.Abs(axis[len(axis)-1]-10) > 1e-9 {
		t.Errorf("axis end = %g, want the 10 degree max field", axis[len(axis)-1])
	}
}
