package optic

import (
	"math"
	"testing"
)

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		name string
		want Distribution
	}{
		{"hexapolar", Hexapolar},
		{"random", Random},
		{"uniform", Uniform},
		{"line_x", LineX},
		{"line_y", LineY},
	}
	for _, tt := range tests {
		d, err := ParseDistribution(tt.name)
		if err != nil {
			t.Errorf("ParseDistribution(%q): %v", tt.name, err)
		}
		if d != tt.want {
			t.Errorf("ParseDistribution(%q) = %v, want %v", tt.name, d, tt.want)
		}
		if d.String() != tt.name {
			t.Errorf("String() = %q, want %q", d.String(), tt.name)
		}
	}

	if _, err := ParseDistribution("spiral"); err == nil {
		t.Error("expected error for unknown distribution")
	}
}

func TestHexapolarCount(t *testing.T) {
	tests := []struct {
		rings int
		want  int
	}{
		{1, 7},
		{3, 37},
		{6, 127},
	}
	for _, tt := range tests {
		px, py := Hexapolar.Points(tt.rings, nil)
		if len(px) != tt.want || len(py) != tt.want {
			t.Errorf("rings=%d: got %d points, want %d", tt.rings, len(px), tt.want)
		}
	}
}

func TestPointsInsideUnitDisk(t *testing.T) {
	for _, d := range []Distribution{Hexapolar, Random, Uniform} {
		px, py := d.Points(200, nil)
		for i := range px {
			if math.Hypot(px[i], py[i]) > 1+1e-12 {
				t.Errorf("%v: point %d at radius %f outside unit disk",
					d, i, math.Hypot(px[i], py[i]))
			}
		}
	}
}

func TestLineDistributions(t *testing.T) {
	px, py := LineX.Points(5, nil)
	if px[0] != -1 || px[4] != 1 {
		t.Errorf("LineX endpoints = %f, %f, want -1, 1", px[0], px[4])
	}
	for i, y := range py {
		if y != 0 {
			t.Errorf("LineX py[%d] = %f, want 0", i, y)
		}
	}

	px, py = LineY.Points(5, nil)
	if py[0] != -1 || py[4] != 1 {
		t.Errorf("LineY endpoints = %f, %f, want -1, 1", py[0], py[4])
	}
	for i, x := range px {
		if x != 0 {
			t.Errorf("LineY px[%d] = %f, want 0", i, x)
		}
	}
}

func TestResultValidRays(t *testing.T) {
	r := &Result{
		X:      []float64{0, 0, 0},
		Energy: []float64{1, math.NaN(), 0.5},
	}
	if r.ValidRays() != 2 {
		t.Errorf("ValidRays = %d, want 2", r.ValidRays())
	}
}

func TestResultClone(t *testing.T) {
	r := &Result{X: []float64{1}, Y: []float64{2}, Energy: []float64{1}}
	c := r.Clone()
	c.X[0] = 99
	if r.X[0] != 1 {
		t.Error("Clone should not share backing arrays")
	}
}

func TestFieldSet(t *testing.T) {
	fs := NewFieldSet([]Field{{0, 0}, {0, 0.7}, {0.3, 0.4}}, 10)
	if fs.NumFields() != 3 {
		t.Errorf("NumFields = %d, want 3", fs.NumFields())
	}
	if fs.MaxField() != 10 {
		t.Errorf("MaxField = %f, want 10", fs.MaxField())
	}
	want := 10 * math.Pi / 180
	if math.Abs(fs.MaxFieldRad()-want) > 1e-15 {
		t.Errorf("MaxFieldRad = %f, want %f", fs.MaxFieldRad(), want)
	}
	if r := (Field{0.3, 0.4}).Radius(); math.Abs(r-0.5) > 1e-15 {
		t.Errorf("Radius = %f, want 0.5", r)
	}
}

func TestWavelengthSet(t *testing.T) {
	ws := NewWavelengthSet([]float64{0.4861, 0.5876, 0.6563}, 1)
	if ws.Num() != 3 {
		t.Errorf("Num = %d, want 3", ws.Num())
	}
	if ws.Primary() != 0.5876 {
		t.Errorf("Primary = %f, want 0.5876", ws.Primary())
	}
}
