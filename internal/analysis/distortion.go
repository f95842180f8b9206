package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/avierra/optray/internal/optic"
)

// fieldEpsilon offsets the smallest field sample from zero so the
// calibration constant avoids a 0/0 at the origin.
const fieldEpsilon = 1e-10

// DistortionModel selects the ideal projection the real image heights are
// compared against.
type DistortionModel int

const (
	// FTan compares against the rectilinear mapping y = f·tan(θ).
	FTan DistortionModel = iota
	// FTheta compares against the equidistant mapping y = f·θ.
	FTheta
)

func (m DistortionModel) String() string {
	switch m {
	case FTan:
		return "f-tan"
	case FTheta:
		return "f-theta"
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// ParseDistortionModel maps a configuration name onto the enumeration.
func ParseDistortionModel(name string) (DistortionModel, error) {
	switch name {
	case "f-tan":
		return FTan, nil
	case "f-theta":
		return FTheta, nil
	}
	return 0, fmt.Errorf("%w: distortion model must be \"f-tan\" or \"f-theta\", got %q",
		optic.ErrInvalidConfig, name)
}

// ideal maps a normalized field coordinate to an ideal image height for
// the calibration constant konst.
func (m DistortionModel) ideal(konst, h, maxFieldRad float64) float64 {
	angle := h * maxFieldRad
	if m == FTheta {
		return konst * angle
	}
	return konst * math.Tan(angle)
}

// DistortionOptions configures a Distortion analysis. Zero values select
// all wavelengths, 128 field samples and the f-tan model.
type DistortionOptions struct {
	Wavelengths []float64
	NumPoints   int
	Model       DistortionModel
}

// Distortion traces a single meridional ray per field height and reports
// the percentage deviation of the real image height from the ideal
// projection, one curve per wavelength.
type Distortion struct {
	waves     []float64
	fieldAxis []float64 // field heights in degrees, for presentation
	curves    [][]float64
}

// NewDistortion builds the distortion curves. A near-zero ideal height
// anywhere off-origin surfaces [optic.ErrDegenerateGeometry].
func NewDistortion(ctx context.Context, sys optic.System, opts DistortionOptions) (*Distortion, error) {
	waves := resolveWavelengths(opts.Wavelengths, sys)
	if opts.NumPoints <= 0 {
		opts.NumPoints = 128
	}
	n := opts.NumPoints

	maxFieldRad := sys.Fields().MaxFieldRad()
	if maxFieldRad <= 0 {
		return nil, fmt.Errorf("%w: max field angle must be positive", optic.ErrInvalidConfig)
	}

	hy := floats.Span(make([]float64, n), fieldEpsilon, 1)
	hx := make([]float64, n)
	px := make([]float64, n)
	py := make([]float64, n)

	d := &Distortion{
		waves:     waves,
		fieldAxis: floats.Span(make([]float64, n), fieldEpsilon, sys.Fields().MaxField()),
		curves:    make([][]float64, len(waves)),
	}

	for wi, w := range waves {
		res, err := sys.TraceGeneric(ctx, hx, hy, px, py, w)
		if err != nil {
			return nil, err
		}
		yr := res.Y

		// Calibrate the ideal projection at the smallest field sample.
		konst := yr[0] / math.Tan(fieldEpsilon*maxFieldRad)

		curve := make([]float64, n)
		for i := 0; i < n; i++ {
			yp := opts.Model.ideal(konst, hy[i], maxFieldRad)
			curve[i] = 100 * (yr[i] - yp) / yp
			if math.IsNaN(curve[i]) || math.IsInf(curve[i], 0) {
				return nil, &optic.AnalysisError{
					Analysis: "distortion", Field: optic.Field{Hy: hy[i]}, Wavelength: w,
					Wrapped: optic.ErrDegenerateGeometry,
				}
			}
		}
		d.curves[wi] = curve
	}
	return d, nil
}

// Wavelengths returns the analyzed wavelengths.
func (d *Distortion) Wavelengths() []float64 { return d.waves }

// FieldAxis returns field heights in degrees matching the curve samples.
func (d *Distortion) FieldAxis() []float64 {
	return append([]float64(nil), d.fieldAxis...)
}

// Curves returns a deep copy of the distortion percentages per
// wavelength.
func (d *Distortion) Curves() [][]float64 {
	out := make([][]float64, len(d.curves))
	for i, c := range d.curves {
		out[i] = append([]float64(nil), c...)
	}
	return out
}
