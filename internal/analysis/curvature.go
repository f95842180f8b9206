package analysis

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/avierra/optray/internal/optic"
)

// FieldCurvatureOptions configures a FieldCurvature analysis. Zero values
// select all wavelengths, 128 field samples and a parabasal pupil offset
// of 1e-5.
type FieldCurvatureOptions struct {
	Wavelengths []float64
	NumPoints   int
	Delta       float64
}

// FieldCurvature locates the tangential and sagittal image surfaces by
// intersecting closely spaced parabasal ray pairs. For each field height
// a pair offset by ±δ in pupil coordinates is traced; extrapolating both
// rays along their direction cosines to their crossing gives the axial
// offset of the local focus from the nominal image plane.
type FieldCurvature struct {
	waves      []float64
	fieldAxis  []float64 // field heights in degrees, for presentation
	tangential [][]float64
	sagittal   [][]float64
}

// NewFieldCurvature traces the parabasal pairs. Near-parallel pairs make
// the intersection solve singular and surface
// [optic.ErrDegenerateGeometry] instead of silently emitting non-finite
// offsets.
func NewFieldCurvature(ctx context.Context, sys optic.System, opts FieldCurvatureOptions) (*FieldCurvature, error) {
	waves := resolveWavelengths(opts.Wavelengths, sys)
	if opts.NumPoints <= 0 {
		opts.NumPoints = 128
	}
	if opts.Delta <= 0 {
		opts.Delta = 1e-5
	}
	n := opts.NumPoints

	fc := &FieldCurvature{
		waves:      waves,
		fieldAxis:  floats.Span(make([]float64, n), 0, sys.Fields().MaxField()),
		tangential: make([][]float64, len(waves)),
		sagittal:   make([][]float64, len(waves)),
	}

	// Paired rays: each field height appears twice, with the pupil
	// coordinate alternating -δ, +δ in the probed plane.
	hx := make([]float64, 2*n)
	hy := make([]float64, 2*n)
	heights := floats.Span(make([]float64, n), 0, 1)
	for i, h := range heights {
		hy[2*i] = h
		hy[2*i+1] = h
	}
	offsets := make([]float64, 2*n)
	zeros := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		offsets[2*i] = -opts.Delta
		offsets[2*i+1] = opts.Delta
	}

	for wi, w := range waves {
		// Tangential: pair separated along Py, intersect in the y-z plane.
		res, err := sys.TraceGeneric(ctx, hx, hy, zeros, offsets, w)
		if err != nil {
			return nil, err
		}
		tan, err := intersectPairs(res.Y, res.Z, res.M, res.N, w)
		if err != nil {
			return nil, err
		}
		fc.tangential[wi] = tan

		// Sagittal: pair separated along Px, intersect in the x-z plane.
		res, err = sys.TraceGeneric(ctx, hx, hy, offsets, zeros, w)
		if err != nil {
			return nil, err
		}
		sag, err := intersectPairs(res.X, res.Z, res.L, res.N, w)
		if err != nil {
			return nil, err
		}
		fc.sagittal[wi] = sag
	}
	return fc, nil
}

// intersectPairs solves, for each consecutive ray pair, the 2×2 linear
// system locating the crossing of the two rays in the (t, z) plane and
// returns the axial distance from the recorded image points. t and z
// denote the transverse (y or x) and axial coordinates; u and nz the
// matching direction cosines.
func intersectPairs(t, z, u, nz []float64, wavelength float64) ([]float64, error) {
	n := len(t) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		u1, n1 := u[2*i], nz[2*i]
		u2, n2 := u[2*i+1], nz[2*i+1]
		t1, z1 := t[2*i], z[2*i]
		t2, z2 := t[2*i+1], z[2*i+1]

		det := u1*n2 - u2*n1
		if math.Abs(det) < 1e-14*(math.Abs(u1*n2)+math.Abs(u2*n1)+1e-300) {
			return nil, &optic.AnalysisError{
				Analysis: "field curvature", Field: optic.Field{}, Wavelength: wavelength,
				Wrapped: optic.ErrDegenerateGeometry,
			}
		}

		s := (u2*z1 - u2*z2 - n2*t1 + n2*t2) / det
		out[i] = s * n1
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, &optic.AnalysisError{
				Analysis: "field curvature", Field: optic.Field{}, Wavelength: wavelength,
				Wrapped: optic.ErrDegenerateGeometry,
			}
		}
	}
	return out, nil
}

// Wavelengths returns the analyzed wavelengths.
func (fc *FieldCurvature) Wavelengths() []float64 { return fc.waves }

// FieldAxis returns field heights in degrees matching the curve samples.
func (fc *FieldCurvature) FieldAxis() []float64 {
	return append([]float64(nil), fc.fieldAxis...)
}

// Tangential returns deep copies of the tangential image-plane offsets
// per wavelength, in lens units.
func (fc *FieldCurvature) Tangential() [][]float64 {
	out := make([][]float64, len(fc.tangential))
	for i, c := range fc.tangential {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// Sagittal returns deep copies of the sagittal image-plane offsets per
// wavelength, in lens units.
func (fc *FieldCurvature) Sagittal() [][]float64 {
	out := make([][]float64, len(fc.sagittal))
	for i, c := range fc.sagittal {
		out[i] = append([]float64(nil), c...)
	}
	return out
}
