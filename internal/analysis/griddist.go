package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/avierra/optray/internal/optic"
)

// GridDistortionOptions configures a GridDistortion. Zero values select
// the primary wavelength, a 10×10 grid and the f-tan model.
type GridDistortionOptions struct {
	Wavelength float64 // 0 selects the primary wavelength
	NumPoints  int
	Model      DistortionModel
}

// GridDistortion traces a square grid of field points spanning ±√2/2 in
// normalized field, wide enough to cover the full image diagonal, and
// compares the real image grid against the ideal projection.
type GridDistortion struct {
	xr, yr [][]float64 // traced image grid
	xp, yp [][]float64 // ideal image grid
	max    float64
}

// NewGridDistortion traces the grid and computes the maximum distortion
// metric over all non-origin grid points.
func NewGridDistortion(ctx context.Context, sys optic.System, opts GridDistortionOptions) (*GridDistortion, error) {
	if opts.Wavelength == 0 {
		opts.Wavelength = sys.Wavelengths().Primary()
	}
	if opts.NumPoints <= 0 {
		opts.NumPoints = 10
	}
	n := opts.NumPoints

	maxFieldRad := sys.Fields().MaxFieldRad()
	if maxFieldRad <= 0 {
		return nil, fmt.Errorf("%w: max field angle must be positive", optic.ErrInvalidConfig)
	}

	// Single reference ray calibrates the ideal projection.
	ref, err := sys.TraceGeneric(ctx,
		[]float64{0}, []float64{fieldEpsilon}, []float64{0}, []float64{0}, opts.Wavelength)
	if err != nil {
		return nil, err
	}
	konst := ref.Y[0] / math.Tan(fieldEpsilon*maxFieldRad)

	extent := floats.Span(make([]float64, n), -math.Sqrt2/2, math.Sqrt2/2)

	hx := make([]float64, n*n)
	hy := make([]float64, n*n)
	for i := 0; i < n; i++ { // rows: Hy
		for j := 0; j < n; j++ { // cols: Hx
			hx[i*n+j] = extent[j]
			hy[i*n+j] = extent[i]
		}
	}

	gd := &GridDistortion{
		xp: make([][]float64, n),
		yp: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		gd.xp[i] = make([]float64, n)
		gd.yp[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			gd.xp[i][j] = opts.Model.ideal(konst, extent[j], maxFieldRad)
			gd.yp[i][j] = opts.Model.ideal(konst, extent[i], maxFieldRad)
		}
	}
	// The optical system inverts the x axis; flip the ideal x grid to
	// match the real grid's handedness.
	gd.xp = flipGrid(gd.xp)

	res, err := sys.TraceGeneric(ctx, hx, hy, make([]float64, n*n), make([]float64, n*n), opts.Wavelength)
	if err != nil {
		return nil, err
	}
	gd.xr = reshape(res.X, n)
	gd.yr = reshape(res.Y, n)

	max := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rp := math.Hypot(gd.xp[i][j], gd.yp[i][j])
			if rp < 1e-12 {
				continue // origin point carries no distortion information
			}
			delta := math.Hypot(gd.xp[i][j]-gd.xr[i][j], gd.yp[i][j]-gd.yr[i][j])
			pct := 100 * delta / rp
			if math.IsNaN(pct) || math.IsInf(pct, 0) {
				return nil, &optic.AnalysisError{
					Analysis: "grid distortion", Field: optic.Field{Hx: extent[j], Hy: extent[i]},
					Wavelength: opts.Wavelength, Wrapped: optic.ErrDegenerateGeometry,
				}
			}
			if pct > max {
				max = pct
			}
		}
	}
	gd.max = max
	return gd, nil
}

// Real returns deep copies of the traced image grid.
func (gd *GridDistortion) Real() (x, y [][]float64) {
	return cloneGrid(gd.xr), cloneGrid(gd.yr)
}

// Ideal returns deep copies of the ideal image grid.
func (gd *GridDistortion) Ideal() (x, y [][]float64) {
	return cloneGrid(gd.xp), cloneGrid(gd.yp)
}

// MaxDistortion returns the maximum Euclidean deviation over ideal
// radius, in percent.
func (gd *GridDistortion) MaxDistortion() float64 { return gd.max }

// reshape folds a flat row-major slice into an n×n grid.
func reshape(flat []float64, n int) [][]float64 {
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = append([]float64(nil), flat[i*n:(i+1)*n]...)
	}
	return out
}

// flipGrid reverses both axes of a grid.
func flipGrid(g [][]float64) [][]float64 {
	n := len(g)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, len(g[n-1-i]))
		for j := range out[i] {
			out[i][j] = g[n-1-i][len(out[i])-1-j]
		}
	}
	return out
}

func cloneGrid(g [][]float64) [][]float64 {
	out := make([][]float64, len(g))
	for i, row := range g {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
