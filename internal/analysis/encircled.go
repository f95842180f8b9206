package analysis

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/avierra/optray/internal/optic"
)

// EncircledOptions configures an EncircledEnergy analysis. Zero values
// select all fields, the primary wavelength, 10000 random rays, a
// 256-point curve and a 1.2 radius buffer.
type EncircledOptions struct {
	Fields       []optic.Field
	Wavelength   float64 // 0 selects the primary wavelength
	NumRays      int
	Distribution optic.Distribution
	NumPoints    int
	Buffer       float64
}

// EncircledEnergy carries per-ray transmitted energy alongside spot
// positions and reduces them to cumulative energy-versus-radius curves,
// one per field, all sharing a common radius axis.
type EncircledEnergy struct {
	fields     []optic.Field
	wavelength float64
	x, y       [][]float64 // centred positions per field
	energy     [][]float64 // per-ray energy per field, NaN = vignetted
	radii      []float64
	curves     [][]float64
}

// NewEncircledEnergy traces the bundles and builds the curves.
func NewEncircledEnergy(ctx context.Context, sys optic.System, opts EncircledOptions) (*EncircledEnergy, error) {
	fields := resolveFields(opts.Fields, sys)
	if opts.Wavelength == 0 {
		opts.Wavelength = sys.Wavelengths().Primary()
	}
	if opts.NumRays <= 0 {
		opts.NumRays = 10000
	}
	if opts.Distribution == optic.Hexapolar {
		opts.Distribution = optic.Random
	}
	if opts.NumPoints <= 0 {
		opts.NumPoints = 256
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 1.2
	}

	ee := &EncircledEnergy{
		fields:     fields,
		wavelength: opts.Wavelength,
		x:          make([][]float64, len(fields)),
		y:          make([][]float64, len(fields)),
		energy:     make([][]float64, len(fields)),
	}

	waves := []float64{opts.Wavelength}
	err := forEachPair(ctx, fields, waves, func(ctx context.Context, fi, _ int) error {
		res, err := sys.Trace(ctx, fields[fi], opts.Wavelength, opts.NumRays, opts.Distribution)
		if err != nil {
			return err
		}
		if res.ValidRays() == 0 {
			return &optic.AnalysisError{
				Analysis: "encircled energy", Field: fields[fi], Wavelength: opts.Wavelength,
				Wrapped: optic.ErrTraceFailure,
			}
		}
		ee.x[fi] = res.X
		ee.y[fi] = res.Y
		ee.energy[fi] = res.Energy
		return nil
	})
	if err != nil {
		return nil, err
	}

	ee.center()
	ee.buildCurves(opts.NumPoints, opts.Buffer)
	return ee, nil
}

// center subtracts each field's own bundle centroid; the analysis runs a
// single wavelength, so the bundle is its own recentring reference.
func (ee *EncircledEnergy) center() {
	for i := range ee.fields {
		cx := stat.Mean(ee.x[i], nil)
		cy := stat.Mean(ee.y[i], nil)
		for k := range ee.x[i] {
			ee.x[i][k] -= cx
			ee.y[i][k] -= cy
		}
	}
}

// buildCurves evaluates the cumulative energy sum at numPoints radii from
// zero to buffer times the largest geometric spot radius across fields.
// The radii are arbitrary floats, not aligned bucket edges, so each value
// is a fresh cumulative sum over the bundle.
func (ee *EncircledEnergy) buildCurves(numPoints int, buffer float64) {
	axisLim := 0.0
	radii := make([][]float64, len(ee.fields))
	for i := range ee.fields {
		radii[i] = make([]float64, len(ee.x[i]))
		for k := range ee.x[i] {
			r := math.Hypot(ee.x[i][k], ee.y[i][k])
			radii[i][k] = r
			if r > axisLim {
				axisLim = r
			}
		}
	}

	ee.radii = floats.Span(make([]float64, numPoints), 0, axisLim*buffer)
	ee.curves = make([][]float64, len(ee.fields))
	for i := range ee.fields {
		ee.curves[i] = make([]float64, numPoints)
		for j, r := range ee.radii {
			ee.curves[i][j] = encircled(radii[i], ee.energy[i], r)
		}
	}
}

// encircled sums the energy of all rays with radius ≤ r. NaN energies
// (vignetted rays) contribute nothing.
func encircled(radii, energy []float64, r float64) float64 {
	sum := 0.0
	for i, rad := range radii {
		if rad <= r && !math.IsNaN(energy[i]) {
			sum += energy[i]
		}
	}
	return sum
}

// Fields returns the analyzed fields.
func (ee *EncircledEnergy) Fields() []optic.Field { return ee.fields }

// Wavelength returns the analyzed wavelength.
func (ee *EncircledEnergy) Wavelength() float64 { return ee.wavelength }

// Radii returns a copy of the shared radius axis.
func (ee *EncircledEnergy) Radii() []float64 {
	return append([]float64(nil), ee.radii...)
}

// Curves returns a deep copy of the energy curves, one per field.
func (ee *EncircledEnergy) Curves() [][]float64 {
	out := make([][]float64, len(ee.curves))
	for i, c := range ee.curves {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// TotalEnergy returns the summed transmitted energy per field, vignetted
// rays excluded.
func (ee *EncircledEnergy) TotalEnergy() []float64 {
	out := make([]float64, len(ee.fields))
	for i, energies := range ee.energy {
		sum := 0.0
		for _, e := range energies {
			if !math.IsNaN(e) {
				sum += e
			}
		}
		out[i] = sum
	}
	return out
}
