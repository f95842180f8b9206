package analysis

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/avierra/optray/internal/optic"
)

// RayFanOptions configures a RayFan. Zero values select all fields, all
// wavelengths and 256 samples per slice.
type RayFanOptions struct {
	Fields      []optic.Field
	Wavelengths []float64
	NumPoints   int
}

// FanCurve holds the transverse aberration of one (field, wavelength)
// pair along both pupil slices.
type FanCurve struct {
	// EpsX is the image-plane x error along the Px slice; EpsY the y
	// error along the Py slice.
	EpsX []float64
	EpsY []float64
}

// RayFan traces 1-D pupil slices per field and wavelength. The point
// count is forced even so a sample lands on pupil coordinate 0; that
// center sample at the primary wavelength is the unaberrated reference
// subtracted from every wavelength's curves, removing lateral color and
// distortion so the fan shows transverse aberration shape only.
type RayFan struct {
	fields  []optic.Field
	waves   []float64
	primary int
	px, py  []float64
	data    [][]FanCurve
}

// NewRayFan traces the fans.
func NewRayFan(ctx context.Context, sys optic.System, opts RayFanOptions) (*RayFan, error) {
	fields := resolveFields(opts.Fields, sys)
	waves := resolveWavelengths(opts.Wavelengths, sys)
	if opts.NumPoints <= 0 {
		opts.NumPoints = 256
	}
	if opts.NumPoints%2 == 1 {
		opts.NumPoints++
	}
	n := opts.NumPoints

	rf := &RayFan{
		fields:  fields,
		waves:   waves,
		primary: primaryIndex(waves, sys),
		px:      floats.Span(make([]float64, n), -1, 1),
		py:      floats.Span(make([]float64, n), -1, 1),
		data:    make([][]FanCurve, len(fields)),
	}
	for i := range rf.data {
		rf.data[i] = make([]FanCurve, len(waves))
	}

	err := forEachPair(ctx, fields, waves, func(ctx context.Context, fi, wi int) error {
		resX, err := sys.Trace(ctx, fields[fi], waves[wi], n, optic.LineX)
		if err != nil {
			return err
		}
		resY, err := sys.Trace(ctx, fields[fi], waves[wi], n, optic.LineY)
		if err != nil {
			return err
		}
		rf.data[fi][wi] = FanCurve{EpsX: resX.X, EpsY: resY.Y}
		return nil
	})
	if err != nil {
		return nil, err
	}

	rf.removeDistortion(n)
	return rf, nil
}

// removeDistortion subtracts each field's primary-wavelength center
// sample from all wavelengths of that field.
func (rf *RayFan) removeDistortion(n int) {
	for fi := range rf.fields {
		xOffset := rf.data[fi][rf.primary].EpsX[n/2]
		yOffset := rf.data[fi][rf.primary].EpsY[n/2]
		for wi := range rf.waves {
			floats.AddConst(-xOffset, rf.data[fi][wi].EpsX)
			floats.AddConst(-yOffset, rf.data[fi][wi].EpsY)
		}
	}
}

// Fields returns the analyzed fields.
func (rf *RayFan) Fields() []optic.Field { return rf.fields }

// Wavelengths returns the analyzed wavelengths.
func (rf *RayFan) Wavelengths() []float64 { return rf.waves }

// PupilX returns a copy of the Px slice coordinates.
func (rf *RayFan) PupilX() []float64 { return append([]float64(nil), rf.px...) }

// PupilY returns a copy of the Py slice coordinates.
func (rf *RayFan) PupilY() []float64 { return append([]float64(nil), rf.py...) }

// Curve returns a deep copy of the fan for one (field, wavelength) pair.
func (rf *RayFan) Curve(fieldIdx, waveIdx int) FanCurve {
	c := rf.data[fieldIdx][waveIdx]
	return FanCurve{
		EpsX: append([]float64(nil), c.EpsX...),
		EpsY: append([]float64(nil), c.EpsY...),
	}
}
