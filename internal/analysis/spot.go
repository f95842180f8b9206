package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/avierra/optray/internal/optic"
)

// Points is one traced spot pattern: paired image-plane coordinates.
type Points struct {
	X []float64
	Y []float64
}

// Clone returns a deep copy.
func (p Points) Clone() Points {
	return Points{
		X: append([]float64(nil), p.X...),
		Y: append([]float64(nil), p.Y...),
	}
}

// Centroid is a mean image-plane position.
type Centroid struct {
	X float64
	Y float64
}

// SpotOptions configures a SpotDiagram. Zero values select all configured
// fields and wavelengths, six hexapolar rings.
type SpotOptions struct {
	Fields       []optic.Field
	Wavelengths  []float64
	NumRings     int
	Distribution optic.Distribution
}

// SpotDiagram holds traced spot patterns for every (field, wavelength)
// pair, fields outer, wavelengths inner.
type SpotDiagram struct {
	fields  []optic.Field
	waves   []float64
	primary int
	data    [][]Points
}

// NewSpotDiagram traces the spot bundles. Construction fails with
// [optic.ErrTraceFailure] when a bundle comes back fully vignetted.
func NewSpotDiagram(ctx context.Context, sys optic.System, opts SpotOptions) (*SpotDiagram, error) {
	fields := resolveFields(opts.Fields, sys)
	waves := resolveWavelengths(opts.Wavelengths, sys)
	if opts.NumRings <= 0 {
		opts.NumRings = 6
	}

	sd := &SpotDiagram{
		fields:  fields,
		waves:   waves,
		primary: primaryIndex(waves, sys),
		data:    make([][]Points, len(fields)),
	}
	for i := range sd.data {
		sd.data[i] = make([]Points, len(waves))
	}

	err := forEachPair(ctx, fields, waves, func(ctx context.Context, fi, wi int) error {
		res, err := sys.Trace(ctx, fields[fi], waves[wi], opts.NumRings, opts.Distribution)
		if err != nil {
			return err
		}
		if res.ValidRays() == 0 {
			return &optic.AnalysisError{
				Analysis: "spot diagram", Field: fields[fi], Wavelength: waves[wi],
				Wrapped: optic.ErrTraceFailure,
			}
		}
		sd.data[fi][wi] = Points{X: res.X, Y: res.Y}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sd, nil
}

// Fields returns the analyzed fields.
func (sd *SpotDiagram) Fields() []optic.Field { return sd.fields }

// Wavelengths returns the analyzed wavelengths.
func (sd *SpotDiagram) Wavelengths() []float64 { return sd.waves }

// Data returns a deep copy of the raw spot patterns.
func (sd *SpotDiagram) Data() [][]Points { return clonePoints(sd.data) }

// Centroids returns the mean spot position per field, computed at the
// primary wavelength. Aberrations and boresight error must not bias the
// size metrics, so this is the recentring reference for every reduction.
func (sd *SpotDiagram) Centroids() []Centroid {
	out := make([]Centroid, len(sd.fields))
	for i, fieldData := range sd.data {
		p := fieldData[sd.primary]
		out[i] = Centroid{X: stat.Mean(p.X, nil), Y: stat.Mean(p.Y, nil)}
	}
	return out
}

// Centered returns deep-copied spot patterns with each field's centroid
// subtracted from every wavelength's bundle.
func (sd *SpotDiagram) Centered() [][]Points {
	return centerPatterns(sd.data, sd.Centroids())
}

// GeometricRadius returns the maximum centred radial distance per
// (field, wavelength): the worst-case blur radius.
func (sd *SpotDiagram) GeometricRadius() [][]float64 {
	return reduceRadii(sd.Centered(), func(r []float64) float64 {
		max := 0.0
		for _, v := range r {
			if v > max {
				max = v
			}
		}
		return max
	})
}

// RMSRadius returns the root-mean-square centred radial distance per
// (field, wavelength).
func (sd *SpotDiagram) RMSRadius() [][]float64 {
	return reduceRadii(sd.Centered(), func(r []float64) float64 {
		sum := 0.0
		for _, v := range r {
			sum += v * v
		}
		if len(r) == 0 {
			return 0
		}
		return math.Sqrt(sum / float64(len(r)))
	})
}

// String summarizes the analysis for logs.
func (sd *SpotDiagram) String() string {
	return fmt.Sprintf("spot diagram: %d fields × %d wavelengths", len(sd.fields), len(sd.waves))
}

// clonePoints deep-copies a pattern grid.
func clonePoints(data [][]Points) [][]Points {
	out := make([][]Points, len(data))
	for i, fieldData := range data {
		out[i] = make([]Points, len(fieldData))
		for j, p := range fieldData {
			out[i][j] = p.Clone()
		}
	}
	return out
}

// centerPatterns subtracts each field's centroid from every wavelength's
// bundle, on a deep copy.
func centerPatterns(data [][]Points, centroids []Centroid) [][]Points {
	out := clonePoints(data)
	for i, fieldData := range out {
		for _, p := range fieldData {
			for k := range p.X {
				p.X[k] -= centroids[i].X
				p.Y[k] -= centroids[i].Y
			}
		}
	}
	return out
}

// radialDistances returns per-ray distances from the origin.
func radialDistances(p Points) []float64 {
	r := make([]float64, len(p.X))
	for i := range p.X {
		r[i] = math.Hypot(p.X[i], p.Y[i])
	}
	return r
}

// reduceRadii applies a radial reduction per (field, wavelength).
func reduceRadii(data [][]Points, reduce func([]float64) float64) [][]float64 {
	out := make([][]float64, len(data))
	for i, fieldData := range data {
		out[i] = make([]float64, len(fieldData))
		for j, p := range fieldData {
			out[i][j] = reduce(radialDistances(p))
		}
	}
	return out
}
