package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/avierra/optray/internal/lens"
	"github.com/avierra/optray/internal/optic"
)

func newSystem(t *testing.T, ab lens.Aberrations) *lens.ThinLens {
	t.Helper()
	tl, err := lens.New(lens.Config{
		FocalLength: 100,
		Aperture:    25,
		Aberrations: ab,
	},
		optic.NewFieldSet([]optic.Field{{Hx: 0, Hy: 0}, {Hx: 0, Hy: 0.7}, {Hx: 0, Hy: 1}}, 10),
		optic.NewWavelengthSet([]float64{0.4861, 0.5876, 0.6563}, 1),
	)
	if err != nil {
		t.Fatalf("lens.New: %v", err)
	}
	return tl
}

// vignettedSystem wraps a ThinLens and marks every traced ray vignetted,
// exercising the fully-vignetted error path.
type vignettedSystem struct {
	*lens.ThinLens
}

func (v vignettedSystem) Trace(ctx context.Context, f optic.Field, wavelength float64, num int, dist optic.Distribution) (*optic.Result, error) {
	res, err := v.ThinLens.Trace(ctx, f, wavelength, num, dist)
	if err != nil {
		return nil, err
	}
	for i := range res.Energy {
		res.Energy[i] = math.NaN()
	}
	return res, nil
}

// collimatedSystem wraps a ThinLens and forces every ray parallel to the
// axis, making parabasal intersection solves singular.
type collimatedSystem struct {
	*lens.ThinLens
}

func (c collimatedSystem) TraceGeneric(ctx context.Context, hx, hy, px, py []float64, wavelength float64) (*optic.Result, error) {
	res, err := c.ThinLens.TraceGeneric(ctx, hx, hy, px, py, wavelength)
	if err != nil {
		return nil, err
	}
	for i := range res.L {
		res.L[i] = 0
		res.M[i] = 0
		res.N[i] = 1
	}
	return res, nil
}
