package lens

import (
	"fmt"
	"math"

	"github.com/avierra/optray/internal/optic"
)

// WavefrontCoeffs parameterizes the polynomial wavefront error of the
// model, in waves at the aperture edge:
//
//	W(h, ρ) = Defocus·ρ² + Spherical·ρ⁴ + FieldCurvature·h²·ρ²
//
// Amplitude follows the same Gaussian apodization as the ray model. All
// zeros gives a perfectly flat, uniform wavefront.
type WavefrontCoeffs struct {
	Defocus        float64
	Spherical      float64
	FieldCurvature float64
}

// wavefrontModel adapts a ThinLens to the [optic.WavefrontSampler]
// contract.
type wavefrontModel struct {
	tl *ThinLens
}

func (w wavefrontModel) Sample(f optic.Field, wavelength float64, px, py []float64) (opd, amplitude []float64, err error) {
	if len(px) != len(py) {
		return nil, nil, fmt.Errorf("%w: mismatched pupil coordinate lengths", optic.ErrInvalidConfig)
	}
	if wavelength <= 0 {
		return nil, nil, fmt.Errorf("%w: wavelength must be positive", optic.ErrInvalidConfig)
	}

	c := w.tl.wf
	h2 := f.Hx*f.Hx + f.Hy*f.Hy
	opd = make([]float64, len(px))
	amplitude = make([]float64, len(px))
	for i := range px {
		rho2 := px[i]*px[i] + py[i]*py[i]
		opd[i] = c.Defocus*rho2 + c.Spherical*rho2*rho2 + c.FieldCurvature*h2*rho2
		amplitude[i] = math.Exp(-w.tl.ab.Apodization * rho2)
	}
	return opd, amplitude, nil
}
