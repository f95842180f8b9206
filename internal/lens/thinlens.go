package lens

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/avierra/optray/internal/optic"
)

// Aberrations holds the third-order ray aberration knobs of the thin-lens
// model. All lengths are millimeters; field terms scale with the squared
// normalized field radius, pupil terms with the normalized pupil radius.
type Aberrations struct {
	// Defocus shifts both foci axially.
	Defocus float64
	// Spherical is the transverse third-order coefficient: a ray at
	// normalized pupil radius ρ misses the ideal image point by
	// Spherical·ρ³ along its pupil direction.
	Spherical float64
	// FieldCurvatureT and FieldCurvatureS shift the tangential and
	// sagittal foci by coeff·h² at normalized field radius h.
	FieldCurvatureT float64
	FieldCurvatureS float64
	// Distortion scales the ideal image height by (1 + Distortion·h²).
	Distortion float64
	// Chromatic scales the focal length by (1 + Chromatic·(λ-λp)) with
	// λ in micrometers relative to the primary wavelength.
	Chromatic float64
	// Apodization attenuates per-ray energy as exp(-2·Apodization·ρ²).
	Apodization float64
	// VignetteRadius marks rays with ρ above it as vignetted (NaN
	// energy). Zero disables vignetting.
	VignetteRadius float64
}

// ThinLens is an ideal thin lens implementing [optic.System].
type ThinLens struct {
	focal    float64 // effective focal length, mm
	aperture float64 // entrance pupil diameter, mm
	objDist  float64 // object distance, mm; <= 0 means infinity
	imgDist  float64 // nominal image plane distance, mm
	ab       Aberrations
	seed     int64

	fields      *optic.FieldSet
	wavelengths *optic.WavelengthSet
	wf          WavefrontCoeffs
}

// Config collects the constructor parameters of a ThinLens.
type Config struct {
	FocalLength    float64
	Aperture       float64
	ObjectDistance float64 // <= 0: object at infinity
	Aberrations    Aberrations
	Wavefront      WavefrontCoeffs
	Seed           int64
}

// New builds a thin-lens system. The image plane sits at the paraxial
// focus of the primary wavelength; aberration knobs move individual rays,
// never the plane.
func New(cfg Config, fields *optic.FieldSet, wavelengths *optic.WavelengthSet) (*ThinLens, error) {
	if cfg.FocalLength <= 0 {
		return nil, fmt.Errorf("%w: focal length must be positive", optic.ErrInvalidConfig)
	}
	if cfg.Aperture <= 0 {
		return nil, fmt.Errorf("%w: aperture must be positive", optic.ErrInvalidConfig)
	}
	if fields == nil || fields.NumFields() == 0 {
		return nil, fmt.Errorf("%w: at least one field required", optic.ErrInvalidConfig)
	}
	if wavelengths == nil || wavelengths.Num() == 0 {
		return nil, fmt.Errorf("%w: at least one wavelength required", optic.ErrInvalidConfig)
	}

	tl := &ThinLens{
		focal:       cfg.FocalLength,
		aperture:    cfg.Aperture,
		objDist:     cfg.ObjectDistance,
		ab:          cfg.Aberrations,
		wf:          cfg.Wavefront,
		seed:        cfg.Seed,
		fields:      fields,
		wavelengths: wavelengths,
	}
	if tl.seed == 0 {
		tl.seed = 1
	}
	tl.imgDist = tl.imageDistance(tl.focal)
	return tl, nil
}

// imageDistance solves the thin-lens equation for the given focal length.
func (tl *ThinLens) imageDistance(f float64) float64 {
	if tl.objDist <= 0 {
		return f
	}
	if tl.objDist == f {
		return math.Inf(1)
	}
	return tl.objDist * f / (tl.objDist - f)
}

// focalAt applies the chromatic coefficient to the focal length.
func (tl *ThinLens) focalAt(wavelength float64) float64 {
	return tl.focal * (1 + tl.ab.Chromatic*(wavelength-tl.wavelengths.Primary()))
}

// Trace implements [optic.Tracer]. The random distribution is seeded per
// call so repeated traces are identical.
func (tl *ThinLens) Trace(ctx context.Context, f optic.Field, wavelength float64, num int, dist optic.Distribution) (*optic.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(tl.seed))
	px, py := dist.Points(num, rng)
	hx := make([]float64, len(px))
	hy := make([]float64, len(px))
	for i := range hx {
		hx[i] = f.Hx
		hy[i] = f.Hy
	}
	return tl.trace(hx, hy, px, py, wavelength), nil
}

// TraceGeneric implements [optic.Tracer].
func (tl *ThinLens) TraceGeneric(ctx context.Context, hx, hy, px, py []float64, wavelength float64) (*optic.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(hx) != len(hy) || len(hx) != len(px) || len(hx) != len(py) {
		return nil, fmt.Errorf("%w: mismatched trace coordinate lengths", optic.ErrInvalidConfig)
	}
	return tl.trace(hx, hy, px, py, wavelength), nil
}

// trace propagates one ray per element to the nominal image plane.
func (tl *ThinLens) trace(hx, hy, px, py []float64, wavelength float64) *optic.Result {
	n := len(hx)
	res := &optic.Result{
		X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n),
		L: make([]float64, n), M: make([]float64, n), N: make([]float64, n),
		Energy: make([]float64, n),
	}

	maxRad := tl.fields.MaxFieldRad()
	fw := tl.focalAt(wavelength)
	imgW := tl.imageDistance(fw)

	for i := 0; i < n; i++ {
		thetaX := hx[i] * maxRad
		thetaY := hy[i] * maxRad
		h2 := hx[i]*hx[i] + hy[i]*hy[i]
		distScale := 1 + tl.ab.Distortion*h2

		// The system inverts the x axis; y keeps its sign.
		xc := -imgW * math.Tan(thetaX) * distScale
		yc := imgW * math.Tan(thetaY) * distScale

		rho2 := px[i]*px[i] + py[i]*py[i]
		xc += tl.ab.Spherical * rho2 * px[i]
		yc += tl.ab.Spherical * rho2 * py[i]

		// Lens-plane ray origin.
		x0 := px[i] * tl.aperture / 2
		y0 := py[i] * tl.aperture / 2

		zS := imgW + tl.ab.Defocus + tl.ab.FieldCurvatureS*h2
		zT := imgW + tl.ab.Defocus + tl.ab.FieldCurvatureT*h2

		sx := (xc - x0) / zS
		sy := (yc - y0) / zT

		nz := 1 / math.Sqrt(1+sx*sx+sy*sy)
		res.L[i] = sx * nz
		res.M[i] = sy * nz
		res.N[i] = nz

		res.X[i] = x0 + sx*tl.imgDist
		res.Y[i] = y0 + sy*tl.imgDist
		res.Z[i] = tl.imgDist

		if tl.ab.VignetteRadius > 0 && math.Sqrt(rho2) > tl.ab.VignetteRadius {
			res.Energy[i] = math.NaN()
		} else {
			res.Energy[i] = math.Exp(-2 * tl.ab.Apodization * rho2)
		}
	}
	return res
}

// Paraxial implements [optic.System].
func (tl *ThinLens) Paraxial() optic.Paraxial { return paraxialView{tl} }

// Wavefront implements [optic.System].
func (tl *ThinLens) Wavefront() optic.WavefrontSampler { return wavefrontModel{tl} }

// Fields implements [optic.System].
func (tl *ThinLens) Fields() *optic.FieldSet { return tl.fields }

// Wavelengths implements [optic.System].
func (tl *ThinLens) Wavelengths() *optic.WavelengthSet { return tl.wavelengths }
