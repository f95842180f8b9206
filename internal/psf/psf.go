package psf

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"

	"github.com/avierra/optray/internal/optic"
)

// Options configures an FFTPSF. Zero values select a 128-ray pupil on a
// 1024-point transform grid.
type Options struct {
	// NumRays is the pupil grid side.
	NumRays int
	// GridSize is the zero-padded transform side; it must be at least
	// NumRays. The ratio GridSize/NumRays sets the PSF sampling density
	// in the Fourier domain.
	GridSize int
}

// FFTPSF is a diffraction point-spread function. The PSF is computed
// once at construction and cached; views (crop, interpolation) never
// touch the stored grid.
type FFTPSF struct {
	sys      optic.System
	field    optic.Field
	waves    []float64
	numRays  int
	gridSize int

	pupils []*pupil
	grid   [][]float64 // intensity, percent of the diffraction-limited peak
}

// New builds the pupil functions for every wavelength and synthesizes
// the PSF. Multiple wavelengths sum incoherently: each wavelength's
// intensity is normalized by its own diffraction-limited peak, then the
// normalized intensities are averaged.
func New(sys optic.System, field optic.Field, wavelengths []float64, opts Options) (*FFTPSF, error) {
	if opts.NumRays <= 0 {
		opts.NumRays = 128
	}
	if opts.GridSize <= 0 {
		opts.GridSize = 1024
	}
	if opts.GridSize < opts.NumRays {
		return nil, fmt.Errorf("%w: grid size %d smaller than pupil sampling %d",
			optic.ErrInvalidConfig, opts.GridSize, opts.NumRays)
	}
	if len(wavelengths) == 0 {
		wavelengths = []float64{sys.Wavelengths().Primary()}
	}

	p := &FFTPSF{
		sys:      sys,
		field:    field,
		waves:    append([]float64(nil), wavelengths...),
		numRays:  opts.NumRays,
		gridSize: opts.GridSize,
	}

	for _, w := range p.waves {
		pup, err := generatePupil(sys, field, w, p.numRays)
		if err != nil {
			return nil, &optic.AnalysisError{
				Analysis: "fft psf", Field: field, Wavelength: w, Wrapped: err,
			}
		}
		p.pupils = append(p.pupils, pup)
	}

	p.grid = p.compute()
	return p, nil
}

// compute transforms each padded pupil, accumulates normalized
// intensities and scales to percent.
func (p *FFTPSF) compute() [][]float64 {
	g := p.gridSize
	out := make([][]float64, g)
	for i := range out {
		out[i] = make([]float64, g)
	}

	for _, pup := range p.pupils {
		intensity := transformIntensity(pup.padded(g))
		norm := diffractionLimitedPeak(pup, g)
		for i := range out {
			for j := range out[i] {
				out[i][j] += intensity[i][j] / norm
			}
		}
	}

	scale := 100 / float64(len(p.pupils))
	for i := range out {
		for j := range out[i] {
			out[i][j] *= scale
		}
	}
	return out
}

// transformIntensity runs the 2-D FFT, shifts the zero frequency to the
// grid center and takes the squared magnitude.
func transformIntensity(grid [][]complex128) [][]float64 {
	amp := fftshift(fft.FFT2(grid))
	out := make([][]float64, len(amp))
	for i, row := range amp {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j] = real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return out
}

// diffractionLimitedPeak is the peak intensity of the unapodized,
// unaberrated pupil on the same grid: the reference that fixes 100%.
func diffractionLimitedPeak(pup *pupil, gridSize int) float64 {
	intensity := transformIntensity(pup.binary().padded(gridSize))
	max := 0.0
	for _, row := range intensity {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// fftshift moves the zero-frequency component to the grid center.
func fftshift(grid [][]complex128) [][]complex128 {
	n := len(grid)
	m := len(grid[0])
	out := make([][]complex128, n)
	for i := range out {
		out[i] = make([]complex128, m)
		for j := range out[i] {
			out[i][j] = grid[(i+n/2)%n][(j+m/2)%m]
		}
	}
	return out
}

// Field returns the analyzed field.
func (p *FFTPSF) Field() optic.Field { return p.field }

// Wavelengths returns the analyzed wavelengths.
func (p *FFTPSF) Wavelengths() []float64 {
	return append([]float64(nil), p.waves...)
}

// GridSize returns the transform grid side.
func (p *FFTPSF) GridSize() int { return p.gridSize }

// Data returns a deep copy of the intensity grid, in percent of the
// diffraction-limited peak.
func (p *FFTPSF) Data() [][]float64 {
	out := make([][]float64, len(p.grid))
	for i, row := range p.grid {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Peak returns the maximum intensity, in percent. For an unaberrated,
// unapodized pupil this is exactly 100.
func (p *FFTPSF) Peak() float64 {
	max := 0.0
	for _, row := range p.grid {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Strehl returns the peak as a ratio of the diffraction-limited peak.
func (p *FFTPSF) Strehl() float64 { return p.Peak() / 100 }
