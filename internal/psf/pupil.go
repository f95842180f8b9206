package psf

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/avierra/optray/internal/optic"
)

// pupil is one wavelength's complex amplitude sampled on a square grid,
// zero outside the unit disk.
type pupil struct {
	grid [][]complex128
}

// generatePupil samples the wavefront on a numRays×numRays grid over
// [-1,1]² and assigns amplitude·exp(i·2π·OPD) to in-aperture samples.
// The relative amplitude is normalized by its mean so apodization shapes
// the pupil without changing its average transmission.
func generatePupil(sys optic.System, field optic.Field, wavelength float64, numRays int) (*pupil, error) {
	axis := floats.Span(make([]float64, numRays), -1, 1)

	type cell struct{ row, col int }
	var inDisk []cell
	var px, py []float64
	for r, y := range axis {
		for c, x := range axis {
			if math.Hypot(x, y) <= 1 {
				inDisk = append(inDisk, cell{r, c})
				px = append(px, x)
				py = append(py, y)
			}
		}
	}

	opd, amp, err := sys.Wavefront().Sample(field, wavelength, px, py)
	if err != nil {
		return nil, err
	}
	if len(opd) != len(inDisk) || len(amp) != len(inDisk) {
		return nil, fmt.Errorf("%w: wavefront sample length mismatch", optic.ErrInvalidConfig)
	}

	mean := stat.Mean(amp, nil)
	if mean == 0 || math.IsNaN(mean) {
		return nil, fmt.Errorf("%w: zero mean pupil amplitude", optic.ErrDegenerateGeometry)
	}

	grid := make([][]complex128, numRays)
	for i := range grid {
		grid[i] = make([]complex128, numRays)
	}
	for i, c := range inDisk {
		grid[c.row][c.col] = complex(amp[i]/mean, 0) * cmplx.Exp(complex(0, 2*math.Pi*opd[i]))
	}
	return &pupil{grid: grid}, nil
}

// padded returns the pupil zero-padded symmetrically to size×size.
// Larger padding raises the angular resolution of the transformed
// intensity grid.
func (p *pupil) padded(size int) [][]complex128 {
	n := len(p.grid)
	lead := (size - n) / 2
	out := make([][]complex128, size)
	for i := range out {
		out[i] = make([]complex128, size)
	}
	for i := 0; i < n; i++ {
		copy(out[lead+i][lead:lead+n], p.grid[i])
	}
	return out
}

// binary returns the unapodized mask of the pupil: 1 where the pupil
// transmits, 0 elsewhere.
func (p *pupil) binary() *pupil {
	n := len(p.grid)
	grid := make([][]complex128, n)
	for i := range grid {
		grid[i] = make([]complex128, n)
		for j, v := range p.grid[i] {
			if v != 0 {
				grid[i][j] = 1
			}
		}
	}
	return &pupil{grid: grid}
}

// energy returns the summed squared magnitude of the pupil samples.
func (p *pupil) energy() float64 {
	sum := 0.0
	for _, row := range p.grid {
		for _, v := range row {
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return sum
}
