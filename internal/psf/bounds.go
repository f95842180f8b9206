package psf

import (
	"fmt"

	"github.com/avierra/optray/internal/optic"
)

// Bounds is a square crop window on the PSF grid, [MinRow,MaxRow) ×
// [MinCol,MaxCol).
type Bounds struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// FindBounds locates a square window centered on the grid midpoint large
// enough to contain every sample exceeding threshold percent, clamped to
// the grid. When no sample exceeds the threshold it returns
// [optic.ErrEmptyResult].
func (p *FFTPSF) FindBounds(threshold float64) (Bounds, error) {
	minR, minC := p.gridSize, p.gridSize
	maxR, maxC := -1, -1
	for i, row := range p.grid {
		for j, v := range row {
			if v > threshold {
				if i < minR {
					minR = i
				}
				if i > maxR {
					maxR = i
				}
				if j < minC {
					minC = j
				}
				if j > maxC {
					maxC = j
				}
			}
		}
	}
	if maxR < 0 {
		return Bounds{}, fmt.Errorf("%w: no PSF sample above %.3g%%", optic.ErrEmptyResult, threshold)
	}

	size := maxR - minR
	if maxC-minC > size {
		size = maxC - minC
	}

	centerR := p.gridSize / 2
	centerC := p.gridSize / 2
	b := Bounds{
		MinRow: clamp(centerR-size/2, 0, p.gridSize),
		MaxRow: clamp(centerR+size/2, 0, p.gridSize),
		MinCol: clamp(centerC-size/2, 0, p.gridSize),
		MaxCol: clamp(centerC+size/2, 0, p.gridSize),
	}
	return b, nil
}

// Crop returns a deep copy of the window.
func (p *FFTPSF) Crop(b Bounds) [][]float64 {
	out := make([][]float64, 0, b.MaxRow-b.MinRow)
	for i := b.MinRow; i < b.MaxRow; i++ {
		out = append(out, append([]float64(nil), p.grid[i][b.MinCol:b.MaxCol]...))
	}
	return out
}

// View crops the PSF to the energy-concentrated core and interpolates it
// onto an n×n display grid.
func (p *FFTPSF) View(threshold float64, n int) ([][]float64, error) {
	b, err := p.FindBounds(threshold)
	if err != nil {
		return nil, err
	}
	return Interpolate(p.Crop(b), n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
