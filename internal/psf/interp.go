package psf

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/avierra/optray/internal/optic"
)

// Interpolate resamples an image onto an n×n grid with separable natural
// cubic splines, rows first, then columns. Presentation only: the
// smoothed surface must never feed quantitative metrics.
func Interpolate(image [][]float64, n int) ([][]float64, error) {
	if len(image) < 2 || len(image[0]) < 2 {
		return nil, fmt.Errorf("%w: image too small to interpolate", optic.ErrInvalidConfig)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: interpolation grid must have at least 2 points", optic.ErrInvalidConfig)
	}

	rows := len(image)
	cols := len(image[0])
	xsCols := floats.Span(make([]float64, cols), 0, 1)
	xsRows := floats.Span(make([]float64, rows), 0, 1)
	target := floats.Span(make([]float64, n), 0, 1)

	// Pass 1: resample each row to n columns.
	mid := make([][]float64, rows)
	for i, row := range image {
		var spline interp.NaturalCubic
		if err := spline.Fit(xsCols, row); err != nil {
			return nil, err
		}
		mid[i] = make([]float64, n)
		for j, x := range target {
			mid[i][j] = spline.Predict(x)
		}
	}

	// Pass 2: resample each intermediate column to n rows.
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	col := make([]float64, rows)
	for j := 0; j < n; j++ {
		for i := 0; i < rows; i++ {
			col[i] = mid[i][j]
		}
		var spline interp.NaturalCubic
		if err := spline.Fit(xsRows, col); err != nil {
			return nil, err
		}
		for i, x := range target {
			out[i][j] = spline.Predict(x)
		}
	}
	return out, nil
}
