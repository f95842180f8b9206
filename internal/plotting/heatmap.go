package plotting

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/avierra/optray/internal/psf"
)

// psfGrid adapts a PSF intensity window with physical axis extents to
// plotter.GridXYZ. Row 0 maps to the bottom of the plot.
type psfGrid struct {
	data    [][]float64
	extentX float64
	extentY float64
}

func (g psfGrid) Dims() (c, r int) {
	if len(g.data) == 0 {
		return 0, 0
	}
	return len(g.data[0]), len(g.data)
}

func (g psfGrid) Z(c, r int) float64 { return g.data[r][c] }

func (g psfGrid) X(c int) float64 {
	n := len(g.data[0])
	return g.extentX * (float64(c)/float64(n-1) - 0.5)
}

func (g psfGrid) Y(r int) float64 {
	n := len(g.data)
	return g.extentY * (float64(r)/float64(n-1) - 0.5)
}

// PSFHeatmap draws the cropped PSF core as a heat map with physical
// axes in micrometers.
func PSFHeatmap(p *psf.FFTPSF, threshold float64, path string) error {
	b, err := p.FindBounds(threshold)
	if err != nil {
		return err
	}
	if b.MaxRow-b.MinRow < 2 {
		// A single hot sample crops to a degenerate window; widen it so
		// the axes still have extent.
		b.MinRow--
		b.MaxRow++
		b.MinCol--
		b.MaxCol++
	}
	window := p.Crop(b)
	x, y := p.PhysicalExtent(len(window), len(window[0]))

	fig := plot.New()
	fig.Title.Text = "FFT PSF"
	fig.X.Label.Text = "x (µm)"
	fig.Y.Label.Text = "y (µm)"

	hm := plotter.NewHeatMap(psfGrid{data: window, extentX: x, extentY: y},
		palette.Heat(64, 1))
	fig.Add(hm)

	return fig.Save(figWidth, figHeight, path)
}
