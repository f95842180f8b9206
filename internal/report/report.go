// Package report renders analysis results for the terminal: styled
// summaries, aligned tables and ascii curve plots.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/avierra/optray/internal/analysis"
	"github.com/avierra/optray/internal/psf"
)

const (
	graphHeight = 12
	graphWidth  = 72
)

// Spot renders centroid and radius tables per field and wavelength.
func Spot(sd *analysis.SpotDiagram) string {
	var b strings.Builder
	b.WriteString(Title.Render("spot diagram") + "\n\n")

	centroids := sd.Centroids()
	geo := sd.GeometricRadius()
	rms := sd.RMSRadius()
	waves := sd.Wavelengths()

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "field\twavelength\tcentroid x\tcentroid y\tgeo radius\trms radius")
	for fi, f := range sd.Fields() {
		for wi, wave := range waves {
			fmt.Fprintf(w, "(%.2f, %.2f)\t%.4f µm\t%.5f\t%.5f\t%.5g\t%.5g\n",
				f.Hx, f.Hy, wave, centroids[fi].X, centroids[fi].Y, geo[fi][wi], rms[fi][wi])
		}
	}
	w.Flush()
	return b.String()
}

// Encircled renders the energy-versus-radius curves, one series per
// field.
func Encircled(ee *analysis.EncircledEnergy) string {
	var b strings.Builder
	b.WriteString(Title.Render("encircled energy") + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("wavelength %.4f µm", ee.Wavelength())) + "\n\n")

	graph := asciigraph.PlotMany(ee.Curves(),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("encircled energy vs radius"),
	)
	b.WriteString(graph + "\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "field\ttotal energy")
	for i, f := range ee.Fields() {
		fmt.Fprintf(w, "(%.2f, %.2f)\t%.4g\n", f.Hx, f.Hy, ee.TotalEnergy()[i])
	}
	w.Flush()
	return b.String()
}

// RayFan renders the tangential fan of each field at the first
// wavelength.
func RayFan(rf *analysis.RayFan) string {
	var b strings.Builder
	b.WriteString(Title.Render("ray fan") + "\n\n")

	for fi, f := range rf.Fields() {
		curves := make([][]float64, len(rf.Wavelengths()))
		for wi := range rf.Wavelengths() {
			curves[wi] = rf.Curve(fi, wi).EpsY
		}
		graph := asciigraph.PlotMany(curves,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("εy vs Py, field (%.2f, %.2f)", f.Hx, f.Hy)),
		)
		b.WriteString(graph + "\n\n")
	}
	return b.String()
}

// Distortion renders one distortion curve per wavelength.
func Distortion(d *analysis.Distortion) string {
	var b strings.Builder
	b.WriteString(Title.Render("distortion") + "\n\n")

	graph := asciigraph.PlotMany(d.Curves(),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("distortion (%) vs field"),
	)
	b.WriteString(graph + "\n")
	return b.String()
}

// GridDistortion renders the scalar metric; the 2-D overlay belongs to
// the PNG renderer.
func GridDistortion(gd *analysis.GridDistortion) string {
	var b strings.Builder
	b.WriteString(Title.Render("grid distortion") + "\n\n")
	b.WriteString("max distortion: " + Value.Render(fmt.Sprintf("%.3f%%", gd.MaxDistortion())) + "\n")
	return b.String()
}

// Curvature renders tangential and sagittal offsets per wavelength.
func Curvature(fc *analysis.FieldCurvature) string {
	var b strings.Builder
	b.WriteString(Title.Render("field curvature") + "\n\n")

	for wi, wave := range fc.Wavelengths() {
		curves := [][]float64{fc.Tangential()[wi], fc.Sagittal()[wi]}
		graph := asciigraph.PlotMany(curves,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("image plane delta vs field, %.4f µm (T, S)", wave)),
		)
		b.WriteString(graph + "\n\n")
	}
	return b.String()
}

// PSF renders the diffraction summary and a central cross-section.
func PSF(p *psf.FFTPSF) string {
	var b strings.Builder
	b.WriteString(Title.Render("fft psf") + "\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	g := p.GridSize()
	x, y := p.PhysicalExtent(g, g)
	fmt.Fprintf(w, "field\t(%.2f, %.2f)\n", p.Field().Hx, p.Field().Hy)
	fmt.Fprintf(w, "peak\t%.2f%%\n", p.Peak())
	fmt.Fprintf(w, "strehl\t%.4f\n", p.Strehl())
	fmt.Fprintf(w, "grid extent\t%.2f × %.2f µm\n", x, y)
	w.Flush()
	b.WriteString("\n")

	row := p.Data()[g/2]
	// Trim the flat skirt so the core fills the plot.
	graph := asciigraph.Plot(centerWindow(row, g/8),
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("central cross-section (%)"),
	)
	b.WriteString(graph + "\n")
	return b.String()
}

// YYbar renders the marginal/chief height table.
func YYbar(yy *analysis.YYbar) string {
	var b strings.Builder
	b.WriteString(Title.Render("y-ybar") + "\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "surface\tchief y\tmarginal y")
	for i := range yy.MarginalY {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n", i, yy.ChiefY[i], yy.MarginalY[i])
	}
	w.Flush()
	return b.String()
}

// centerWindow slices 2·half samples around the center of row.
func centerWindow(row []float64, half int) []float64 {
	mid := len(row) / 2
	lo := mid - half
	hi := mid + half
	if lo < 0 {
		lo = 0
	}
	if hi > len(row) {
		hi = len(row)
	}
	return row[lo:hi]
}
