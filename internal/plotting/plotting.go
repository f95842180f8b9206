// Package plotting renders analysis results to PNG files with
// gonum/plot. Every renderer takes the analyzer and an output path and
// owns figure styling; callers only decide what to draw.
package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/avierra/optray/internal/analysis"
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 6 * vg.Inch
)

// waveColors cycles across wavelength series. Indexing wraps, so any
// number of wavelengths renders.
var waveColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

func seriesColor(i int) color.RGBA { return waveColors[i%len(waveColors)] }

// Spot draws one scatter panel per field, wavelengths overlaid. Panels
// are written as separate files derived from path: "spot.png" becomes
// "spot_f0.png", "spot_f1.png" and so on.
func Spot(sd *analysis.SpotDiagram, path string) error {
	centered := sd.Centered()
	waves := sd.Wavelengths()

	for fi, f := range sd.Fields() {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Spot diagram, field (%.2f, %.2f)", f.Hx, f.Hy)
		p.X.Label.Text = "x (mm)"
		p.Y.Label.Text = "y (mm)"

		for wi, wave := range waves {
			pts := centered[fi][wi]
			xys := make(plotter.XYs, 0, len(pts.X))
			for i := range pts.X {
				xys = append(xys, plotter.XY{X: pts.X[i], Y: pts.Y[i]})
			}
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return err
			}
			s.GlyphStyle.Color = seriesColor(wi)
			s.GlyphStyle.Radius = vg.Points(1.5)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
			p.Legend.Add(fmt.Sprintf("%.4f µm", wave), s)
		}
		p.Legend.Top = true

		if err := p.Save(figWidth, figHeight, panelPath(path, fi)); err != nil {
			return err
		}
	}
	return nil
}

// Curves draws labelled line series over a shared x axis.
func Curves(path, title, xlabel, ylabel string, x []float64, labels []string, curves ...[]float64) error {
	if len(labels) != len(curves) {
		return fmt.Errorf("plotting: %d labels for %d curves", len(labels), len(curves))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	for ci, c := range curves {
		if len(c) != len(x) {
			return fmt.Errorf("plotting: curve %d length %d does not match axis length %d", ci, len(c), len(x))
		}
		xys := make(plotter.XYs, len(x))
		for i := range x {
			xys[i] = plotter.XY{X: x[i], Y: c[i]}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.LineStyle.Color = seriesColor(ci)
		line.LineStyle.Width = vg.Points(1.25)
		p.Add(line)
		p.Legend.Add(labels[ci], line)
	}
	p.Legend.Top = true

	return p.Save(figWidth, figHeight, path)
}

// Encircled draws the per-field encircled energy curves.
func Encircled(ee *analysis.EncircledEnergy, path string) error {
	labels := make([]string, len(ee.Fields()))
	for i, f := range ee.Fields() {
		labels[i] = fmt.Sprintf("field (%.2f, %.2f)", f.Hx, f.Hy)
	}
	return Curves(path, "Encircled energy", "radius (mm)", "fraction of energy",
		ee.Radii(), labels, ee.Curves()...)
}

// Distortion draws one curve per wavelength.
func Distortion(d *analysis.Distortion, path string) error {
	labels := make([]string, len(d.Wavelengths()))
	for i, wave := range d.Wavelengths() {
		labels[i] = fmt.Sprintf("%.4f µm", wave)
	}
	return Curves(path, "Distortion", "distortion (%)", "normalized field",
		d.FieldAxis(), labels, d.Curves()...)
}

// FieldCurvature draws tangential and sagittal offsets per wavelength.
func FieldCurvature(fc *analysis.FieldCurvature, path string) error {
	waves := fc.Wavelengths()
	labels := make([]string, 0, 2*len(waves))
	curves := make([][]float64, 0, 2*len(waves))
	for wi, wave := range waves {
		labels = append(labels,
			fmt.Sprintf("T %.4f µm", wave),
			fmt.Sprintf("S %.4f µm", wave))
		curves = append(curves, fc.Tangential()[wi], fc.Sagittal()[wi])
	}
	return Curves(path, "Field curvature", "image plane delta (mm)", "normalized field",
		fc.FieldAxis(), labels, curves...)
}

// RayFan draws the y fan of every field, one panel file per field.
func RayFan(rf *analysis.RayFan, path string) error {
	py := rf.PupilY()
	for fi, f := range rf.Fields() {
		labels := make([]string, len(rf.Wavelengths()))
		curves := make([][]float64, len(rf.Wavelengths()))
		for wi, wave := range rf.Wavelengths() {
			labels[wi] = fmt.Sprintf("%.4f µm", wave)
			curves[wi] = rf.Curve(fi, wi).EpsY
		}
		title := fmt.Sprintf("Ray fan, field (%.2f, %.2f)", f.Hx, f.Hy)
		if err := Curves(panelPath(path, fi), title, "Py", "εy (mm)", py, labels, curves...); err != nil {
			return err
		}
	}
	return nil
}

// GridDistortion overlays the real chief ray landings on the ideal
// grid.
func GridDistortion(gd *analysis.GridDistortion, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Grid distortion, max %.3f%%", gd.MaxDistortion())
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"

	xp, yp := gd.Ideal()
	xr, yr := gd.Real()

	ideal := make(plotter.XYs, 0, len(xp)*len(xp[0]))
	actual := make(plotter.XYs, 0, len(xr)*len(xr[0]))
	for i := range xp {
		for j := range xp[i] {
			ideal = append(ideal, plotter.XY{X: xp[i][j], Y: yp[i][j]})
			actual = append(actual, plotter.XY{X: xr[i][j], Y: yr[i][j]})
		}
	}

	is, err := plotter.NewScatter(ideal)
	if err != nil {
		return err
	}
	is.GlyphStyle.Color = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	is.GlyphStyle.Radius = vg.Points(1.5)
	is.GlyphStyle.Shape = draw.CrossGlyph{}

	rs, err := plotter.NewScatter(actual)
	if err != nil {
		return err
	}
	rs.GlyphStyle.Color = seriesColor(2)
	rs.GlyphStyle.Radius = vg.Points(2)
	rs.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(is, rs)
	p.Legend.Add("ideal", is)
	p.Legend.Add("real", rs)
	p.Legend.Top = true

	return p.Save(figWidth, figHeight, path)
}

// panelPath inserts a per-field suffix before the extension.
func panelPath(path string, field int) string {
	ext := ""
	base := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			base, ext = path[:i], path[i:]
			break
		}
		if path[i] == '/' {
			break
		}
	}
	return fmt.Sprintf("%s_f%d%s", base, field, ext)
}
