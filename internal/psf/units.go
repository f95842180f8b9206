package psf

import "math"

// PhysicalExtent converts a rows×cols pixel window into physical image
// lengths. The pixel pitch follows dx = λ·F#/Q with Q the padding ratio
// grid/numRays; for finite conjugates the working F-number picks up the
// magnification term (1 + |m|/p) with p the pupil ratio XPD/EPD.
// Lengths come out in micrometers when wavelengths are micrometers.
func (p *FFTPSF) PhysicalExtent(rows, cols int) (x, y float64) {
	par := p.sys.Paraxial()

	fno := par.FNO()
	if !par.ObjectAtInfinity() {
		pupilRatio := par.XPD() / par.EPD()
		m := par.Magnification()
		fno *= 1 + math.Abs(m)/pupilRatio
	}

	q := float64(p.gridSize) / float64(p.numRays)
	dx := p.waves[0] * fno / q

	return float64(cols) * dx, float64(rows) * dx
}
