package lens

import "math"

// paraxialView adapts a ThinLens to the [optic.Paraxial] contract. The
// stop sits at the lens, so entrance and exit pupils coincide with the
// aperture.
type paraxialView struct {
	tl *ThinLens
}

func (p paraxialView) EPD() float64 { return p.tl.aperture }

func (p paraxialView) XPD() float64 { return p.tl.aperture }

func (p paraxialView) FNO() float64 { return p.tl.focal / p.tl.aperture }

func (p paraxialView) ObjectAtInfinity() bool { return p.tl.objDist <= 0 }

func (p paraxialView) Magnification() float64 {
	if p.tl.objDist <= 0 {
		return 0
	}
	return -p.tl.imgDist / p.tl.objDist
}

// MarginalRay returns heights and angles of the axial marginal ray at the
// object, lens and image surfaces.
func (p paraxialView) MarginalRay() (y, u []float64) {
	h := p.tl.aperture / 2
	uIn := 0.0
	if p.tl.objDist > 0 {
		uIn = h / p.tl.objDist
	}
	uOut := -h / p.tl.imgDist
	return []float64{0, h, 0}, []float64{uIn, uOut, uOut}
}

// ChiefRay returns heights and angles of the full-field chief ray. The
// chief ray passes through the stop center, so its lens height is zero.
func (p paraxialView) ChiefRay() (y, u []float64) {
	ubar := math.Tan(p.tl.fields.MaxFieldRad())
	yObj := 0.0
	if p.tl.objDist > 0 {
		yObj = -p.tl.objDist * ubar
	}
	yImg := -p.tl.imgDist * ubar
	return []float64{yObj, 0, yImg}, []float64{ubar, ubar, ubar}
}
