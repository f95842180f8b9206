// Package psf synthesizes diffraction point-spread functions from
// wavefront data.
//
// The pipeline is fixed: build a complex pupil function from sampled
// optical path difference and relative amplitude, zero-pad it to the
// requested grid, Fourier-transform, and normalize the resulting
// intensity against the diffraction-limited peak of an unapodized pupil
// of the same geometry. 100% therefore always means "as good as
// diffraction allows"; aberrated systems read below it.
//
//	p, err := psf.New(sys, field, wavelengths, psf.Options{})
//	fmt.Println(p.Peak()) // Strehl-like peak, percent
//
// Cropping ([FFTPSF.FindBounds]) and bicubic interpolation
// ([Interpolate], [FFTPSF.View]) exist for presentation only;
// quantitative metrics must come from the raw grid.
package psf
