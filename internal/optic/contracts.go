package optic

import "context"

// Tracer is the ray-sampling contract the analyzers drive. Every call
// returns a fresh Result; implementations must not share mutable state
// between calls.
type Tracer interface {
	// Trace samples num rays (see Distribution.Points for the meaning of
	// num per distribution) across the pupil for one field and
	// wavelength and propagates them to the image surface.
	Trace(ctx context.Context, f Field, wavelength float64, num int, dist Distribution) (*Result, error)

	// TraceGeneric propagates rays with explicit per-ray field and pupil
	// coordinates. All four slices must have equal length.
	TraceGeneric(ctx context.Context, hx, hy, px, py []float64, wavelength float64) (*Result, error)
}

// WavefrontSampler exposes the wavefront engine: optical path difference
// (in waves) and relative amplitude at arbitrary normalized pupil samples.
type WavefrontSampler interface {
	Sample(f Field, wavelength float64, px, py []float64) (opd, amplitude []float64, err error)
}

// Paraxial provides first-order properties of the system.
type Paraxial interface {
	// EPD and XPD return entrance and exit pupil diameters.
	EPD() float64
	XPD() float64
	// FNO returns the working F-number.
	FNO() float64
	// Magnification returns the transverse magnification; zero for an
	// object at infinity.
	Magnification() float64
	// ObjectAtInfinity reports whether the object surface is at infinity.
	ObjectAtInfinity() bool
	// MarginalRay and ChiefRay return per-surface ray heights and angles.
	MarginalRay() (y, u []float64)
	ChiefRay() (y, u []float64)
}

// System bundles the external collaborators of the analysis engine.
type System interface {
	Tracer
	Paraxial() Paraxial
	Wavefront() WavefrontSampler
	Fields() *FieldSet
	Wavelengths() *WavelengthSet
}
