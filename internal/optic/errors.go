package optic

import (
	"errors"
	"fmt"
)

// Domain errors for analysis operations.
var (
	// ErrInvalidConfig indicates an unsupported distribution, projection
	// model or parameter detected at analyzer construction.
	ErrInvalidConfig = errors.New("optic: invalid analysis configuration")

	// ErrDegenerateGeometry indicates a numerically singular ray
	// configuration (near-parallel parabasal rays, near-zero reference
	// image height).
	ErrDegenerateGeometry = errors.New("optic: degenerate ray geometry")

	// ErrEmptyResult indicates a reduction produced no usable samples,
	// e.g. no PSF sample above the crop threshold.
	ErrEmptyResult = errors.New("optic: no samples above threshold")

	// ErrTraceFailure indicates the tracer returned a fully vignetted
	// bundle for a requested field/wavelength.
	ErrTraceFailure = errors.New("optic: ray bundle fully vignetted")
)

// AnalysisError wraps a domain error with the analysis pass and the
// field/wavelength pair that produced it.
type AnalysisError struct {
	Analysis   string
	Field      Field
	Wavelength float64
	Wrapped    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s (Hx=%.3f, Hy=%.3f, %.4f µm): %v",
		e.Analysis, e.Field.Hx, e.Field.Hy, e.Wavelength, e.Wrapped)
}

func (e *AnalysisError) Unwrap() error {
	return e.Wrapped
}
