// Package lens provides a reference implementation of the [optic.System]
// contract: an ideal thin lens with configurable third-order aberration
// knobs.
//
// The model is deliberately simple, a single refracting surface with the
// stop at the lens, yet it reproduces every behavior the analyzers probe:
//
//   - defocus and third-order spherical spread the spot
//   - tangential/sagittal field-curvature coefficients shift the parabasal
//     foci with field
//   - a distortion coefficient bends the tan-mapping
//   - a chromatic coefficient separates wavelengths laterally and axially
//   - Gaussian apodization and a vignetting radius shape per-ray energy
//
// With all knobs at zero the system is a perfect point imager, which the
// test suites rely on.
package lens
