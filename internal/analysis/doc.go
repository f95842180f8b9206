// Package analysis computes geometric image-quality diagnostics from
// traced ray bundles.
//
// The package provides one analyzer per diagnostic:
//
//   - [SpotDiagram]: image-plane spot patterns, centroids, geometric and
//     RMS spot radii
//   - [EncircledEnergy]: cumulative bundle energy versus radius
//   - [RayFan]: transverse ray aberration along 1-D pupil slices
//   - [Distortion] and [GridDistortion]: f-tan/f-theta mapping error
//   - [FieldCurvature]: tangential/sagittal image-surface offsets from
//     parabasal ray pairs
//   - [YYbar]: marginal versus chief ray heights per surface
//
// Each analyzer traces what it needs at construction and is immutable
// afterwards; read methods operate on deep copies and never disturb the
// stored bundles. Re-run an analysis by constructing a new analyzer.
//
// # Determinism
//
// Results are a pure function of the system state and the options. The
// (field, wavelength) traces run concurrently, but results keep
// fields-outer, wavelengths-inner order.
package analysis
