// Package optic defines the shared vocabulary of the analysis engine.
//
// The package holds the contracts the analyzers consume:
//
//   - [Tracer]: per-call ray tracing returning a [Result] record
//   - [WavefrontSampler]: optical path difference and relative amplitude
//     over arbitrary pupil samples
//   - [Paraxial]: first-order system properties (pupils, F-number,
//     magnification, marginal/chief rays)
//   - [System]: a complete optical system bundling the above with its
//     field and wavelength registries
//
// Implementations live in [github.com/avierra/optray/internal/lens]; the
// analyzers in internal/analysis and internal/psf depend only on this
// package.
//
// # Error Taxonomy
//
// Analyzer construction fails with one of the Err* sentinel values wrapped
// in an [AnalysisError]:
//
//	spot, err := analysis.NewSpotDiagram(ctx, sys, opts)
//	if errors.Is(err, optic.ErrTraceFailure) {
//	    // bundle fully vignetted for some field/wavelength
//	}
package optic
