package analysis

import (
	"context"
	"sync"

	"github.com/avierra/optray/internal/optic"
)

// forEachPair runs fn once per (field, wavelength) pair, each on its own
// goroutine. fn writes its result into position fi*len(waves)+wi of
// whatever slice the caller owns, so output ordering is fields outer,
// wavelengths inner regardless of scheduling. The first error wins.
func forEachPair(ctx context.Context, fields []optic.Field, waves []float64,
	fn func(ctx context.Context, fi, wi int) error) error {

	errs := make([]error, len(fields)*len(waves))

	var wg sync.WaitGroup
	for i := range fields {
		for j := range waves {
			wg.Add(1)
			go func(fi, wi int) {
				defer wg.Done()
				errs[fi*len(waves)+wi] = fn(ctx, fi, wi)
			}(i, j)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// primaryIndex locates the system's primary wavelength in an explicit
// wavelength selection, falling back to the first entry when the
// selection omits it.
func primaryIndex(waves []float64, sys optic.System) int {
	primary := sys.Wavelengths().Primary()
	for i, w := range waves {
		if w == primary {
			return i
		}
	}
	return 0
}

// resolveFields defaults to all configured fields.
func resolveFields(fields []optic.Field, sys optic.System) []optic.Field {
	if len(fields) == 0 {
		return sys.Fields().Coords()
	}
	out := make([]optic.Field, len(fields))
	copy(out, fields)
	return out
}

// resolveWavelengths defaults to all configured wavelengths.
func resolveWavelengths(waves []float64, sys optic.System) []float64 {
	if len(waves) == 0 {
		return sys.Wavelengths().Values()
	}
	out := make([]float64, len(waves))
	copy(out, waves)
	return out
}
