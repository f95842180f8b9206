package optic

import "math"

// Result is the per-call record of a traced ray bundle at the image
// surface: positions, direction cosines and transmitted energy, one entry
// per ray. A Result is returned directly by the tracer and owned by the
// caller; the tracer keeps no last-trace state.
type Result struct {
	X, Y, Z []float64
	L, M, N []float64
	Energy  []float64
}

// Len returns the number of rays in the record.
func (r *Result) Len() int { return len(r.X) }

// ValidRays counts rays with finite, non-zero transmitted energy.
func (r *Result) ValidRays() int {
	n := 0
	for _, e := range r.Energy {
		if !math.IsNaN(e) && e > 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the record.
func (r *Result) Clone() *Result {
	c := &Result{}
	c.X = append([]float64(nil), r.X...)
	c.Y = append([]float64(nil), r.Y...)
	c.Z = append([]float64(nil), r.Z...)
	c.L = append([]float64(nil), r.L...)
	c.M = append([]float64(nil), r.M...)
	c.N = append([]float64(nil), r.N...)
	c.Energy = append([]float64(nil), r.Energy...)
	return c
}
