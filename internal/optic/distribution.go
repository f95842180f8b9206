package optic

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Distribution selects the 2-D pupil sampling pattern of a traced ray
// bundle. It is a closed enumeration shared by the analyzers and the
// tracer; string names exist only at the configuration boundary.
type Distribution int

const (
	// Hexapolar samples concentric hexagonal rings. The ray count
	// parameter is interpreted as the number of rings.
	Hexapolar Distribution = iota
	// Random samples points uniformly over the unit disk.
	Random
	// Uniform samples a square grid over [-1,1]² masked to the unit
	// disk. The ray count parameter is the grid side.
	Uniform
	// LineX samples a 1-D slice along Px with Py = 0.
	LineX
	// LineY samples a 1-D slice along Py with Px = 0.
	LineY
)

var distributionNames = map[Distribution]string{
	Hexapolar: "hexapolar",
	Random:    "random",
	Uniform:   "uniform",
	LineX:     "line_x",
	LineY:     "line_y",
}

func (d Distribution) String() string {
	if name, ok := distributionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("distribution(%d)", int(d))
}

// ParseDistribution maps a configuration name onto the enumeration.
func ParseDistribution(name string) (Distribution, error) {
	for d, n := range distributionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown distribution %q", ErrInvalidConfig, name)
}

// Points generates normalized pupil coordinates for the distribution.
// num means rings for Hexapolar, grid side for Uniform and point count
// otherwise. rng is used only by Random; a nil rng falls back to a fixed
// seed so traces stay reproducible.
func (d Distribution) Points(num int, rng *rand.Rand) (px, py []float64) {
	switch d {
	case Hexapolar:
		return hexapolarPoints(num)
	case Random:
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		px = make([]float64, num)
		py = make([]float64, num)
		for i := 0; i < num; i++ {
			r := math.Sqrt(rng.Float64())
			theta := 2 * math.Pi * rng.Float64()
			px[i] = r * math.Cos(theta)
			py[i] = r * math.Sin(theta)
		}
		return px, py
	case Uniform:
		return uniformDiskPoints(num)
	case LineX:
		px = floats.Span(make([]float64, num), -1, 1)
		py = make([]float64, num)
		return px, py
	case LineY:
		px = make([]float64, num)
		py = floats.Span(make([]float64, num), -1, 1)
		return px, py
	}
	return nil, nil
}

// hexapolarPoints builds a center ray plus rings of 6k points at radius
// k/rings, the classic hexapolar aperture sampling.
func hexapolarPoints(rings int) (px, py []float64) {
	if rings < 1 {
		rings = 1
	}
	n := 1
	for k := 1; k <= rings; k++ {
		n += 6 * k
	}
	px = make([]float64, 0, n)
	py = make([]float64, 0, n)
	px = append(px, 0)
	py = append(py, 0)
	for k := 1; k <= rings; k++ {
		r := float64(k) / float64(rings)
		for j := 0; j < 6*k; j++ {
			theta := 2 * math.Pi * float64(j) / float64(6*k)
			px = append(px, r*math.Cos(theta))
			py = append(py, r*math.Sin(theta))
		}
	}
	return px, py
}

// uniformDiskPoints builds a side×side grid over [-1,1]² and keeps the
// samples inside the unit disk.
func uniformDiskPoints(side int) (px, py []float64) {
	if side < 2 {
		side = 2
	}
	axis := floats.Span(make([]float64, side), -1, 1)
	px = make([]float64, 0, side*side)
	py = make([]float64, 0, side*side)
	for _, y := range axis {
		for _, x := range axis {
			if math.Hypot(x, y) <= 1 {
				px = append(px, x)
				py = append(py, y)
			}
		}
	}
	return px, py
}
