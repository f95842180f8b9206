package analysis

import "github.com/avierra/optray/internal/optic"

// YYbar pairs the marginal-ray height with the chief-ray height at every
// surface, the classic y-ybar diagram of first-order layout work.
type YYbar struct {
	MarginalY []float64
	ChiefY    []float64
}

// NewYYbar reads the paraxial ray data from the system.
func NewYYbar(sys optic.System) *YYbar {
	my, _ := sys.Paraxial().MarginalRay()
	cy, _ := sys.Paraxial().ChiefRay()
	return &YYbar{
		MarginalY: append([]float64(nil), my...),
		ChiefY:    append([]float64(nil), cy...),
	}
}
