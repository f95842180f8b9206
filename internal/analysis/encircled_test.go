package analysis

import (
	"context"
	"testing"

	"github.com/onsi/gomega"

	"github.com/avierra/optray/internal/lens"
)

func TestEncircledEnergyMonotone(t *testing.T) {
	g := gomega.NewWithT(t)
	sys := newSystem(t, lens.Aberrations{Defocus: 1, Spherical: 0.3})

	ee, err := NewEncircledEnergy(context.Background(), sys, EncircledOptions{NumRays: 2000})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	for fi, curve := range ee.Curves() {
		for j := 1; j < len(curve); j++ {
			g.Expect(curve[j]).To(gomega.BeNumerically(">=", curve[j-1]),
				"field %d: curve decreases at sample %d", fi, j)
		}
	}
}

func TestEncircledEnergySaturates(t *testing.T) {
	g := gomega.NewWithT(t)
	sys := newSystem(t, lens.Aberrations{Defocus: 1})

	ee, err := NewEncircledEnergy(context.Background(), sys, EncircledOptions{NumRays: 2000})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	// The radius axis extends 1.2x past the widest bundle, so the last
	// sample captures every ray.
	curves := ee.Curves()
	total := ee.TotalEnergy()
	for fi := range ee.Fields() {
		last := curves[fi][len(curves[fi])-1]
		g.Expect(last).To(gomega.BeNumerically("~", total[fi], 1e-9),
			"field %d: final curve value should equal total energy", fi)
	}
}

func TestEncircledEnergyAxis(t *testing.T) {
	g := gomega.NewWithT(t)
	sys := newSystem(t, lens.Aberrations{Defocus: 1})

	ee, err := NewEncircledEnergy(context.Background(), sys, EncircledOptions{
		NumRays:   1000,
		NumPoints: 64,
	})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	radii := ee.Radii()
	g.Expect(radii).To(gomega.HaveLen(64))
	g.Expect(radii[0]).To(gomega.BeZero())
	for j := 1; j < len(radii); j++ {
		g.Expect(radii[j]).To(gomega.BeNumerically(">", radii[j-1]))
	}
}

func TestEncircledEnergyVignetting(t *testing.T) {
	g := gomega.NewWithT(t)
	const rays = 2000

	clear := newSystem(t, lens.Aberrations{})
	eeClear, err := NewEncircledEnergy(context.Background(), clear, EncircledOptions{NumRays: rays})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	stopped := newSystem(t, lens.Aberrations{VignetteRadius: 0.7})
	eeStopped, err := NewEncircledEnergy(context.Background(), stopped, EncircledOptions{NumRays: rays})
	g.Expect(err).NotTo(gomega.HaveOccurred())

	// Without losses every ray carries unit energy.
	g.Expect(eeClear.TotalEnergy()[0]).To(gomega.BeNumerically("~", float64(rays), 1e-9))

	// The vignetted system transmits roughly the clear-aperture area
	// fraction of a uniform disk.
	ratio := eeStopped.TotalEnergy()[0] / eeClear.TotalEnergy()[0]
	g.Expect(ratio).To(gomega.BeNumerically("~", 0.49, 0.05))
}
