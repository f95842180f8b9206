package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avierra/optray/internal/lens"
	"github.com/avierra/optray/internal/optic"
)

const (
	DefaultFocalLength = 100.0
	DefaultAperture    = 25.0
	DefaultMaxField    = 10.0
	DefaultNumRings    = 6
	DefaultEERays      = 10000
	DefaultNumPoints   = 128
	DefaultFanPoints   = 256
	DefaultGridPoints  = 10
	DefaultPSFRays     = 64
	DefaultPSFGrid     = 512
	DefaultThreshold   = 0.25
)

type Config struct {
	System   SystemConfig   `yaml:"system"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

type SystemConfig struct {
	FocalLength    float64           `yaml:"focal_length"`
	Aperture       float64           `yaml:"aperture"`
	ObjectDistance float64           `yaml:"object_distance"`
	MaxField       float64           `yaml:"max_field"`
	Fields         []FieldConfig     `yaml:"fields"`
	Wavelengths    []float64         `yaml:"wavelengths"`
	PrimaryIndex   int               `yaml:"primary_index"`
	Aberrations    AberrationConfig  `yaml:"aberrations"`
	Wavefront      WavefrontConfig   `yaml:"wavefront"`
	Seed           int64             `yaml:"seed"`
}

type FieldConfig struct {
	Hx float64 `yaml:"hx"`
	Hy float64 `yaml:"hy"`
}

type AberrationConfig struct {
	Defocus         float64 `yaml:"defocus"`
	Spherical       float64 `yaml:"spherical"`
	FieldCurvatureT float64 `yaml:"field_curvature_t"`
	FieldCurvatureS float64 `yaml:"field_curvature_s"`
	Distortion      float64 `yaml:"distortion"`
	Chromatic       float64 `yaml:"chromatic"`
	Apodization     float64 `yaml:"apodization"`
	VignetteRadius  float64 `yaml:"vignette_radius"`
}

type WavefrontConfig struct {
	Defocus        float64 `yaml:"defocus"`
	Spherical      float64 `yaml:"spherical"`
	FieldCurvature float64 `yaml:"field_curvature"`
}

type AnalysisConfig struct {
	NumRings       int     `yaml:"num_rings"`
	Distribution   string  `yaml:"distribution"`
	EERays         int     `yaml:"ee_rays"`
	NumPoints      int     `yaml:"num_points"`
	FanPoints      int     `yaml:"fan_points"`
	DistortionType string  `yaml:"distortion_model"`
	GridPoints     int     `yaml:"grid_points"`
	PSFRays        int     `yaml:"psf_rays"`
	PSFGrid        int     `yaml:"psf_grid"`
	PSFThreshold   float64 `yaml:"psf_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		System: SystemConfig{
			FocalLength: DefaultFocalLength,
			Aperture:    DefaultAperture,
			MaxField:    DefaultMaxField,
			Fields: []FieldConfig{
				{Hx: 0, Hy: 0},
				{Hx: 0, Hy: 0.7},
				{Hx: 0, Hy: 1},
			},
			Wavelengths:  []float64{0.4861, 0.5876, 0.6563},
			PrimaryIndex: 1,
		},
		Analysis: AnalysisConfig{
			NumRings:       DefaultNumRings,
			Distribution:   "hexapolar",
			EERays:         DefaultEERays,
			NumPoints:      DefaultNumPoints,
			FanPoints:      DefaultFanPoints,
			DistortionType: "f-tan",
			GridPoints:     DefaultGridPoints,
			PSFRays:        DefaultPSFRays,
			PSFGrid:        DefaultPSFGrid,
			PSFThreshold:   DefaultThreshold,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSystem constructs the thin-lens reference system the configuration
// describes.
func (c *Config) BuildSystem() (*lens.ThinLens, error) {
	s := c.System
	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("%w: no fields configured", optic.ErrInvalidConfig)
	}
	if len(s.Wavelengths) == 0 {
		return nil, fmt.Errorf("%w: no wavelengths configured", optic.ErrInvalidConfig)
	}

	fields := make([]optic.Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = optic.Field{Hx: f.Hx, Hy: f.Hy}
	}

	return lens.New(lens.Config{
		FocalLength:    s.FocalLength,
		Aperture:       s.Aperture,
		ObjectDistance: s.ObjectDistance,
		Seed:           s.Seed,
		Aberrations: lens.Aberrations{
			Defocus:         s.Aberrations.Defocus,
			Spherical:       s.Aberrations.Spherical,
			FieldCurvatureT: s.Aberrations.FieldCurvatureT,
			FieldCurvatureS: s.Aberrations.FieldCurvatureS,
			Distortion:      s.Aberrations.Distortion,
			Chromatic:       s.Aberrations.Chromatic,
			Apodization:     s.Aberrations.Apodization,
			VignetteRadius:  s.Aberrations.VignetteRadius,
		},
		Wavefront: lens.WavefrontCoeffs{
			Defocus:        s.Wavefront.Defocus,
			Spherical:      s.Wavefront.Spherical,
			FieldCurvature: s.Wavefront.FieldCurvature,
		},
	},
		optic.NewFieldSet(fields, s.MaxField),
		optic.NewWavelengthSet(s.Wavelengths, s.PrimaryIndex),
	)
}

// Distribution parses the configured pupil distribution.
func (c *Config) Distribution() (optic.Distribution, error) {
	return optic.ParseDistribution(c.Analysis.Distribution)
}
