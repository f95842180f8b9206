package config

import "sort"

// Presets are canned systems exercising different aberration regimes.
var Presets = map[string]*Config{
	"ideal": DefaultConfig(),
	"defocused": withAberrations(AberrationConfig{Defocus: 0.5},
		WavefrontConfig{Defocus: 1.0}),
	"spherical": withAberrations(AberrationConfig{Spherical: 0.05},
		WavefrontConfig{Spherical: 0.5}),
	"wide_angle": withAberrations(AberrationConfig{
		Distortion:      -0.08,
		FieldCurvatureT: -1.5,
		FieldCurvatureS: -0.5,
	}, WavefrontConfig{FieldCurvature: 0.75}),
	"chromatic": withAberrations(AberrationConfig{Chromatic: 0.02},
		WavefrontConfig{}),
	"apodized": withAberrations(AberrationConfig{Apodization: 1.0, VignetteRadius: 0.95},
		WavefrontConfig{}),
}

func withAberrations(ab AberrationConfig, wf WavefrontConfig) *Config {
	cfg := DefaultConfig()
	cfg.System.Aberrations = ab
	cfg.System.Wavefront = wf
	return cfg
}

// GetPreset returns the named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
