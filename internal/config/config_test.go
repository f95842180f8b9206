package config

import (
	"path/filepath"
	"testing"

	"github.com/avierra/optray/internal/optic"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System.FocalLength != DefaultFocalLength {
		t.Errorf("focal length = %f, want %f", cfg.System.FocalLength, DefaultFocalLength)
	}
	if len(cfg.System.Fields) != 3 {
		t.Errorf("expected 3 default fields, got %d", len(cfg.System.Fields))
	}
	if len(cfg.System.Wavelengths) != 3 {
		t.Errorf("expected 3 default wavelengths, got %d", len(cfg.System.Wavelengths))
	}
	if cfg.System.PrimaryIndex != 1 {
		t.Errorf("primary index = %d, want 1", cfg.System.PrimaryIndex)
	}
	if cfg.Analysis.Distribution != "hexapolar" {
		t.Errorf("distribution = %q, want hexapolar", cfg.Analysis.Distribution)
	}
}

func TestBuildSystem(t *testing.T) {
	cfg := DefaultConfig()
	sys, err := cfg.BuildSystem()
	if err != nil {
		t.Fatalf("BuildSystem: %v", err)
	}
	if sys.Fields().NumFields() != 3 {
		t.Errorf("system has %d fields, want 3", sys.Fields().NumFields())
	}
	if sys.Wavelengths().Primary() != 0.5876 {
		t.Errorf("primary wavelength = %f, want 0.5876", sys.Wavelengths().Primary())
	}
}

func TestBuildSystemValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.System.Fields = nil
	if _, err := cfg.BuildSystem(); err == nil {
		t.Error("expected error for empty fields")
	}

	cfg = DefaultConfig()
	cfg.System.Wavelengths = nil
	if _, err := cfg.BuildSystem(); err == nil {
		t.Error("expected error for empty wavelengths")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optray.yaml")

	cfg := DefaultConfig()
	cfg.System.FocalLength = 75
	cfg.System.Aberrations.Defocus = 0.5
	cfg.Analysis.PSFGrid = 256
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.System.FocalLength != 75 {
		t.Errorf("focal length = %f, want 75", loaded.System.FocalLength)
	}
	if loaded.System.Aberrations.Defocus != 0.5 {
		t.Errorf("defocus = %f, want 0.5", loaded.System.Aberrations.Defocus)
	}
	if loaded.Analysis.PSFGrid != 256 {
		t.Errorf("psf grid = %d, want 256", loaded.Analysis.PSFGrid)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDistribution(t *testing.T) {
	cfg := DefaultConfig()
	d, err := cfg.Distribution()
	if err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if d != optic.Hexapolar {
		t.Errorf("distribution = %v, want hexapolar", d)
	}

	cfg.Analysis.Distribution = "spiral"
	if _, err := cfg.Distribution(); err == nil {
		t.Error("expected error for unknown distribution")
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("listed preset %q does not resolve", name)
		}
		if _, err := cfg.BuildSystem(); err != nil {
			t.Errorf("preset %q does not build: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}
