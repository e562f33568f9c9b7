package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if !cfg.Sensors.Accelerometer || !cfg.Sensors.Battery {
		t.Fatal("defaults should enable all sensors")
	}
	if cfg.Defaults.SamplingRateHz != DefaultSamplingHz {
		t.Fatalf("expected default rate %v, got %v", DefaultSamplingHz, cfg.Defaults.SamplingRateHz)
	}
}

func TestLoad_ParsesAndFillsOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bioscope.yaml")
	data := `
device:
  name: BioScope-01
sensors:
  accelerometer: false
  magnetometer: false
defaults:
  time_window_seconds: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Device.Name != "BioScope-01" {
		t.Fatalf("device name not parsed: %q", cfg.Device.Name)
	}
	if cfg.Sensors.Accelerometer || cfg.Sensors.Magnetometer {
		t.Fatal("explicitly disabled sensors must stay off")
	}
	if !cfg.Sensors.Gyroscope {
		t.Fatal("sensors not named in the file keep their default")
	}
	if cfg.Defaults.TimeWindowSeconds != 30 {
		t.Fatalf("expected window 30, got %v", cfg.Defaults.TimeWindowSeconds)
	}
	// omitted values fall back
	if cfg.Defaults.SamplingRateHz != DefaultSamplingHz {
		t.Fatalf("omitted rate should default, got %v", cfg.Defaults.SamplingRateHz)
	}
	if cfg.Defaults.LabelInterval != DefaultLabelInterval {
		t.Fatalf("omitted label interval should default, got %v", cfg.Defaults.LabelInterval)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("defaults: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
