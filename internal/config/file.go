package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceConfig selects the wearable to connect to.
type DeviceConfig struct {
	Name    string `yaml:"name"`    // advertised local name, e.g. "BioScope-01"
	Address string `yaml:"address"` // MAC / UUID; takes precedence over Name when set
}

// SensorConfig holds the per-sensor enable flags. Only channels of
// enabled sensors get a stream buffer; frames still carry all values
// and the extra ones are dropped on append.
type SensorConfig struct {
	Accelerometer bool `yaml:"accelerometer"`
	Gyroscope     bool `yaml:"gyroscope"`
	Magnetometer  bool `yaml:"magnetometer"`
	Temperature   bool `yaml:"temperature"`
	Battery       bool `yaml:"battery"`
}

// DefaultsConfig seeds the editable fields at session start.
type DefaultsConfig struct {
	TimeWindowSeconds float64 `yaml:"time_window_seconds"`
	SamplingRateHz    float64 `yaml:"sampling_rate_hz"`
	LabelInterval     int     `yaml:"label_interval"`
}

// File is the on-disk YAML configuration.
type File struct {
	Device   DeviceConfig   `yaml:"device"`
	Sensors  SensorConfig   `yaml:"sensors"`
	Defaults DefaultsConfig `yaml:"defaults"`
	LogFile  string         `yaml:"log_file"`
}

// Default returns the configuration used when no file is present:
// all sensors enabled, field defaults from the constants above.
func Default() *File {
	return &File{
		Sensors: SensorConfig{
			Accelerometer: true,
			Gyroscope:     true,
			Magnetometer:  true,
			Temperature:   true,
			Battery:       true,
		},
		Defaults: DefaultsConfig{
			TimeWindowSeconds: DefaultWindowSec,
			SamplingRateHz:    DefaultSamplingHz,
			LabelInterval:     DefaultLabelInterval,
		},
	}
}

// Load reads a YAML config file, filling omitted defaults. A missing
// file is not an error; Default() is returned instead.
func Load(path string) (*File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Defaults.TimeWindowSeconds <= 0 {
		cfg.Defaults.TimeWindowSeconds = DefaultWindowSec
	}
	if cfg.Defaults.SamplingRateHz <= 0 {
		cfg.Defaults.SamplingRateHz = DefaultSamplingHz
	}
	if cfg.Defaults.LabelInterval <= 0 {
		cfg.Defaults.LabelInterval = DefaultLabelInterval
	}
	return cfg, nil
}
