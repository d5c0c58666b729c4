// Package config reads athlete and export settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tpuiseux/claude-coach/plan"
)

// Config is the TOML configuration file shape.
type Config struct {
	Athlete AthleteConfig `toml:"athlete"`
	Export  ExportConfig  `toml:"export"`
}

// AthleteConfig holds the threshold values encoders need to produce absolute
// watts and BPM.
type AthleteConfig struct {
	FTPWatts       float64 `toml:"ftp_watts"`
	ThresholdHRBPM float64 `toml:"threshold_hr_bpm"`
}

// ExportConfig holds export-layer tunables.
type ExportConfig struct {
	// SpeedKPH overrides the assumed average speed used to put
	// distance-based steps on a time axis.
	SpeedKPH float64 `toml:"speed_kph"`
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "coach", "config.toml"), nil
}

// Load reads a TOML config from the given path, or from the default location
// when path is empty. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Settings converts the file values into the explicit settings passed to
// every encoder call.
func (c Config) Settings() plan.Settings {
	return plan.Settings{
		FTPWatts:       c.Athlete.FTPWatts,
		ThresholdHRBPM: c.Athlete.ThresholdHRBPM,
		SpeedKPH:       c.Export.SpeedKPH,
	}
}
