// Package config loads and validates the simulator settings from a JSON or
// YAML file, with environment-variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kestrelsolar/simulator/core/energy"
	"github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/infra/gmaps"
	"github.com/kestrelsolar/simulator/infra/openweather"
)

// Config aggregates every section of the simulator settings.
type Config struct {
	Race    RaceConfig           `json:"race"`
	Vehicle VehicleConfig        `json:"vehicle"`
	Maps    gmaps.Config         `json:"maps"`
	Weather openweather.Config   `json:"weather"`
	Metrics metrics.Config       `json:"metrics"`
	// CacheDir is where route and weather snapshots are stored.
	CacheDir string `json:"cache_dir"`
}

// VehicleConfig groups the physical constants of the car.
type VehicleConfig struct {
	Motor   energy.MotorConfig   `json:"motor"`
	Array   energy.ArrayConfig   `json:"array"`
	Battery energy.BatteryConfig `json:"battery"`
	// LVSPowerLossW is the constant auxiliary-systems drain in watts.
	LVSPowerLossW float64 `json:"lvs_power_loss_w"`
}

// Load reads the configuration file, applies SIM_ environment overrides,
// fills defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. SIM_WEATHER__API_KEY.
	if err := k.Load(env.Provider("SIM_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sim_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Race.SetDefaults()
	cfg.Vehicle.Motor.SetDefaults()
	cfg.Vehicle.Array.SetDefaults()
	cfg.Vehicle.Battery.SetDefaults()
	cfg.Metrics.SetDefaults()
	if cfg.CacheDir == "" {
		cfg.CacheDir = "data"
	}
	if err := cfg.Race.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Vehicle.Motor.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Vehicle.Array.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Vehicle.Battery.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
