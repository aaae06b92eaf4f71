package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrelsolar/simulator/infra/openweather"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalJSON = `{
  "race": {
    "type": "FSGP",
    "origin": {"lat": 38.9517, "lon": -92.3341},
    "dest": {"lat": 38.9211, "lon": -92.2963}
  },
  "maps": {"api_key": "maps-key"},
  "weather": {"api_key": "weather-key"}
}`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", minimalJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Race.WeatherFrequency != openweather.FrequencyDaily {
		t.Errorf("expected daily weather frequency, got %q", cfg.Race.WeatherFrequency)
	}
	if cfg.Race.WeatherStride != 3 {
		t.Errorf("expected track-race stride 3, got %d", cfg.Race.WeatherStride)
	}
	if cfg.Race.Laps != 60 {
		t.Errorf("expected 60 laps for a track race, got %d", cfg.Race.Laps)
	}
	if cfg.Race.Sim.TickSeconds != 1 || cfg.Race.Sim.DriveEndHour != 18 {
		t.Errorf("sim defaults not applied: %+v", cfg.Race.Sim)
	}
	if cfg.Vehicle.Motor.VehicleMassKg != 250 {
		t.Errorf("expected default vehicle mass 250, got %.0f", cfg.Vehicle.Motor.VehicleMassKg)
	}
	if cfg.Vehicle.Battery.CapacityWh != 5000 {
		t.Errorf("expected default battery capacity 5000Wh, got %.0f", cfg.Vehicle.Battery.CapacityWh)
	}
	if cfg.CacheDir != "data" {
		t.Errorf("expected default cache dir, got %q", cfg.CacheDir)
	}
}

func TestLoadRoadRaceStride(t *testing.T) {
	content := `{
  "race": {
    "type": "ASC",
    "origin": {"lat": 38.9, "lon": -92.3},
    "dest": {"lat": 35.1, "lon": -106.6}
  }
}`
	cfg, err := Load(writeConfig(t, "config.json", content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Race.WeatherStride != 625 {
		t.Errorf("expected road-race stride 625, got %d", cfg.Race.WeatherStride)
	}
	if cfg.Race.Laps != 0 {
		t.Errorf("road races have no laps, got %d", cfg.Race.Laps)
	}
}

func TestLoadYAML(t *testing.T) {
	content := `
race:
  type: ASC
  origin: {lat: 38.9, lon: -92.3}
  dest: {lat: 35.1, lon: -106.6}
  weather_frequency: hourly
cache_dir: /tmp/sim-cache
`
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Race.WeatherFrequency != openweather.FrequencyHourly {
		t.Errorf("expected hourly frequency, got %q", cfg.Race.WeatherFrequency)
	}
	if cfg.CacheDir != "/tmp/sim-cache" {
		t.Errorf("expected explicit cache dir, got %q", cfg.CacheDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SIM_CACHE_DIR", "/tmp/override")
	cfg, err := Load(writeConfig(t, "config.json", minimalJSON))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CacheDir != "/tmp/override" {
		t.Errorf("expected env override, got %q", cfg.CacheDir)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.toml", "x = 1")); err == nil {
		t.Errorf("expected error for unsupported format")
	}
}

func TestLoadRejectsBadRaceType(t *testing.T) {
	content := `{"race": {"type": "WSC"}}`
	if _, err := Load(writeConfig(t, "config.json", content)); err == nil {
		t.Errorf("expected error for unrecognized race type")
	}
}

func TestRaceConfigValidate(t *testing.T) {
	cfg := RaceConfig{Type: RaceASC}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := cfg
	bad.WeatherFrequency = "weekly"
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for invalid frequency")
	}

	bad = cfg
	bad.ReferenceDate = "04-08-2021"
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for malformed reference date")
	}

	if got := cfg.ReferenceTime().Format("2006-01-02"); got != cfg.ReferenceDate {
		t.Errorf("reference time %s does not match date %s", got, cfg.ReferenceDate)
	}
}
