package config

import (
	"fmt"
	"time"

	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/core/sim"
	"github.com/kestrelsolar/simulator/infra/openweather"
)

// Race formats supported by the simulator. ASC is a multi-day road race
// between cities; FSGP repeats laps of a closed track.
const (
	RaceASC  = "ASC"
	RaceFSGP = "FSGP"
)

// RaceConfig describes the race being simulated: route endpoints, schedule
// and weather resolution.
type RaceConfig struct {
	Type string `json:"type"`

	Origin    model.Coord   `json:"origin"`
	Dest      model.Coord   `json:"dest"`
	Waypoints []model.Coord `json:"waypoints"`

	Sim sim.Config `json:"sim"`

	// WeatherFrequency selects the forecast horizon class requested from
	// the weather provider ("current", "hourly" or "daily").
	WeatherFrequency string `json:"weather_frequency"`
	// WeatherStride subsamples the route before querying weather: one
	// forecast per stride route coordinates.
	WeatherStride int `json:"weather_stride"`
	// Laps tiles a closed-circuit route this many times (FSGP only).
	Laps int `json:"laps"`
	// ReferenceDate (YYYY-MM-DD) pins time-zone offsets, typically the
	// race start date.
	ReferenceDate string `json:"reference_date"`
}

// SetDefaults applies per-race-type defaults. The weather stride defaults
// derive from the providers' resolutions: route points are roughly 40m
// apart and usable weather resolution is about 25km, giving 625:1 for road
// races; track races use a much denser 3:1.
func (c *RaceConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = RaceASC
	}
	c.Sim.SetDefaults()
	if c.WeatherFrequency == "" {
		c.WeatherFrequency = openweather.FrequencyDaily
	}
	if c.WeatherStride == 0 {
		if c.Type == RaceFSGP {
			c.WeatherStride = 3
		} else {
			c.WeatherStride = 625
		}
	}
	if c.Laps == 0 && c.Type == RaceFSGP {
		c.Laps = 60
	}
	if c.ReferenceDate == "" {
		c.ReferenceDate = "2021-08-04"
	}
}

// Validate checks the race parameters, failing fast on unrecognized race
// types or weather frequencies.
func (c RaceConfig) Validate() error {
	if c.Type != RaceASC && c.Type != RaceFSGP {
		return fmt.Errorf("unrecognized race type %q", c.Type)
	}
	if err := openweather.ValidateFrequency(c.WeatherFrequency); err != nil {
		return err
	}
	if c.WeatherStride < 1 {
		return fmt.Errorf("weather stride must be at least 1")
	}
	if _, err := time.Parse("2006-01-02", c.ReferenceDate); err != nil {
		return fmt.Errorf("reference date: %w", err)
	}
	return c.Sim.Validate()
}

// ReferenceTime returns the parsed reference date.
func (c RaceConfig) ReferenceTime() time.Time {
	t, _ := time.Parse("2006-01-02", c.ReferenceDate)
	return t
}
