package sim

import "fmt"

// Config holds the timing and scheduling parameters of a simulated race day.
type Config struct {
	// TickSeconds is the length of one discrete simulation step.
	TickSeconds float64 `json:"tick"`
	// DurationSeconds is the total simulated time.
	DurationSeconds float64 `json:"simulation_duration"`
	// StartHour is the local hour of day at which the simulation starts.
	StartHour int `json:"start_hour"`
	// DriveStartHour and DriveEndHour bound the daily driving window:
	// driving is allowed when startHour <= hour < endHour. Outside the
	// window the vehicle must stop and charge. A window of [0,24) disables
	// the curfew entirely.
	DriveStartHour int `json:"drive_start_hour"`
	DriveEndHour   int `json:"drive_end_hour"`
}

// SetDefaults applies the standard road-race schedule: 9am start, driving
// from 9am to 6pm.
func (c *Config) SetDefaults() {
	if c.TickSeconds == 0 {
		c.TickSeconds = 1
	}
	if c.DurationSeconds == 0 {
		c.DurationSeconds = 9 * 3600
	}
	if c.StartHour == 0 {
		c.StartHour = 9
	}
	if c.DriveStartHour == 0 && c.DriveEndHour == 0 {
		c.DriveStartHour = 9
		c.DriveEndHour = 18
	}
}

// Validate checks the timing parameters.
func (c Config) Validate() error {
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick must be positive")
	}
	if c.DurationSeconds <= 0 {
		return fmt.Errorf("simulation duration must be positive")
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("start hour must be in [0,23]")
	}
	if c.DriveStartHour < 0 || c.DriveEndHour > 24 || c.DriveStartHour >= c.DriveEndHour {
		return fmt.Errorf("driving window [%d,%d) is invalid", c.DriveStartHour, c.DriveEndHour)
	}
	return nil
}
