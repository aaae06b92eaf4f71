// Package energy holds the per-tick energy models of the vehicle: motor
// draw, solar array production, auxiliary-systems drain and the battery
// state-of-charge recursion.
package energy

import "fmt"

const gravity = 9.81 // m/s^2

// MotorConfig holds the physical constants of the drivetrain.
type MotorConfig struct {
	VehicleMassKg        float64 `json:"vehicle_mass_kg"`
	TireRadiusM          float64 `json:"tire_radius_m"`
	RoadFriction         float64 `json:"road_friction"` // rolling resistance coefficient
	AirDensity           float64 `json:"air_density"`   // kg/m^3
	FrontalAreaM2        float64 `json:"frontal_area_m2"`
	DragCoefficient      float64 `json:"drag_coefficient"`
	MotorEfficiency      float64 `json:"motor_efficiency"`
	ControllerEfficiency float64 `json:"controller_efficiency"`
}

// SetDefaults applies the reference vehicle constants.
func (c *MotorConfig) SetDefaults() {
	if c.VehicleMassKg == 0 {
		c.VehicleMassKg = 250
	}
	if c.TireRadiusM == 0 {
		c.TireRadiusM = 0.2032
	}
	if c.RoadFriction == 0 {
		c.RoadFriction = 0.0055
	}
	if c.AirDensity == 0 {
		c.AirDensity = 1.225
	}
	if c.FrontalAreaM2 == 0 {
		c.FrontalAreaM2 = 0.952
	}
	if c.DragCoefficient == 0 {
		c.DragCoefficient = 0.223
	}
	if c.MotorEfficiency == 0 {
		c.MotorEfficiency = 0.9
	}
	if c.ControllerEfficiency == 0 {
		c.ControllerEfficiency = 0.98
	}
}

// Validate checks that the constants are physically sound.
func (c MotorConfig) Validate() error {
	if c.VehicleMassKg <= 0 {
		return fmt.Errorf("vehicle mass must be positive")
	}
	if c.TireRadiusM <= 0 {
		return fmt.Errorf("tire radius must be positive")
	}
	if c.MotorEfficiency <= 0 || c.MotorEfficiency > 1 {
		return fmt.Errorf("motor efficiency must be in (0,1]")
	}
	if c.ControllerEfficiency <= 0 || c.ControllerEfficiency > 1 {
		return fmt.Errorf("controller efficiency must be in (0,1]")
	}
	return nil
}

// Motor computes the electrical input energy required to sustain a speed
// against rolling resistance, aerodynamic drag and road gradient.
type Motor struct {
	cfg           MotorConfig
	frictionForce float64
}

// NewMotor builds a Motor from validated constants.
func NewMotor(cfg MotorConfig) (*Motor, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("motor config: %w", err)
	}
	return &Motor{
		cfg:           cfg,
		frictionForce: cfg.VehicleMassKg * gravity * cfg.RoadFriction,
	}, nil
}

// EnergyIn returns the electrical input energy in joules drawn over each
// tick, for aligned arrays of speed (km/h), road gradient (rise/run) and
// directional wind speed (m/s, positive opposing travel). A zero speed draws
// exactly zero: the wheel does not turn. Downhill gradients may yield
// negative values (regenerative assistance); they are left unclamped since
// drag and rolling resistance can still dominate.
func (m *Motor) EnergyIn(speedsKmh, gradients, windSpeeds []float64, tick float64) []float64 {
	out := make([]float64, len(speedsKmh))
	for i, kmh := range speedsKmh {
		speedMs := kmh / 3.6
		angularSpeed := speedMs / m.cfg.TireRadiusM

		airspeed := speedMs + windSpeeds[i]
		dragForce := 0.5 * m.cfg.AirDensity * airspeed * airspeed *
			m.cfg.DragCoefficient * m.cfg.FrontalAreaM2
		gradeForce := m.cfg.VehicleMassKg * gravity * gradients[i]

		shaftEnergy := angularSpeed * (m.frictionForce + dragForce + gradeForce) * tick
		out[i] = shaftEnergy / m.cfg.MotorEfficiency / m.cfg.ControllerEfficiency
	}
	return out
}
