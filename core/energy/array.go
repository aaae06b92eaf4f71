package energy

import "fmt"

// ArrayConfig holds the calibrated constants of the solar array.
type ArrayConfig struct {
	AreaM2     float64 `json:"area_m2"`
	Efficiency float64 `json:"efficiency"`
}

// SetDefaults applies the reference array constants.
func (c *ArrayConfig) SetDefaults() {
	if c.AreaM2 == 0 {
		c.AreaM2 = 6.0
	}
	if c.Efficiency == 0 {
		c.Efficiency = 0.2
	}
}

// Validate checks the array constants.
func (c ArrayConfig) Validate() error {
	if c.AreaM2 <= 0 {
		return fmt.Errorf("array area must be positive")
	}
	if c.Efficiency <= 0 || c.Efficiency > 1 {
		return fmt.Errorf("array efficiency must be in (0,1]")
	}
	return nil
}

// Array converts incident irradiance into produced electrical energy.
type Array struct {
	cfg ArrayConfig
}

// NewArray builds an Array from validated constants.
func NewArray(cfg ArrayConfig) (*Array, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("array config: %w", err)
	}
	return &Array{cfg: cfg}, nil
}

// ProducedEnergy returns the energy in joules produced over each tick for a
// series of irradiance values in W/m^2.
func (a *Array) ProducedEnergy(irradiances []float64, tick float64) []float64 {
	out := make([]float64, len(irradiances))
	for i, irr := range irradiances {
		out[i] = irr * a.cfg.AreaM2 * a.cfg.Efficiency * tick
	}
	return out
}
