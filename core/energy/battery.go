package energy

import "fmt"

// socEpsilon is the threshold under which SOC values are snapped to exactly
// zero, so motion gating never triggers on floating-point noise.
const socEpsilon = 1e-3

// BatteryConfig holds the pack constants.
type BatteryConfig struct {
	CapacityWh float64 `json:"capacity_wh"`
	InitialSOC float64 `json:"initial_soc"`
}

// SetDefaults applies the reference pack constants.
func (c *BatteryConfig) SetDefaults() {
	if c.CapacityWh == 0 {
		c.CapacityWh = 5000
	}
	if c.InitialSOC == 0 {
		c.InitialSOC = 1.0
	}
}

// Validate checks the pack constants.
func (c BatteryConfig) Validate() error {
	if c.CapacityWh <= 0 {
		return fmt.Errorf("battery capacity must be positive")
	}
	if c.InitialSOC < 0 || c.InitialSOC > 1 {
		return fmt.Errorf("initial SOC must be in [0,1]")
	}
	return nil
}

// Battery maps cumulative net-energy deltas to a state-of-charge series.
type Battery struct {
	cfg       BatteryConfig
	capacityJ float64
}

// NewBattery builds a Battery from validated constants.
func NewBattery(cfg BatteryConfig) (*Battery, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("battery config: %w", err)
	}
	return &Battery{cfg: cfg, capacityJ: cfg.CapacityWh * 3600}, nil
}

// InitialSOC returns the configured starting state of charge.
func (b *Battery) InitialSOC() float64 { return b.cfg.InitialSOC }

// UpdateArray returns one SOC value per cumulative net-energy sample (in
// joules, relative to the initial charge). SOC clamps to [0,1]: it cannot go
// negative, and charge beyond capacity saturates at 1 (excess array
// production is shed, not banked). Values within socEpsilon of zero are
// snapped to exactly 0. SOC is not a one-way terminal state: a depleted pack
// recovers as soon as the cumulative delta turns positive again.
func (b *Battery) UpdateArray(cumulativeDeltaEnergy []float64) []float64 {
	soc := make([]float64, len(cumulativeDeltaEnergy))
	for i, delta := range cumulativeDeltaEnergy {
		s := b.cfg.InitialSOC + delta/b.capacityJ
		if s < 0 {
			s = 0
		}
		if s > 1 {
			s = 1
		}
		if s < socEpsilon {
			s = 0
		}
		soc[i] = s
	}
	return soc
}
