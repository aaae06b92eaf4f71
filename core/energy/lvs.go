package energy

// LVS models the low-voltage auxiliary systems as a constant power drain,
// independent of speed.
type LVS struct {
	powerLossW float64
}

// NewLVS builds an LVS drain with the given constant power loss in watts.
func NewLVS(powerLossW float64) *LVS {
	return &LVS{powerLossW: powerLossW}
}

// ConsumedEnergy returns the energy in joules drained over one tick.
func (l *LVS) ConsumedEnergy(tick float64) float64 {
	return l.powerLossW * tick
}
