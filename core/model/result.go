package model

import (
	"time"

	"github.com/google/uuid"
)

// SimulationResult is the immutable outcome of one simulation run. All
// per-tick series share the tick-grid length and are not mutated after the
// run that produced them.
type SimulationResult struct {
	RunID     string    // unique identifier of the run
	StartedAt time.Time // wall-clock time the run started

	// Per-tick series, one entry per tick-grid timestamp.
	Timestamps  []float64 // seconds since simulation start
	SpeedKmh    []float64 // effective speed after all gating
	DistanceKm  []float64 // cumulative distance, clamped to route length
	SOC         []float64 // battery state of charge [0,1]
	DeltaEnergy []float64 // net energy added to the battery per tick (J)
	Irradiance  []float64 // solar irradiance (W/m^2)
	WindSpeed   []float64 // directional wind speed along heading (m/s)
	Elevation   []float64 // route elevation at the vehicle position (m)
	CloudCover  []float64 // percent, 0-100

	// Scalar aggregates.
	DistanceTravelledKm float64       // final cumulative distance
	TimeTaken           time.Duration // total time in motion
	FinalSOCPercent     float64       // last SOC value x 100
	RouteLengthKm       float64       // total length of the planned route
}

// NewRunID returns a fresh simulation run identifier.
func NewRunID() string { return uuid.NewString() }
