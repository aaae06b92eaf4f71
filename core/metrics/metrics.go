// Package metrics defines the observability contract of the simulator:
// sinks record completed runs and their time series for analysis.
package metrics

import (
	"time"

	"github.com/kestrelsolar/simulator/core/model"
)

// RunRecord summarizes one completed simulation run.
type RunRecord struct {
	RunID           string
	RaceType        string
	DistanceKm      float64
	RouteLengthKm   float64
	FinalSOCPercent float64
	TimeTaken       time.Duration // simulated time in motion
	ComputeTime     time.Duration // wall-clock time spent computing the run
	StartedAt       time.Time
}

// Sink records simulation outcomes for observability purposes.
type Sink interface {
	// RecordRun records the scalar aggregates of a completed run.
	RecordRun(rec RunRecord) error
	// RecordSeries records the per-tick time series of a completed run.
	// Sinks without series storage may ignore it.
	RecordSeries(rec RunRecord, result *model.SimulationResult) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error                             { return nil }
func (NopSink) RecordSeries(RunRecord, *model.SimulationResult) error { return nil }
