package metrics

import (
	"errors"

	coremetrics "github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/core/model"
)

// MultiSink fans every record out to all configured sinks.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink combines multiple sinks into one.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordRun forwards the record to every sink, joining any errors.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRun(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordSeries forwards the series to every sink, joining any errors.
func (m *MultiSink) RecordSeries(rec coremetrics.RunRecord, result *model.SimulationResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordSeries(rec, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
