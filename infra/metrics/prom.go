package metrics

import (
	coremetrics "github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records simulation runs in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	computeTime *prometheus.HistogramVec
	distance    prometheus.Gauge
	finalSOC    prometheus.Gauge
}

// NewPromSink registers simulation metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simulation_runs_total",
		Help: "Total number of simulation runs",
	}, []string{"race_type"})
	computeTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simulation_compute_seconds",
		Help:    "Wall-clock time spent computing a run",
		Buckets: prometheus.DefBuckets,
	}, []string{"race_type"})
	distance := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_last_distance_km",
		Help: "Distance travelled in the most recent run",
	})
	finalSOC := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulation_last_final_soc_percent",
		Help: "Final battery state of charge of the most recent run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(computeTime); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			computeTime = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(distance); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			distance = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(finalSOC); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			finalSOC = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, computeTime: computeTime, distance: distance, finalSOC: finalSOC}, nil
}

// RecordRun updates the run counters and last-run gauges.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.runs.WithLabelValues(rec.RaceType).Inc()
	s.computeTime.WithLabelValues(rec.RaceType).Observe(rec.ComputeTime.Seconds())
	s.distance.Set(rec.DistanceKm)
	s.finalSOC.Set(rec.FinalSOCPercent)
	return nil
}

// RecordSeries is a no-op: Prometheus holds aggregates, not time series.
func (s *PromSink) RecordSeries(coremetrics.RunRecord, *model.SimulationResult) error {
	return nil
}
