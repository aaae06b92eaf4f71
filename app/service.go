// Package app assembles the simulator from its configuration: providers,
// models, engine and metrics sinks.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelsolar/simulator/config"
	"github.com/kestrelsolar/simulator/core/energy"
	coremetrics "github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/core/optimize"
	"github.com/kestrelsolar/simulator/core/route"
	"github.com/kestrelsolar/simulator/core/sim"
	"github.com/kestrelsolar/simulator/core/weather"
	"github.com/kestrelsolar/simulator/infra/cache"
	"github.com/kestrelsolar/simulator/infra/gmaps"
	"github.com/kestrelsolar/simulator/infra/logger"
	"github.com/kestrelsolar/simulator/infra/metrics"
	"github.com/kestrelsolar/simulator/infra/openweather"
	"github.com/kestrelsolar/simulator/infra/tzone"
)

// Service holds a fully wired simulation engine and its observability
// sinks. Building a Service performs the provider I/O (or reads the disk
// snapshots); running simulations afterwards is pure computation.
type Service struct {
	Engine *sim.Engine

	cfg  *config.Config
	sink coremetrics.Sink
	log  logger.Logger
}

// New builds a Service from the configuration. Route and weather models are
// constructed once here and shared read-only by every subsequent run.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	snap, err := cache.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	// Route resolution.
	maps := gmaps.New(cfg.Maps, snap, logger.New("gmaps"))
	path, elevations, err := maps.RouteWithElevations(ctx, cfg.Race.Origin, cfg.Race.Dest,
		cfg.Race.Waypoints, "route_"+cfg.Race.Type)
	if err != nil {
		return nil, fmt.Errorf("route resolution: %w", err)
	}
	if cfg.Race.Type == config.RaceFSGP {
		path, elevations = route.Tile(path, elevations, cfg.Race.Laps)
	}

	tz, err := tzone.New()
	if err != nil {
		return nil, fmt.Errorf("route resolution: %w", err)
	}
	offsets, err := tz.UTCOffsets(path, cfg.Race.ReferenceTime())
	if err != nil {
		return nil, fmt.Errorf("route resolution: %w", err)
	}

	rt, err := route.New(path, elevations, offsets)
	if err != nil {
		return nil, fmt.Errorf("route resolution: %w", err)
	}
	logg.Infof("route ready: %d coordinates, %.2fkm", rt.NumCoords(), rt.TotalLengthM()/1000)

	// Weather resolution over the subsampled route.
	ow := openweather.New(cfg.Weather, snap, logger.New("openweather"))
	weatherCoords := weather.Subsample(path, cfg.Race.WeatherStride)
	forecasts, err := ow.RouteForecastCached(ctx, weatherCoords, cfg.Race.WeatherFrequency,
		"weather_"+cfg.Race.Type)
	if err != nil {
		return nil, fmt.Errorf("weather resolution: %w", err)
	}
	wm, err := weather.New(forecasts)
	if err != nil {
		return nil, fmt.Errorf("weather resolution: %w", err)
	}
	logg.Infof("weather ready: %d coordinates, horizon %d", len(wm.Coords()), len(forecasts[0]))

	// Vehicle energy models.
	motor, err := energy.NewMotor(cfg.Vehicle.Motor)
	if err != nil {
		return nil, err
	}
	array, err := energy.NewArray(cfg.Vehicle.Array)
	if err != nil {
		return nil, err
	}
	battery, err := energy.NewBattery(cfg.Vehicle.Battery)
	if err != nil {
		return nil, err
	}
	lvs := energy.NewLVS(cfg.Vehicle.LVSPowerLossW)

	engine, err := sim.New(cfg.Race.Sim, rt, wm, motor, array, lvs, battery, logger.New("engine"))
	if err != nil {
		return nil, err
	}

	return &Service{
		Engine: engine,
		cfg:    cfg,
		sink:   buildSink(cfg.Metrics, logg),
		log:    logg,
	}, nil
}

func buildSink(cfg coremetrics.Config, logg logger.Logger) coremetrics.Sink {
	var sinks []coremetrics.Sink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg)
		if err != nil {
			logg.Errorf("prom sink: %v", err)
		} else {
			sinks = append(sinks, sink)
		}
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}
	case 1:
		return sinks[0]
	default:
		return metrics.NewMultiSink(sinks...)
	}
}

// StartMetricsServer exposes the Prometheus endpoint until ctx is canceled.
// It is a no-op when Prometheus is disabled.
func (s *Service) StartMetricsServer(ctx context.Context) {
	if !s.cfg.Metrics.PrometheusEnabled {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// RunSimulation runs one speed profile through the engine and records the
// outcome in the metrics sinks.
func (s *Service) RunSimulation(speedsKmh []float64) (*model.SimulationResult, error) {
	started := time.Now()
	result, err := s.Engine.Run(speedsKmh)
	if err != nil {
		return nil, err
	}
	rec := coremetrics.RunRecord{
		RunID:           result.RunID,
		RaceType:        s.cfg.Race.Type,
		DistanceKm:      result.DistanceTravelledKm,
		RouteLengthKm:   result.RouteLengthKm,
		FinalSOCPercent: result.FinalSOCPercent,
		TimeTaken:       result.TimeTaken,
		ComputeTime:     time.Since(started),
		StartedAt:       result.StartedAt,
	}
	if err := s.sink.RecordRun(rec); err != nil {
		s.log.Errorf("record run: %v", err)
	}
	if err := s.sink.RecordSeries(rec, result); err != nil {
		s.log.Errorf("record series: %v", err)
	}
	return result, nil
}

// OptimizeStrategy searches for the speed profile maximizing distance, then
// runs the winning profile once more with full recording and returns its
// result.
func (s *Service) OptimizeStrategy(cfg optimize.Config) ([]float64, *model.SimulationResult, error) {
	objective := func(speeds []float64) (float64, error) {
		result, err := s.Engine.Run(speeds)
		if err != nil {
			return 0, err
		}
		return result.DistanceTravelledKm, nil
	}
	best, _, err := optimize.MaxDistance(cfg, objective, s.log)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.RunSimulation(best)
	if err != nil {
		return nil, nil, err
	}
	return best, result, nil
}
