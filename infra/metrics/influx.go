package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/infra/logger"
)

// InfluxSink writes simulation runs and their downsampled per-tick series to
// an InfluxDB instance using the official client.
type InfluxSink struct {
	client       influxdb2.Client
	writeAPI     api.WriteAPIBlocking
	seriesStride int
	log          logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:       client,
		writeAPI:     client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		seriesStride: cfg.InfluxSeriesStride,
		log:          logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run aggregates as a single point.
func (s *InfluxSink) RecordRun(rec coremetrics.RunRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_run").
		AddTag("run_id", rec.RunID).
		AddTag("race_type", rec.RaceType).
		AddField("distance_km", round3(rec.DistanceKm)).
		AddField("route_length_km", round3(rec.RouteLengthKm)).
		AddField("final_soc_percent", round3(rec.FinalSOCPercent)).
		AddField("time_taken_s", rec.TimeTaken.Seconds()).
		AddField("compute_time_s", rec.ComputeTime.Seconds()).
		SetTime(rec.StartedAt)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSeries writes every seriesStride-th tick of the result as points
// timestamped relative to the run start.
func (s *InfluxSink) RecordSeries(rec coremetrics.RunRecord, result *model.SimulationResult) error {
	if s.seriesStride <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for i := 0; i < len(result.Timestamps); i += s.seriesStride {
		p := write.NewPointWithMeasurement("simulation_tick").
			AddTag("run_id", rec.RunID).
			AddTag("race_type", rec.RaceType).
			AddField("speed_kmh", round3(result.SpeedKmh[i])).
			AddField("distance_km", round3(result.DistanceKm[i])).
			AddField("soc", round3(result.SOC[i])).
			AddField("delta_energy_j", round3(result.DeltaEnergy[i])).
			AddField("irradiance_wm2", round3(result.Irradiance[i])).
			AddField("wind_speed_ms", round3(result.WindSpeed[i])).
			AddField("elevation_m", round3(result.Elevation[i])).
			AddField("cloud_cover_pct", round3(result.CloudCover[i])).
			SetTime(rec.StartedAt.Add(time.Duration(result.Timestamps[i] * float64(time.Second))))
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
