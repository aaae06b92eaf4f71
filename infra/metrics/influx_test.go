package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/kestrelsolar/simulator/core/metrics"
	"github.com/kestrelsolar/simulator/core/model"
)

func TestInfluxSinkRecordRun(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	})
	defer sink.Close()

	rec := coremetrics.RunRecord{
		RunID:           "run-1",
		RaceType:        "FSGP",
		DistanceKm:      88.123456,
		RouteLengthKm:   100,
		FinalSOCPercent: 41.5,
		TimeTaken:       3 * time.Hour,
		StartedAt:       time.Now(),
	}
	if err := sink.RecordRun(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if !strings.HasPrefix(body, "simulation_run,") {
		t.Errorf("unexpected measurement: %s", body)
	}
	if !strings.Contains(body, `race_type=FSGP`) || !strings.Contains(body, "run_id=run-1") {
		t.Errorf("missing tags: %s", body)
	}
	if !strings.Contains(body, "distance_km=88.123") {
		t.Errorf("distance should be rounded to 3 decimals: %s", body)
	}
}

func TestInfluxSinkRecordSeriesStride(t *testing.T) {
	var lines int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		lines += strings.Count(strings.TrimSpace(string(data)), "simulation_tick")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(coremetrics.Config{
		InfluxURL:          srv.URL,
		InfluxSeriesStride: 10,
	})
	defer sink.Close()

	n := 25
	result := &model.SimulationResult{
		Timestamps:  make([]float64, n),
		SpeedKmh:    make([]float64, n),
		DistanceKm:  make([]float64, n),
		SOC:         make([]float64, n),
		DeltaEnergy: make([]float64, n),
		Irradiance:  make([]float64, n),
		WindSpeed:   make([]float64, n),
		Elevation:   make([]float64, n),
		CloudCover:  make([]float64, n),
	}
	for i := range result.Timestamps {
		result.Timestamps[i] = float64(i)
	}

	rec := coremetrics.RunRecord{RunID: "run-1", RaceType: "ASC", StartedAt: time.Now()}
	if err := sink.RecordSeries(rec, result); err != nil {
		t.Fatalf("record series: %v", err)
	}
	// Ticks 0, 10 and 20.
	if lines != 3 {
		t.Errorf("expected 3 strided points, got %d", lines)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(coremetrics.Config{
		InfluxURL:    srv.URL + "/api/v2/write",
		InfluxToken:  "tok",
		InfluxOrg:    "org",
		InfluxBucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
