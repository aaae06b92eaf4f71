package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/kestrelsolar/simulator/core/model"
)

func sampleResult() *model.SimulationResult {
	return &model.SimulationResult{
		RunID:     "run-1",
		StartedAt: time.Date(2021, 8, 4, 9, 0, 0, 0, time.UTC),

		Timestamps:  []float64{0, 1, 2},
		SpeedKmh:    []float64{0, 30, 30},
		DistanceKm:  []float64{0, 0.008, 0.016},
		SOC:         []float64{1, 0.999, 0.998},
		DeltaEnergy: []float64{0, -500, -500},
		Irradiance:  []float64{800, 810, 820},
		WindSpeed:   []float64{1.5, 1.5, 1.5},
		Elevation:   []float64{100, 101, 102},
		CloudCover:  []float64{20, 20, 20},

		DistanceTravelledKm: 0.016,
		TimeTaken:           2 * time.Second,
		FinalSOCPercent:     99.8,
		RouteLengthKm:       0.3,
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var out model.SimulationResult
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RunID != "run-1" {
		t.Errorf("run id lost: %q", out.RunID)
	}
	if len(out.SOC) != 3 || out.FinalSOCPercent != 99.8 {
		t.Errorf("series or aggregates lost: %+v", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "time_s" || len(rows[0]) != 9 {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[2][1] != "30" {
		t.Errorf("expected speed 30 in second tick, got %q", rows[2][1])
	}
	if rows[3][2] != "0.016" {
		t.Errorf("expected distance 0.016 in last tick, got %q", rows[3][2])
	}
}
