// Package export writes simulation results to portable formats for
// downstream plotting and analysis tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kestrelsolar/simulator/core/model"
)

// WriteJSON writes the full result, aggregates and series, to w in JSON.
func WriteJSON(w io.Writer, result *model.SimulationResult) error {
	enc := json.NewEncoder(w)
	return enc.Encode(result)
}

// WriteCSV writes the per-tick series to w, one row per tick.
func WriteCSV(w io.Writer, result *model.SimulationResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"time_s", "speed_kmh", "distance_km", "soc", "delta_energy_j",
		"irradiance_wm2", "wind_speed_ms", "elevation_m", "cloud_cover_pct",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range result.Timestamps {
		rec := []string{
			fmtFloat(result.Timestamps[i]),
			fmtFloat(result.SpeedKmh[i]),
			fmtFloat(result.DistanceKm[i]),
			fmtFloat(result.SOC[i]),
			fmtFloat(result.DeltaEnergy[i]),
			fmtFloat(result.Irradiance[i]),
			fmtFloat(result.WindSpeed[i]),
			fmtFloat(result.Elevation[i]),
			fmtFloat(result.CloudCover[i]),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
