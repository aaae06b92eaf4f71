// Package weather models the reduced set of along-route weather samples and
// the alignment of simulated positions and times to forecast rows.
package weather

import (
	"fmt"
	"math"

	"github.com/kestrelsolar/simulator/core/geo"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/internal/monotonic"
)

// Model owns the weather samples for a race: a coarse subsample of the route
// coordinates, each carrying a short forecast horizon ordered by time. Like
// the route model it is built once and shared read-only across runs.
type Model struct {
	coords    []model.Coord
	forecasts [][]model.ForecastEntry // [coord][horizon entry]
	midpoints []float64
}

// New builds a Model from per-coordinate forecast horizons. Every coordinate
// must carry at least one forecast entry; horizons must be ordered by time.
func New(forecasts [][]model.ForecastEntry) (*Model, error) {
	if len(forecasts) < 2 {
		return nil, fmt.Errorf("weather: need forecasts for at least 2 coordinates, got %d", len(forecasts))
	}
	coords := make([]model.Coord, len(forecasts))
	for i, horizon := range forecasts {
		if len(horizon) == 0 {
			return nil, fmt.Errorf("weather: empty forecast horizon at coordinate %d", i)
		}
		coords[i] = horizon[0].Coord
	}

	return &Model{
		coords:    coords,
		forecasts: forecasts,
		midpoints: monotonic.Midpoints(geo.PathDistances(coords)),
	}, nil
}

// Subsample reduces a full-resolution route to every stride-th coordinate.
// The weather provider has a far coarser usable query budget than the route
// resolution, so only a thin subsample of the path is ever queried.
func Subsample(coords []model.Coord, stride int) []model.Coord {
	if stride <= 1 {
		return coords
	}
	out := make([]model.Coord, 0, len(coords)/stride+1)
	for i := 0; i < len(coords); i += stride {
		out = append(out, coords[i])
	}
	return out
}

// Coords returns the reduced weather coordinate set.
func (m *Model) Coords() []model.Coord { return m.coords }

// LastUpdated returns the UTC unix time of the earliest forecast row, i.e.
// the time after which forecast data is available.
func (m *Model) LastUpdated() int64 { return m.forecasts[0][0].UnixTime }

// ClosestIndices maps a non-decreasing cumulative-distance series (meters)
// to the nearest weather coordinate index, using the same forward-only
// midpoint cursor as the route model.
func (m *Model) ClosestIndices(cumulativeDistances []float64) []int {
	return monotonic.ClosestIndices(m.midpoints, cumulativeDistances)
}

// ForecastAt returns, for each (coordinate index, local timestamp) pair, the
// forecast row of that coordinate whose local time is nearest. Horizons are
// short and bounded, so the per-row scan stays cheap.
func (m *Model) ForecastAt(indices []int, localTimes []int64) []model.ForecastEntry {
	result := make([]model.ForecastEntry, len(indices))
	for i, idx := range indices {
		horizon := m.forecasts[idx]
		best := 0
		bestDiff := int64(math.MaxInt64)
		for j, entry := range horizon {
			diff := localTimes[i] - entry.LocalUnixTime
			if diff < 0 {
				diff = -diff
			}
			if diff < bestDiff {
				bestDiff = diff
				best = j
			}
		}
		result[i] = horizon[best]
	}
	return result
}

// DirectionalWindSpeed projects ambient wind onto the vehicle's heading:
// positive values oppose the direction of travel (headwind). Wind directions
// follow the meteorological convention (degrees the wind blows FROM), so a
// wind direction equal to the vehicle bearing is a full headwind.
func DirectionalWindSpeed(bearings, windSpeeds, windDirections []float64) []float64 {
	out := make([]float64, len(bearings))
	for i := range bearings {
		out[i] = windSpeeds[i] * math.Cos((windDirections[i]-bearings[i])*math.Pi/180)
	}
	return out
}

// HourOfUnix returns the UTC hour of day of a unix timestamp.
func HourOfUnix(ts int64) int {
	sec := ts % 86400
	if sec < 0 {
		sec += 86400
	}
	return int(sec / 3600)
}

// AlignToStartHour rolls a per-tick forecast series so that its first row
// corresponds to the configured simulation start hour. The roll amount is
// derived from the first row's hour of day:
//
//	rollTicks = 3600 * (24 + startHour - hour(rows[0].UnixTime)) / tick
//
// i.e. the number of ticks between the first available forecast and the next
// occurrence of startHour. Rows are rotated left by that amount, wrapping the
// displaced head onto the tail.
func AlignToStartHour(rows []model.ForecastEntry, startHour int, tick float64) []model.ForecastEntry {
	if len(rows) == 0 || tick <= 0 {
		return rows
	}
	rollTicks := int(float64(3600*(24+startHour-HourOfUnix(rows[0].UnixTime))) / tick)
	rollTicks %= len(rows)
	if rollTicks < 0 {
		rollTicks += len(rows)
	}
	out := make([]model.ForecastEntry, len(rows))
	copy(out, rows[rollTicks:])
	copy(out[len(rows)-rollTicks:], rows[:rollTicks])
	return out
}
