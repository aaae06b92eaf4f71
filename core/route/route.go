// Package route models the planned driving path: coordinates, per-segment
// distances and gradients, elevations, time zones and bearings, and the
// mapping from a cumulative driven distance to the closest route segment.
package route

import (
	"fmt"

	"github.com/kestrelsolar/simulator/core/geo"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/internal/monotonic"
)

// Route is an immutable model of the planned path. It is built once per race
// configuration and is safe to share read-only across simulation runs.
type Route struct {
	coords     []model.Coord
	elevations []float64 // meters, one per coordinate
	timeZones  []int64   // seconds east of UTC, one per coordinate
	distances  []float64 // meters, one per segment (N-1)
	gradients  []float64 // rise/run, one per segment (N-1)
	bearings   []float64 // degrees azimuth, one per coordinate
	midpoints  []float64 // cumulative distance of segment midpoints (N-2)
	totalM     float64
}

// New builds a Route from raw path data. Consecutive duplicate coordinates
// are removed before distances and gradients are derived, so that zero-length
// segments can never produce a division by zero in the gradient calculation.
// Elevations and time zones must have one entry per coordinate.
func New(coords []model.Coord, elevations []float64, timeZones []int64) (*Route, error) {
	if len(coords) != len(elevations) {
		return nil, fmt.Errorf("route: %d coordinates but %d elevations", len(coords), len(elevations))
	}
	if len(coords) != len(timeZones) {
		return nil, fmt.Errorf("route: %d coordinates but %d time zones", len(coords), len(timeZones))
	}

	coords, elevations, timeZones = dedupe(coords, elevations, timeZones)
	if len(coords) < 2 {
		return nil, fmt.Errorf("route: need at least 2 distinct coordinates, got %d", len(coords))
	}

	r := &Route{
		coords:     coords,
		elevations: elevations,
		timeZones:  timeZones,
		distances:  geo.PathDistances(coords),
	}

	r.gradients = make([]float64, len(r.distances))
	for i := range r.distances {
		r.gradients[i] = (elevations[i+1] - elevations[i]) / r.distances[i]
	}

	r.bearings = make([]float64, len(coords))
	for i := 0; i < len(coords)-1; i++ {
		r.bearings[i] = geo.InitialBearing(coords[i], coords[i+1])
	}
	// The final point has no forward pair; repeat the previous bearing.
	r.bearings[len(coords)-1] = r.bearings[len(coords)-2]

	r.midpoints = monotonic.Midpoints(r.distances)
	for _, d := range r.distances {
		r.totalM += d
	}
	return r, nil
}

// dedupe removes consecutive coordinates that are exactly equal, keeping the
// matching elevation and time-zone entries aligned.
func dedupe(coords []model.Coord, elevations []float64, timeZones []int64) ([]model.Coord, []float64, []int64) {
	outC := coords[:0:0]
	outE := elevations[:0:0]
	outT := timeZones[:0:0]
	for i := range coords {
		if i > 0 && coords[i].Equal(coords[i-1]) {
			continue
		}
		outC = append(outC, coords[i])
		outE = append(outE, elevations[i])
		outT = append(outT, timeZones[i])
	}
	return outC, outE, outT
}

// ClosestIndices maps a non-decreasing sequence of cumulative distances (in
// meters) to the index of the route segment whose midpoint is closest. The
// cursor only moves forward and saturates at the last valid segment, so a
// vehicle past the end of the route stays pinned to the final segment.
func (r *Route) ClosestIndices(cumulativeDistances []float64) []int {
	return monotonic.ClosestIndices(r.midpoints, cumulativeDistances)
}

// TotalLengthM returns the route length in meters.
func (r *Route) TotalLengthM() float64 { return r.totalM }

// NumCoords returns the number of distinct route coordinates.
func (r *Route) NumCoords() int { return len(r.coords) }

// Coords returns the de-duplicated path coordinates.
func (r *Route) Coords() []model.Coord { return r.coords }

// CoordAt returns the coordinate at a route index.
func (r *Route) CoordAt(i int) model.Coord { return r.coords[i] }

// GradientAt returns the road gradient of segment i, signed (positive is
// uphill in the direction of travel).
func (r *Route) GradientAt(i int) float64 { return r.gradients[i] }

// ElevationAt returns the elevation in meters at route index i.
func (r *Route) ElevationAt(i int) float64 { return r.elevations[i] }

// BearingAt returns the vehicle heading in azimuth degrees at route index i.
func (r *Route) BearingAt(i int) float64 { return r.bearings[i] }

// TimeZoneAt returns the UTC offset in seconds at route index i.
func (r *Route) TimeZoneAt(i int) int64 { return r.timeZones[i] }

// Tile repeats a single-lap path laps times, as used for track races where
// the same circuit is driven repeatedly. Elevations are tiled alongside the
// coordinates.
func Tile(coords []model.Coord, elevations []float64, laps int) ([]model.Coord, []float64) {
	if laps <= 1 {
		return coords, elevations
	}
	outC := make([]model.Coord, 0, len(coords)*laps)
	outE := make([]float64, 0, len(elevations)*laps)
	for lap := 0; lap < laps; lap++ {
		outC = append(outC, coords...)
		outE = append(outE, elevations...)
	}
	return outC, outE
}
