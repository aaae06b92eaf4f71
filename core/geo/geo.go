// Package geo provides great-circle helpers shared by the route and weather
// models and by the route provider.
package geo

import (
	"math"

	"github.com/kestrelsolar/simulator/core/model"
)

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371009.0

// Haversine returns the great-circle distance between two coordinates in
// meters.
func Haversine(a, b model.Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// PathDistances returns the N-1 consecutive segment distances of a path in
// meters.
func PathDistances(coords []model.Coord) []float64 {
	if len(coords) < 2 {
		return nil
	}
	dists := make([]float64, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		dists[i-1] = Haversine(coords[i-1], coords[i])
	}
	return dists
}

// InitialBearing returns the initial great-circle bearing from a to b in
// degrees, azimuth convention (clockwise from north, [0,360)).
func InitialBearing(a, b model.Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	theta := math.Atan2(y, x)
	return math.Mod(theta*180/math.Pi+360, 360)
}
