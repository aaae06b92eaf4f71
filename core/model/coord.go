package model

import "fmt"

// Coord is a WGS84 latitude/longitude pair in decimal degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%.7f,%.7f", c.Lat, c.Lon)
}

// Equal reports whether two coordinates are identical.
func (c Coord) Equal(other Coord) bool {
	return c.Lat == other.Lat && c.Lon == other.Lon
}

// CoordsEqual reports whether two coordinate sequences are identical,
// element by element. Used by the provider caches to decide whether a
// stored snapshot still matches the requested route.
func CoordsEqual(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
