// Package tzone resolves coordinates to IANA time zones and UTC offsets
// using an embedded timezone boundary index, so no network call is needed.
package tzone

import (
	"fmt"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/kestrelsolar/simulator/core/model"
)

// Finder maps coordinates to UTC offsets at a fixed reference date. The
// reference date pins daylight-saving state for the whole route, matching
// how race schedules are published.
type Finder struct {
	finder tzf.F
}

// New builds a Finder from the embedded timezone data.
func New() (*Finder, error) {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("tzone: init finder: %w", err)
	}
	return &Finder{finder: f}, nil
}

// UTCOffset returns the offset from UTC in seconds at the coordinate, for
// the given reference date.
func (f *Finder) UTCOffset(coord model.Coord, ref time.Time) (int64, error) {
	name := f.finder.GetTimezoneName(coord.Lon, coord.Lat)
	if name == "" {
		return 0, fmt.Errorf("tzone: no zone found for %s", coord)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return 0, fmt.Errorf("tzone: load %s: %w", name, err)
	}
	_, offset := ref.In(loc).Zone()
	return int64(offset), nil
}

// UTCOffsets returns one offset per coordinate. Consecutive identical
// coordinates reuse the previous lookup, which matters for tiled lap routes.
func (f *Finder) UTCOffsets(coords []model.Coord, ref time.Time) ([]int64, error) {
	offsets := make([]int64, len(coords))
	for i, coord := range coords {
		if i > 0 && coord.Equal(coords[i-1]) {
			offsets[i] = offsets[i-1]
			continue
		}
		off, err := f.UTCOffset(coord, ref)
		if err != nil {
			return nil, err
		}
		offsets[i] = off
	}
	return offsets, nil
}
