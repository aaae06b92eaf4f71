package openweather

import (
	"context"

	"github.com/kestrelsolar/simulator/core/model"
)

// weatherSnapshot is the on-disk form of a fetched route forecast, keyed by
// the route endpoints so a changed race configuration invalidates it.
type weatherSnapshot struct {
	Origin    model.Coord             `json:"origin"`
	Dest      model.Coord             `json:"dest"`
	Forecasts [][]model.ForecastEntry `json:"forecasts"`
}

// RouteForecastCached returns one forecast horizon per coordinate, serving
// from the disk snapshot when its key matches and ForceUpdate is not set.
// Unlike the route snapshot, forecasts go stale on their own; ForceUpdate is
// the expected mode shortly before a race.
func (c *Client) RouteForecastCached(ctx context.Context, coords []model.Coord, frequency, snapshotName string) ([][]model.ForecastEntry, error) {
	if len(coords) == 0 {
		return nil, ValidateFrequency(frequency)
	}
	origin, dest := coords[0], coords[len(coords)-1]

	if c.snap != nil && !c.cfg.ForceUpdate {
		var snap weatherSnapshot
		found, err := c.snap.Load(snapshotName, &snap)
		if err != nil {
			return nil, err
		}
		if found && snap.Origin.Equal(origin) && snap.Dest.Equal(dest) {
			c.log.Infof("using cached weather snapshot %s (%d coordinates)", snapshotName, len(snap.Forecasts))
			return snap.Forecasts, nil
		}
	}

	c.log.Warnf("weather snapshot missing or stale; calling the One Call API for %d coordinates", len(coords))
	forecasts, err := c.RouteForecast(ctx, coords, frequency)
	if err != nil {
		return nil, err
	}

	if c.snap != nil {
		snap := weatherSnapshot{Origin: origin, Dest: dest, Forecasts: forecasts}
		if err := c.snap.Save(snapshotName, snap); err != nil {
			return nil, err
		}
	}
	return forecasts, nil
}
