package gmaps

import (
	"context"

	"github.com/kestrelsolar/simulator/core/model"
)

// routeSnapshot is the on-disk form of a fetched route, keyed by the request
// parameters so a changed race configuration invalidates it.
type routeSnapshot struct {
	Origin     model.Coord   `json:"origin"`
	Dest       model.Coord   `json:"dest"`
	Waypoints  []model.Coord `json:"waypoints"`
	Path       []model.Coord `json:"path"`
	Elevations []float64     `json:"elevations"`
}

// RouteWithElevations returns the path and per-coordinate elevations for the
// requested journey, serving from the disk snapshot when its key matches and
// ForceUpdate is not set.
func (c *Client) RouteWithElevations(ctx context.Context, origin, dest model.Coord, waypoints []model.Coord, snapshotName string) ([]model.Coord, []float64, error) {
	if c.snap != nil && !c.cfg.ForceUpdate {
		var snap routeSnapshot
		found, err := c.snap.Load(snapshotName, &snap)
		if err != nil {
			return nil, nil, err
		}
		if found && snap.Origin.Equal(origin) && snap.Dest.Equal(dest) &&
			model.CoordsEqual(snap.Waypoints, waypoints) {
			c.log.Infof("using cached route snapshot %s (%d coordinates)", snapshotName, len(snap.Path))
			return snap.Path, snap.Elevations, nil
		}
	}

	c.log.Warnf("route snapshot missing or stale; calling the Directions and Elevation APIs")
	path, err := c.Route(ctx, origin, dest, waypoints)
	if err != nil {
		return nil, nil, err
	}
	elevations, err := c.Elevations(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	if c.snap != nil {
		snap := routeSnapshot{Origin: origin, Dest: dest, Waypoints: waypoints, Path: path, Elevations: elevations}
		if err := c.snap.Save(snapshotName, snap); err != nil {
			return nil, nil, err
		}
	}
	return path, elevations, nil
}
