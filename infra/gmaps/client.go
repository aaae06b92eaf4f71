// Package gmaps fetches drivable routes and per-coordinate elevations from
// the Google Maps Directions and Elevation APIs, with an injected disk
// snapshot to keep API usage down between runs.
package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/infra/cache"
	"github.com/kestrelsolar/simulator/infra/logger"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"

	// maxWaypoints is the Directions API limit; longer lists are truncated.
	maxWaypoints = 10

	// elevationBatchSize bounds the number of locations per Elevation API
	// request to keep the URL within provider limits.
	elevationBatchSize = 250
)

// Config holds the provider settings.
type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	// ForceUpdate bypasses any cached snapshot and refetches from the API.
	ForceUpdate bool `json:"force_update"`
}

// Client talks to the Directions and Elevation APIs.
type Client struct {
	cfg  Config
	http *http.Client
	snap *cache.Store
	log  logger.Logger
}

// New builds a Client. The snapshot store may be nil to disable caching.
func New(cfg Config, snap *cache.Store, log logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
		snap: snap,
		log:  log,
	}
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Steps []struct {
				Polyline struct {
					Points string `json:"points"`
				} `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route returns an ordered coordinate sequence describing a drivable path
// from origin to dest through the given waypoints (at most 10; extra
// waypoints are dropped with a warning).
func (c *Client) Route(ctx context.Context, origin, dest model.Coord, waypoints []model.Coord) ([]model.Coord, error) {
	if len(waypoints) > maxWaypoints {
		c.log.Warnf("too many waypoints (%d); truncating to %d", len(waypoints), maxWaypoints)
		waypoints = waypoints[:maxWaypoints]
	}

	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", dest.String())
	if len(waypoints) > 0 {
		parts := make([]string, len(waypoints))
		for i, wp := range waypoints {
			parts[i] = "via:" + wp.String()
		}
		q.Set("waypoints", strings.Join(parts, "|"))
	}
	q.Set("key", c.cfg.APIKey)

	var resp directionsResponse
	if err := c.getJSON(ctx, c.cfg.BaseURL+"/directions/json?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("gmaps: directions: %w", err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("gmaps: directions status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("gmaps: no route found")
	}

	// The first route is a series of legs, each a series of steps carrying
	// an encoded polyline.
	var path []model.Coord
	for _, leg := range resp.Routes[0].Legs {
		for _, step := range leg.Steps {
			coords, _, err := polyline.DecodeCoords([]byte(step.Polyline.Points))
			if err != nil {
				return nil, fmt.Errorf("gmaps: decode polyline: %w", err)
			}
			for _, ll := range coords {
				path = append(path, model.Coord{Lat: ll[0], Lon: ll[1]})
			}
		}
	}
	return path, nil
}

type elevationResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevations returns the elevation in meters of every coordinate, batching
// requests to stay within provider URL limits.
func (c *Client) Elevations(ctx context.Context, coords []model.Coord) ([]float64, error) {
	elevations := make([]float64, 0, len(coords))
	for start := 0; start < len(coords); start += elevationBatchSize {
		end := start + elevationBatchSize
		if end > len(coords) {
			end = len(coords)
		}
		parts := make([]string, end-start)
		for i, coord := range coords[start:end] {
			parts[i] = coord.String()
		}

		q := url.Values{}
		q.Set("locations", strings.Join(parts, "|"))
		q.Set("key", c.cfg.APIKey)

		var resp elevationResponse
		if err := c.getJSON(ctx, c.cfg.BaseURL+"/elevation/json?"+q.Encode(), &resp); err != nil {
			return nil, fmt.Errorf("gmaps: elevation: %w", err)
		}
		if resp.Status != "OK" {
			return nil, fmt.Errorf("gmaps: elevation status %s", resp.Status)
		}
		for _, res := range resp.Results {
			elevations = append(elevations, res.Elevation)
		}
	}
	if len(elevations) != len(coords) {
		return nil, fmt.Errorf("gmaps: elevation returned %d results for %d coordinates", len(elevations), len(coords))
	}
	return elevations, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %s", res.Status)
	}
	return json.NewDecoder(res.Body).Decode(v)
}
