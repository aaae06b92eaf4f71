// Package openweather fetches short weather forecast horizons for a set of
// coordinates from the OpenWeather One Call API, with an injected disk
// snapshot to respect the provider's tight query budget.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/infra/cache"
	"github.com/kestrelsolar/simulator/infra/logger"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Frequencies accepted by the One Call API.
const (
	FrequencyCurrent = "current"
	FrequencyHourly  = "hourly"
	FrequencyDaily   = "daily"
)

var validFrequencies = []string{FrequencyCurrent, FrequencyHourly, FrequencyDaily}

// ValidateFrequency rejects horizon classes the provider does not offer.
func ValidateFrequency(freq string) error {
	for _, f := range validFrequencies {
		if freq == f {
			return nil
		}
	}
	return fmt.Errorf("openweather: invalid data frequency %q, must be one of %s",
		freq, strings.Join(validFrequencies, ", "))
}

// Config holds the provider settings.
type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	// ForceUpdate bypasses any cached snapshot and refetches from the API.
	ForceUpdate bool `json:"force_update"`
}

// Client talks to the One Call API.
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

type oneCallEntry struct {
	Dt        int64   `json:"dt"`
	WindSpeed float64 `json:"wind_speed"`
	WindDeg   float64 `json:"wind_deg"`
	Clouds    float64 `json:"clouds"`
	Weather   []struct {
		ID int `json:"id"`
	} `json:"weather"`
}

type oneCallResponse struct {
	TimezoneOffset int64          `json:"timezone_offset"`
	Current        *oneCallEntry  `json:"current"`
	Hourly         []oneCallEntry `json:"hourly"`
	Daily          []oneCallEntry `json:"daily"`
}

// Forecast returns the forecast horizon for one coordinate at the requested
// frequency: one row for "current", the hourly series for "hourly", the
// daily series for "daily".
func (c *Client) Forecast(ctx context.Context, coord model.Coord, frequency string) ([]model.ForecastEntry, error) {
	if err := ValidateFrequency(frequency); err != nil {
		return nil, err
	}

	// Exclude every block except the requested one to keep responses small.
	var exclude []string
	for _, f := range validFrequencies {
		if f != frequency {
			exclude = append(exclude, f)
		}
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	q.Set("exclude", "minutely,"+strings.Join(exclude, ","))
	q.Set("appid", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/onecall?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather: %w", err)
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather: unexpected HTTP status %s", res.Status)
	}

	var resp oneCallResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("openweather: decode response: %w", err)
	}

	var raw []oneCallEntry
	switch frequency {
	case FrequencyCurrent:
		if resp.Current == nil {
			return nil, fmt.Errorf("openweather: response missing current block")
		}
		raw = []oneCallEntry{*resp.Current}
	case FrequencyHourly:
		raw = resp.Hourly
	case FrequencyDaily:
		raw = resp.Daily
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("openweather: empty %s forecast for %s", frequency, coord)
	}

	entries := make([]model.ForecastEntry, len(raw))
	for i, e := range raw {
		var conditionID int
		if len(e.Weather) > 0 {
			conditionID = e.Weather[0].ID
		}
		entries[i] = model.ForecastEntry{
			Coord:          coord,
			UnixTime:       e.Dt,
			TimezoneOffset: resp.TimezoneOffset,
			LocalUnixTime:  e.Dt + resp.TimezoneOffset,
			WindSpeed:      e.WindSpeed,
			WindDirection:  e.WindDeg,
			CloudCover:     e.Clouds,
			ConditionID:    conditionID,
		}
	}
	return entries, nil
}

// RouteForecast returns one forecast horizon per coordinate.
func (c *Client) RouteForecast(ctx context.Context, coords []model.Coord, frequency string) ([][]model.ForecastEntry, error) {
	forecasts := make([][]model.ForecastEntry, len(coords))
	for i, coord := range coords {
		horizon, err := c.Forecast(ctx, coord, frequency)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d/%d: %w", i+1, len(coords), err)
		}
		forecasts[i] = horizon
	}
	return forecasts, nil
}
