package model

// ForecastEntry is a single weather forecast row for one coordinate and one
// timestamp, as consumed by the simulation core. Wind direction follows the
// meteorological convention: degrees clockwise from north, pointing to where
// the wind blows FROM.
type ForecastEntry struct {
	Coord          Coord   `json:"coord"`
	UnixTime       int64   `json:"dt"`              // UTC unix time of the forecast
	TimezoneOffset int64   `json:"timezone_offset"` // seconds east of UTC
	LocalUnixTime  int64   `json:"local_dt"`        // UnixTime + TimezoneOffset
	WindSpeed      float64 `json:"wind_speed"`      // m/s
	WindDirection  float64 `json:"wind_deg"`        // degrees, meteorological
	CloudCover     float64 `json:"clouds"`          // percent, 0-100
	ConditionID    int     `json:"condition_id"`    // provider weather condition code
}

// Advisory maps the standardized weather condition code to a coarse
// human-readable category.
func (f ForecastEntry) Advisory() string {
	switch {
	case f.ConditionID >= 200 && f.ConditionID < 300:
		return "Thunderstorm"
	case f.ConditionID >= 300 && f.ConditionID < 500:
		return "Drizzle"
	case f.ConditionID >= 500 && f.ConditionID < 600:
		return "Rain"
	case f.ConditionID >= 600 && f.ConditionID < 700:
		return "Snow"
	case f.ConditionID == 800:
		return "Clear"
	default:
		return "Unknown"
	}
}
