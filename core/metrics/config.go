package metrics

// Config selects and parameterizes the metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`

	InfluxEnabled bool   `json:"influx_enabled"`
	InfluxURL     string `json:"influx_url"`
	InfluxToken   string `json:"influx_token"`
	InfluxOrg     string `json:"influx_org"`
	InfluxBucket  string `json:"influx_bucket"`
	// InfluxSeriesStride downsamples the per-tick series written to Influx:
	// every stride-th tick is exported. 0 disables series export.
	InfluxSeriesStride int `json:"influx_series_stride"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":2112"
	}
	if c.InfluxEnabled && c.InfluxSeriesStride == 0 {
		c.InfluxSeriesStride = 60
	}
}
