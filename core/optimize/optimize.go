// Package optimize searches over speed-profile parameters to maximize the
// distance a strategy covers. The simulation engine is treated as a pure
// objective function: each candidate profile is one independent run.
package optimize

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"

	"github.com/kestrelsolar/simulator/core/logger"
)

// Objective evaluates a candidate speed profile (km/h per segment) and
// returns the distance travelled in kilometers.
type Objective func(speedsKmh []float64) (float64, error)

// Config bounds the search.
type Config struct {
	// Dimensions is the number of speed-profile segments searched over.
	Dimensions int `json:"dimensions"`
	// LowerKmh and UpperKmh bound each segment's speed.
	LowerKmh float64 `json:"lower_kmh"`
	UpperKmh float64 `json:"upper_kmh"`
	// MaxEvaluations caps the number of simulation runs.
	MaxEvaluations int `json:"max_evaluations"`
}

// SetDefaults applies the standard strategy-search bounds.
func (c *Config) SetDefaults() {
	if c.Dimensions == 0 {
		c.Dimensions = 8
	}
	if c.LowerKmh == 0 {
		c.LowerKmh = 20
	}
	if c.UpperKmh == 0 {
		c.UpperKmh = 80
	}
	if c.MaxEvaluations == 0 {
		c.MaxEvaluations = 200
	}
}

// Validate checks the search bounds.
func (c Config) Validate() error {
	if c.Dimensions < 1 {
		return fmt.Errorf("dimensions must be at least 1")
	}
	if c.LowerKmh < 0 || c.UpperKmh <= c.LowerKmh {
		return fmt.Errorf("speed bounds [%.1f,%.1f] are invalid", c.LowerKmh, c.UpperKmh)
	}
	return nil
}

// MaxDistance searches for the speed profile that maximizes the objective,
// starting from a mid-range constant profile and descending with
// Nelder-Mead. Candidates are clamped to the configured bounds before each
// evaluation. It returns the best profile and its distance.
func MaxDistance(cfg Config, objective Objective, log logger.Logger) ([]float64, float64, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, 0, fmt.Errorf("optimize config: %w", err)
	}

	var evalErr error
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if evalErr != nil {
				return 0
			}
			dist, err := objective(cfg.clamp(x))
			if err != nil {
				evalErr = err
				return 0
			}
			// Minimizing the negated distance maximizes the distance.
			return -dist
		},
	}

	x0 := make([]float64, cfg.Dimensions)
	for i := range x0 {
		x0[i] = (cfg.LowerKmh + cfg.UpperKmh) / 2
	}

	settings := &optimize.Settings{FuncEvaluations: cfg.MaxEvaluations}
	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if evalErr != nil {
		return nil, 0, fmt.Errorf("optimize: objective failed: %w", evalErr)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("optimize: %w", err)
	}

	best := cfg.clamp(result.X)
	log.Infof("strategy search finished after %d evaluations: %.2fkm", result.FuncEvaluations, -result.F)
	return best, -result.F, nil
}

// clamp returns a copy of x with every entry forced into the speed bounds.
func (c Config) clamp(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		switch {
		case v < c.LowerKmh:
			out[i] = c.LowerKmh
		case v > c.UpperKmh:
			out[i] = c.UpperKmh
		default:
			out[i] = v
		}
	}
	return out
}
