package optimize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelsolar/simulator/infra/logger"
)

func TestMaxDistanceFindsQuadraticOptimum(t *testing.T) {
	// Smooth objective peaking at 40km/h on every segment.
	objective := func(speeds []float64) (float64, error) {
		dist := 100.0
		for _, v := range speeds {
			dist -= (v - 40) * (v - 40) * 0.01
		}
		return dist, nil
	}

	cfg := Config{Dimensions: 2, LowerKmh: 20, UpperKmh: 80, MaxEvaluations: 500}
	best, dist, err := MaxDistance(cfg, objective, logger.NopLogger{})
	require.NoError(t, err)
	require.Len(t, best, 2)

	for _, v := range best {
		assert.InDelta(t, 40, v, 1.0)
		assert.GreaterOrEqual(t, v, cfg.LowerKmh)
		assert.LessOrEqual(t, v, cfg.UpperKmh)
	}
	assert.InDelta(t, 100, dist, 0.5)
}

func TestMaxDistanceRespectsBounds(t *testing.T) {
	// Monotone objective pushing toward the upper bound.
	objective := func(speeds []float64) (float64, error) {
		var dist float64
		for _, v := range speeds {
			dist += v
		}
		return dist, nil
	}

	cfg := Config{Dimensions: 3, LowerKmh: 20, UpperKmh: 60, MaxEvaluations: 300}
	best, _, err := MaxDistance(cfg, objective, logger.NopLogger{})
	require.NoError(t, err)
	for _, v := range best {
		assert.GreaterOrEqual(t, v, cfg.LowerKmh)
		assert.LessOrEqual(t, v, cfg.UpperKmh)
	}
}

func TestMaxDistancePropagatesObjectiveError(t *testing.T) {
	boom := errors.New("engine exploded")
	objective := func([]float64) (float64, error) { return 0, boom }

	_, _, err := MaxDistance(Config{}, objective, logger.NopLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestConfigValidation(t *testing.T) {
	assert.Error(t, Config{Dimensions: 0, LowerKmh: 20, UpperKmh: 80}.Validate())
	assert.Error(t, Config{Dimensions: 2, LowerKmh: 50, UpperKmh: 40}.Validate())
	assert.NoError(t, Config{Dimensions: 2, LowerKmh: 20, UpperKmh: 80, MaxEvaluations: 10}.Validate())

	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, 8, cfg.Dimensions)
	assert.Equal(t, 20.0, cfg.LowerKmh)
	assert.Equal(t, 80.0, cfg.UpperKmh)
}
