// Package sim runs the tick-based energy-balance simulation: it couples the
// route and weather models with the motor, array, LVS and battery models to
// turn a driving-speed profile into a full per-tick time series of position,
// energy flow and state of charge.
package sim

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/kestrelsolar/simulator/core/energy"
	"github.com/kestrelsolar/simulator/core/logger"
	"github.com/kestrelsolar/simulator/core/model"
	"github.com/kestrelsolar/simulator/core/route"
	"github.com/kestrelsolar/simulator/core/solar"
	"github.com/kestrelsolar/simulator/core/weather"
)

// Engine orchestrates one simulation run. The route and weather models it
// holds are read-only; every run allocates its own working arrays, so a
// single Engine is safe to use from concurrent runs.
type Engine struct {
	cfg     Config
	route   *route.Route
	weather *weather.Model
	motor   *energy.Motor
	array   *energy.Array
	lvs     *energy.LVS
	battery *energy.Battery
	log     logger.Logger

	// timeOfInit anchors tick zero to an absolute UTC unix time: the first
	// available forecast time rolled forward to the next occurrence of the
	// configured start hour.
	timeOfInit int64
}

// New builds an Engine. The weather model's first forecast timestamp is
// rolled forward to the next occurrence of cfg.StartHour to anchor the
// simulated clock.
func New(cfg Config, rt *route.Route, wm *weather.Model, motor *energy.Motor,
	array *energy.Array, lvs *energy.LVS, battery *energy.Battery, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim config: %w", err)
	}
	lastUpdated := wm.LastUpdated()
	timeOfInit := lastUpdated + 3600*int64(24+cfg.StartHour-weather.HourOfUnix(lastUpdated))
	return &Engine{
		cfg:        cfg,
		route:      rt,
		weather:    wm,
		motor:      motor,
		array:      array,
		lvs:        lvs,
		battery:    battery,
		log:        log,
		timeOfInit: timeOfInit,
	}, nil
}

// Run simulates the race day for the given speed profile (km/h) and returns
// the immutable result. The profile may be shorter than the tick grid; it is
// stretched to one entry per tick, with a leading zero-speed sample standing
// for the vehicle at rest at t=0.
func (e *Engine) Run(inputSpeedsKmh []float64) (*model.SimulationResult, error) {
	if len(inputSpeedsKmh) == 0 {
		return nil, fmt.Errorf("sim: empty speed profile")
	}
	for i, s := range inputSpeedsKmh {
		if s < 0 {
			return nil, fmt.Errorf("sim: negative speed %.2f at profile index %d", s, i)
		}
	}
	startedAt := time.Now()
	tick := e.cfg.TickSeconds

	// Tick grid: duration/tick + 1 timestamps, uniformly spaced, first 0.
	n := int(e.cfg.DurationSeconds/tick) + 1
	timestamps := make([]float64, n)
	for i := range timestamps {
		timestamps[i] = float64(i) * tick
	}

	// Expand the profile to the grid and prepend the at-rest sample.
	speedKmh := append([]float64{0}, ExpandSpeedProfile(inputSpeedsKmh, n-1)...)

	// Daily driving curfew: outside the window the vehicle stops to charge.
	mayDrive := make([]bool, n)
	for i := range mayDrive {
		hour := (e.cfg.StartHour + int(timestamps[i])/3600) % 24
		mayDrive[i] = hour >= e.cfg.DriveStartHour && hour < e.cfg.DriveEndHour
	}
	for i := range speedKmh {
		if !mayDrive[i] {
			speedKmh[i] = 0
		}
	}

	// Unconstrained cumulative distance estimate, used only to align the
	// position against the route and weather sample sets.
	tickDistances := make([]float64, n)
	for i := 1; i < n; i++ {
		tickDistances[i] = speedKmh[i] / 3.6 * tick
	}
	cumulativeDistances := make([]float64, n)
	floats.CumSum(cumulativeDistances, tickDistances)

	routeIndices := e.route.ClosestIndices(cumulativeDistances)
	weatherIndices := e.weather.ClosestIndices(cumulativeDistances)

	gradients := make([]float64, n)
	elevations := make([]float64, n)
	bearings := make([]float64, n)
	timeZones := make([]int64, n)
	coords := make([]model.Coord, n)
	localTimes := make([]int64, n)
	for i, idx := range routeIndices {
		gradients[i] = e.route.GradientAt(idx)
		elevations[i] = e.route.ElevationAt(idx)
		bearings[i] = e.route.BearingAt(idx)
		timeZones[i] = e.route.TimeZoneAt(idx)
		coords[i] = e.route.CoordAt(idx)
		localTimes[i] = e.timeOfInit + int64(timestamps[i]) + timeZones[i]
	}

	// Resolve the weather experienced at every tick and phase-align the
	// series with the simulation start hour.
	forecasts := e.weather.ForecastAt(weatherIndices, localTimes)
	forecasts = weather.AlignToStartHour(forecasts, e.cfg.StartHour, tick)

	absoluteWindSpeeds := make([]float64, n)
	windDirections := make([]float64, n)
	cloudCovers := make([]float64, n)
	for i, f := range forecasts {
		absoluteWindSpeeds[i] = f.WindSpeed
		windDirections[i] = f.WindDirection
		cloudCovers[i] = f.CloudCover
	}
	windSpeeds := weather.DirectionalWindSpeed(bearings, absoluteWindSpeeds, windDirections)

	irradiances := solar.GHI(coords, timeZones, localTimes, elevations, cloudCovers)

	// Energy balance per tick. Motor draw is forced to zero during curfew
	// hours regardless of what the raw profile implied.
	motorEnergy := e.motor.EnergyIn(speedKmh, gradients, windSpeeds, tick)
	for i := range motorEnergy {
		if !mayDrive[i] {
			motorEnergy[i] = 0
		}
	}
	arrayEnergy := e.array.ProducedEnergy(irradiances, tick)
	lvsEnergy := e.lvs.ConsumedEnergy(tick)

	deltaEnergy := make([]float64, n)
	for i := range deltaEnergy {
		deltaEnergy[i] = arrayEnergy[i] - motorEnergy[i] - lvsEnergy
	}

	cumulativeDeltaEnergy := make([]float64, n)
	floats.CumSum(cumulativeDeltaEnergy, deltaEnergy)
	soc := e.battery.UpdateArray(cumulativeDeltaEnergy)

	// Final speed gating: the vehicle moves only where the curfew allows
	// driving AND the battery holds charge. A depleted pack can recover
	// once net energy turns positive, so this is evaluated per tick.
	for i := range speedKmh {
		if !mayDrive[i] || soc[i] == 0 {
			speedKmh[i] = 0
		}
	}

	// Time in motion and realized distance. The first grid entry carries no
	// elapsed time.
	timeInMotion := make([]float64, n)
	for i := 1; i < n; i++ {
		if speedKmh[i] != 0 {
			timeInMotion[i] = tick
		}
	}

	routeLengthKm := e.route.TotalLengthM() / 1000
	distanceKm := make([]float64, n)
	perTick := make([]float64, n)
	for i := range perTick {
		perTick[i] = speedKmh[i] * timeInMotion[i] / 3600
	}
	floats.CumSum(distanceKm, perTick)

	// Arrival clamp: cumulative distance never exceeds the route length,
	// and once the destination is reached no further motion time accrues.
	arrivalIndex := -1
	for i := range distanceKm {
		if distanceKm[i] >= routeLengthKm {
			distanceKm[i] = routeLengthKm
			if arrivalIndex == -1 {
				arrivalIndex = i
			}
		}
	}
	if arrivalIndex >= 0 {
		for i := arrivalIndex + 1; i < n; i++ {
			timeInMotion[i] = 0
		}
	}

	totalMotionSeconds := floats.Sum(timeInMotion)

	result := &model.SimulationResult{
		RunID:     model.NewRunID(),
		StartedAt: startedAt,

		Timestamps:  timestamps,
		SpeedKmh:    speedKmh,
		DistanceKm:  distanceKm,
		SOC:         soc,
		DeltaEnergy: deltaEnergy,
		Irradiance:  irradiances,
		WindSpeed:   windSpeeds,
		Elevation:   elevations,
		CloudCover:  cloudCovers,

		DistanceTravelledKm: distanceKm[n-1],
		TimeTaken:           time.Duration(totalMotionSeconds * float64(time.Second)),
		FinalSOCPercent:     soc[n-1] * 100,
		RouteLengthKm:       routeLengthKm,
	}

	e.log.Infof("run %s: %.2fkm of %.2fkm in %s, final SOC %.2f%%",
		result.RunID, result.DistanceTravelledKm, result.RouteLengthKm,
		result.TimeTaken, result.FinalSOCPercent)
	return result, nil
}
