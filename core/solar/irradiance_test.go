package solar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelsolar/simulator/core/model"
)

func TestCloudCoverToGHILinear(t *testing.T) {
	ghi := []float64{500, 300, 100}

	fullCover := CloudCoverToGHILinear([]float64{100, 100, 100}, ghi)
	assert.InDeltaSlice(t, []float64{175, 105, 35}, fullCover, 1e-9,
		"full cover should reduce irradiance to 35%%")

	mixed := CloudCoverToGHILinear([]float64{80, 0, 30}, ghi)
	assert.InDeltaSlice(t, []float64{240, 300, 80.5}, mixed, 1e-9)
}

func TestClearSkyGHIDaytime(t *testing.T) {
	// Solar noon in early August at a mid-latitude coordinate sitting on its
	// time-zone meridian.
	coord := model.Coord{Lat: 35, Lon: -75}
	local := time.Date(2021, 8, 4, 12, 0, 0, 0, time.UTC).Unix()

	ghi := ClearSkyGHI(coord, -5*3600, local, 0)
	assert.Greater(t, ghi, 700.0)
	assert.Less(t, ghi, 1100.0)
}

func TestClearSkyGHINight(t *testing.T) {
	coord := model.Coord{Lat: 35, Lon: -75}
	local := time.Date(2021, 8, 4, 0, 30, 0, 0, time.UTC).Unix()

	ghi := ClearSkyGHI(coord, -5*3600, local, 0)
	assert.Zero(t, ghi, "irradiance must floor at zero below the horizon")
}

func TestClearSkyGHIAltitudeIncreases(t *testing.T) {
	coord := model.Coord{Lat: 35, Lon: -75}
	local := time.Date(2021, 8, 4, 12, 0, 0, 0, time.UTC).Unix()

	sea := ClearSkyGHI(coord, -5*3600, local, 0)
	high := ClearSkyGHI(coord, -5*3600, local, 2000)
	assert.Greater(t, high, sea, "less atmosphere above a high coordinate")
}

func TestClearSkyGHIMorningBelowNoon(t *testing.T) {
	coord := model.Coord{Lat: 35, Lon: -75}
	morning := time.Date(2021, 8, 4, 8, 0, 0, 0, time.UTC).Unix()
	noon := time.Date(2021, 8, 4, 12, 0, 0, 0, time.UTC).Unix()

	ghiMorning := ClearSkyGHI(coord, -5*3600, morning, 0)
	ghiNoon := ClearSkyGHI(coord, -5*3600, noon, 0)
	assert.Greater(t, ghiMorning, 0.0)
	assert.Greater(t, ghiNoon, ghiMorning)
}

func TestGHISeries(t *testing.T) {
	coord := model.Coord{Lat: 35, Lon: -75}
	noon := time.Date(2021, 8, 4, 12, 0, 0, 0, time.UTC).Unix()
	midnight := time.Date(2021, 8, 4, 0, 0, 0, 0, time.UTC).Unix()

	out := GHI(
		[]model.Coord{coord, coord},
		[]int64{-5 * 3600, -5 * 3600},
		[]int64{noon, midnight},
		[]float64{0, 0},
		[]float64{100, 0},
	)
	clearNoon := ClearSkyGHI(coord, -5*3600, noon, 0)
	assert.InDelta(t, clearNoon*0.35, out[0], 1e-9)
	assert.Zero(t, out[1])
}
