// Package solar estimates global horizontal irradiance from solar geometry
// and attenuates it by cloud cover.
package solar

import (
	"math"
	"time"

	"github.com/kestrelsolar/simulator/core/model"
)

const (
	// solarConstant is the solar energy flux at the top of the atmosphere.
	solarConstant = 1353.0 // W/m^2

	// altitudeCoefficient scales the altitude correction of the clear-sky
	// model (Meinel formulation, elevation in km).
	altitudeCoefficient = 0.14
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// declination returns the solar declination angle in degrees for a day of
// the year (1-366).
func declination(dayOfYear int) float64 {
	return 23.45 * math.Sin(degToRad(360.0/365.0*float64(284+dayOfYear)))
}

// hourAngle returns the solar hour angle in degrees, zero at solar noon and
// negative in the morning. Local solar time is derived from local clock time
// via the longitude offset from the time-zone meridian and the equation of
// time.
func hourAngle(longitude float64, timeZoneOffset int64, localTime time.Time) float64 {
	dayOfYear := localTime.YearDay()

	// Equation of time, in minutes.
	b := degToRad(360.0 / 364.0 * float64(dayOfYear-81))
	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	// Time-zone meridian: 15 degrees per hour of UTC offset.
	lstm := 15.0 * float64(timeZoneOffset) / 3600.0
	timeCorrection := 4.0*(longitude-lstm) + eot

	clockHours := float64(localTime.Hour()) + float64(localTime.Minute())/60 +
		float64(localTime.Second())/3600
	localSolarTime := clockHours + timeCorrection/60

	return 15.0 * (localSolarTime - 12.0)
}

// cosZenith returns the cosine of the solar zenith angle.
func cosZenith(latitude, declinationDeg, hourAngleDeg float64) float64 {
	lat := degToRad(latitude)
	dec := degToRad(declinationDeg)
	ha := degToRad(hourAngleDeg)
	return math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(ha)
}

// ClearSkyGHI estimates the clear-sky global horizontal irradiance in W/m^2
// at a coordinate and local unix time. It floors at 0 whenever the sun is at
// or below the horizon.
func ClearSkyGHI(coord model.Coord, timeZoneOffset int64, localUnixTime int64, elevationM float64) float64 {
	localTime := time.Unix(localUnixTime, 0).UTC()

	dec := declination(localTime.YearDay())
	ha := hourAngle(coord.Lon, timeZoneOffset, localTime)
	cz := cosZenith(coord.Lat, dec, ha)
	if cz <= 0 {
		return 0
	}

	// Kasten-Young air mass from the zenith angle.
	zenithDeg := math.Acos(cz) * 180 / math.Pi
	airMass := 1.0 / (cz + 0.50572*math.Pow(96.07995-zenithDeg, -1.6364))

	// Clear-sky direct irradiance with an altitude correction; higher
	// elevations see less atmosphere.
	h := elevationM / 1000.0
	direct := solarConstant * ((1-altitudeCoefficient*h)*math.Pow(0.7, math.Pow(airMass, 0.678)) + altitudeCoefficient*h)

	ghi := direct * cz
	if ghi < 0 {
		return 0
	}
	return ghi
}

// CloudCoverToGHILinear attenuates clear-sky irradiance by cloud cover. At
// 0% cover the irradiance is unchanged; at 100% cover it is reduced to 35%
// of the clear-sky value; intermediate covers interpolate linearly.
func CloudCoverToGHILinear(cloudCovers, ghi []float64) []float64 {
	out := make([]float64, len(ghi))
	for i := range ghi {
		out[i] = ghi[i] * (1 - 0.65*cloudCovers[i]/100)
	}
	return out
}

// GHI computes the cloud-attenuated irradiance series for aligned arrays of
// positions, time zones, local times, elevations and cloud covers.
func GHI(coords []model.Coord, timeZones, localTimes []int64, elevations, cloudCovers []float64) []float64 {
	clearSky := make([]float64, len(coords))
	for i := range coords {
		clearSky[i] = ClearSkyGHI(coords[i], timeZones[i], localTimes[i], elevations[i])
	}
	return CloudCoverToGHILinear(cloudCovers, clearSky)
}
