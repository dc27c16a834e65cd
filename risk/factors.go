package risk

import "github.com/kaireichart/flight-delay-predictor/flight_data"

// FactorKind names a contributing factor shown next to a score.
type FactorKind string

const (
	FactorHighWinds      FactorKind = "high_winds"
	FactorLowPressure    FactorKind = "low_pressure"
	FactorPrecipitation  FactorKind = "precipitation"
	FactorSnowfall       FactorKind = "snowfall"
	FactorLongHaul       FactorKind = "long_haul"
	FactorLateDeparture  FactorKind = "late_departure"
	FactorMildTemps      FactorKind = "mild_temps"
	FactorCalmWinds      FactorKind = "calm_winds"
	FactorStablePressure FactorKind = "stable_pressure"
	FactorNoPrecip       FactorKind = "no_precipitation"
)

// Factor is a condition that pushes the risk up or down. Value holds the
// metric reading the factor was triggered by, in the observation's units.
type Factor struct {
	Kind  FactorKind `json:"kind"`
	Value float64    `json:"value"`
}

// Factors splits the conditions of a flight into those that increase and
// those that decrease the risk.
func Factors(w flight_data.WeatherObservation, f flight_data.FlightRecord) (increasing, decreasing []Factor) {
	if w.Wspd > 25 {
		increasing = append(increasing, Factor{FactorHighWinds, w.Wspd})
	}
	if w.Pres < 1005 {
		increasing = append(increasing, Factor{FactorLowPressure, w.Pres})
	}
	if w.Prcp > 0 {
		increasing = append(increasing, Factor{FactorPrecipitation, w.Prcp})
	}
	if w.Snow > 0 {
		increasing = append(increasing, Factor{FactorSnowfall, w.Snow})
	}
	if f.Distance > 2000 {
		increasing = append(increasing, Factor{FactorLongHaul, f.Distance})
	}
	if f.DepTime > 1800 {
		increasing = append(increasing, Factor{FactorLateDeparture, float64(f.DepTime)})
	}

	if w.Tavg > 15 && w.Tavg < 30 {
		decreasing = append(decreasing, Factor{FactorMildTemps, w.Tavg})
	}
	if w.Wspd < 15 {
		decreasing = append(decreasing, Factor{FactorCalmWinds, w.Wspd})
	}
	if w.Pres >= 1015 {
		decreasing = append(decreasing, Factor{FactorStablePressure, w.Pres})
	}
	if w.Prcp == 0 {
		decreasing = append(decreasing, Factor{FactorNoPrecip, w.Prcp})
	}

	return increasing, decreasing
}
