// Package risk scores how likely weather is to delay a flight.
//
// The score is a fixed additive heuristic over the origin weather, the
// scheduled departure time and the flight distance. It ranges from 0 (no
// weather risk) to 100 (severe).
package risk

import (
	"github.com/kaireichart/flight-delay-predictor/flight_data"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Penalty names, in the order Breakdown reports them.
const (
	PenaltyHighWind     = "high_wind"
	PenaltyModerateWind = "moderate_wind"
	PenaltyHeavyPrecip  = "heavy_precipitation"
	PenaltyPrecip       = "precipitation"
	PenaltySnow         = "snow"
	PenaltyLowPressure  = "low_pressure"
	PenaltyLateDepart   = "late_departure"
	PenaltyLongHaul     = "long_haul"
)

// Penalty is one term that contributed to a score.
type Penalty struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// Breakdown lists the penalties that apply to the weather and flight. Wind
// and precipitation each contribute at most one tier.
func Breakdown(w flight_data.WeatherObservation, f flight_data.FlightRecord) []Penalty {
	var p []Penalty

	switch {
	case w.Wspd > 40:
		p = append(p, Penalty{PenaltyHighWind, 30})
	case w.Wspd > 25:
		p = append(p, Penalty{PenaltyModerateWind, 15})
	}

	switch {
	case w.Prcp > 15:
		p = append(p, Penalty{PenaltyHeavyPrecip, 35})
	case w.Prcp > 0:
		p = append(p, Penalty{PenaltyPrecip, 10})
	}

	if w.Snow > 0 {
		p = append(p, Penalty{PenaltySnow, 40})
	}
	if w.Pres < 1005 {
		p = append(p, Penalty{PenaltyLowPressure, 15})
	}
	if f.DepTime > 1800 {
		p = append(p, Penalty{PenaltyLateDepart, 5})
	}
	if f.Distance > 2000 {
		p = append(p, Penalty{PenaltyLongHaul, 5})
	}

	return p
}

// Score returns the weather delay risk for a flight, clamped to [0, 100].
func Score(w flight_data.WeatherObservation, f flight_data.FlightRecord) float64 {
	total := 0.0
	for _, p := range Breakdown(w, f) {
		total += p.Points
	}
	return Clamp(total)
}

// Clamp limits score to [MinScore, MaxScore].
func Clamp(score float64) float64 {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
