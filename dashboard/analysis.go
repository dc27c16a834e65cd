package dashboard

import (
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/risk"
)

// Analysis is everything the result page and the export show for a flight.
type Analysis struct {
	Record flight_data.FlightRecord

	// Headline is the score displayed large: the precomputed score for
	// dataset rows that carry one, the on-time probability for mock
	// flights and the heuristic otherwise.
	Headline      float64
	HeadlineLabel string
	OnTime        bool

	Heuristic  float64
	Band       risk.Band
	Breakdown  []risk.Penalty
	Increasing []risk.Factor
	Decreasing []risk.Factor
}

const (
	labelRisk   = "Weather Delay Risk (0=Best, 100=Worst)"
	labelOnTime = "On-Time Probability Score"
)

// Analyze scores a selected flight. onTime is only used for mock flights.
func Analyze(rec flight_data.FlightRecord, onTime float64) Analysis {
	w := rec.Weather
	a := Analysis{
		Record:        rec,
		Heuristic:     risk.Score(w, rec),
		Breakdown:     risk.Breakdown(w, rec),
		HeadlineLabel: labelRisk,
	}
	a.Increasing, a.Decreasing = risk.Factors(w, rec)

	switch {
	case rec.Source == flight_data.SourceMock:
		a.OnTime = true
		a.Headline = risk.Clamp(onTime)
		a.HeadlineLabel = labelOnTime
		a.Band = risk.Band3(risk.MaxScore - a.Headline)
	case rec.HasTrueScore:
		a.Headline = risk.Clamp(rec.TrueScore)
		a.Band = risk.Band5(a.Headline)
	default:
		a.Headline = a.Heuristic
		a.Band = risk.Band5(a.Headline)
	}

	return a
}
