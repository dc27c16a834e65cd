package dashboard

import (
	"fmt"

	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/risk"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func KmhToMph(kmh float64) float64 {
	return kmh * 0.621371
}

func HpaToInHg(hpa float64) float64 {
	return hpa * 0.02953
}

func MmToIn(mm float64) float64 {
	return mm * 0.03937
}

func CelsiusToF(c float64) float64 {
	return c*9/5 + 32
}

// FormatDepTime renders an HHMM integer as "HH:MM".
func FormatDepTime(hhmm int) string {
	if hhmm < 0 {
		hhmm = 0
	}
	return fmt.Sprintf("%02d:%02d", hhmm/100%100, hhmm%100)
}

// FormatDistance renders whole miles with thousands separators.
func FormatDistance(miles float64) string {
	return printer.Sprintf("%d mi", int(miles))
}

// formatReading prints a converted reading with one decimal, or a bare
// zero when there is nothing to report.
func formatReading(v float64, unit string) string {
	if v == 0 {
		return "0 " + unit
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

// AirportDisplay names an airport for the details card, flagging codes the
// directory has no entry for.
func AirportDisplay(names flight_data.AirportNames, code string) string {
	if names != nil {
		if name, ok := names.AirportName(code); ok && name != "" {
			return fmt.Sprintf("%s (%s)", name, code)
		}
	}
	return code + " (Info Missing)"
}

// FactorText is the bullet shown for a contributing factor.
func FactorText(f risk.Factor) string {
	switch f.Kind {
	case risk.FactorHighWinds:
		return fmt.Sprintf("High Winds (%.1f mph)", KmhToMph(f.Value))
	case risk.FactorLowPressure:
		return fmt.Sprintf("Low Pressure (%.1f inHg)", HpaToInHg(f.Value))
	case risk.FactorPrecipitation:
		return fmt.Sprintf("Precipitation (%.1f in)", MmToIn(f.Value))
	case risk.FactorSnowfall:
		return fmt.Sprintf("Snowfall (%.1f in)", MmToIn(f.Value))
	case risk.FactorLongHaul:
		return "Long Haul Flight"
	case risk.FactorLateDeparture:
		return "Late Evening Departure"
	case risk.FactorMildTemps:
		return fmt.Sprintf("Mild Temps (%.0f°F)", CelsiusToF(f.Value))
	case risk.FactorCalmWinds:
		return "Calm Winds"
	case risk.FactorStablePressure:
		return "Stable Pressure"
	case risk.FactorNoPrecip:
		return "No Precipitation"
	default:
		return string(f.Kind)
	}
}

// WeatherRow is one line of the weather card.
type WeatherRow struct {
	Label string
	Value string
}

func WeatherRows(w flight_data.WeatherObservation) []WeatherRow {
	return []WeatherRow{
		{"Temp", fmt.Sprintf("%.0f °F", CelsiusToF(w.Tavg))},
		{"Wind", formatReading(KmhToMph(w.Wspd), "mph")},
		{"Precip", formatReading(MmToIn(w.Prcp), "in")},
		{"Pressure", formatReading(HpaToInHg(w.Pres), "inHg")},
		{"Snow", formatReading(MmToIn(w.Snow), "in")},
	}
}
