package flight_data

import (
	"fmt"
	"strings"
	"time"
)

// AirportNames looks up the full name of an airport by IATA code.
type AirportNames interface {
	AirportName(iata string) (string, bool)
}

// Resolver answers flight and route questions against one dataset.
type Resolver struct {
	Dataset  *Dataset
	Encoders *Encoders
	Airports AirportNames
	Prefix   string
}

func NewResolver(ds *Dataset, enc *Encoders, airports AirportNames, prefix string) *Resolver {
	return &Resolver{Dataset: ds, Encoders: enc, Airports: airports, Prefix: prefix}
}

// FlightNumber returns the display flight number of row.
func (r *Resolver) FlightNumber(row int) string {
	return NormalizeFlightNumber(r.Dataset.Value(row, ColumnFlightNumber), r.Prefix)
}

// FindRoutes lists the routes flown under flightNumber, one entry per
// distinct label in the order rows first produce it.
func (r *Resolver) FindRoutes(flightNumber string) []Route {
	routes := []Route{}
	seen := make(map[string]bool)

	for row := 0; row < r.Dataset.Len(); row++ {
		if r.FlightNumber(row) != flightNumber {
			continue
		}

		label := r.RouteLabel(row)
		if seen[label] {
			continue
		}
		seen[label] = true
		routes = append(routes, Route{Label: label, Index: row})
	}

	return routes
}

// RouteLabel formats the origin and destination of row as "A → B".
func (r *Resolver) RouteLabel(row int) string {
	origin := r.decode(row, ColumnOrigin)
	dest := r.decode(row, ColumnDest)
	return fmt.Sprintf("%s → %s", r.AirportLabel(origin), r.AirportLabel(dest))
}

// AirportLabel renders a decoded code as "Name (IATA)" when the directory
// knows it and as the bare code otherwise. Raw values are shown unchanged.
func (r *Resolver) AirportLabel(code AirportCode) string {
	if !code.IsDecoded() {
		return code.Value
	}
	if r.Airports != nil {
		if name, ok := r.Airports.AirportName(code.Value); ok && name != "" {
			return fmt.Sprintf("%s (%s)", name, code.Value)
		}
	}
	return code.Value
}

func (r *Resolver) decode(row int, column string) AirportCode {
	raw := r.Dataset.Value(row, column)
	if isMissing(raw) {
		return Raw(NotAvailable)
	}
	return r.Encoders.Decode(column, raw)
}

// BuildRecord materializes row as a FlightRecord for the result page.
func (r *Resolver) BuildRecord(row int) (FlightRecord, error) {
	ds := r.Dataset
	if row < 0 || row >= ds.Len() {
		return FlightRecord{}, fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}

	record := FlightRecord{
		ID:           row,
		Source:       SourceCSV,
		FlightNumber: r.FlightNumber(row),
		Airline:      r.Prefix,
		Origin:       r.decode(row, ColumnOrigin).Value,
		Dest:         r.decode(row, ColumnDest).Value,
		Distance:     SafeFloat(ds.Value(row, ColumnDistance)),
		DepTime:      SafeInt(ds.Value(row, ColumnDepTime)),
		Date:         dateLabel(ds, row),
		Weather: WeatherObservation{
			Tavg: SafeFloat(ds.Value(row, ColumnTavg)),
			Prcp: SafeFloat(ds.Value(row, ColumnPrcp)),
			Snow: SafeFloat(ds.Value(row, ColumnSnow)),
			Wspd: SafeFloat(ds.Value(row, ColumnWspd)),
			Pres: SafeFloat(ds.Value(row, ColumnPres)),
		},
	}

	// an empty score cell means the row has no precomputed value
	if ds.ScoreColumn != "" {
		if score, ok := parseFloat(ds.Value(row, ds.ScoreColumn)); ok {
			record.TrueScore = score
			record.HasTrueScore = true
		}
	}

	return record, nil
}

// dateLabel renders the flight date as "January 02, 2006", or as
// "Q<quarter> Day <day>" when the calendar fields do not form a real date.
func dateLabel(ds *Dataset, row int) string {
	year, okY := parseInt(ds.Value(row, ColumnYear))
	month, okM := parseInt(ds.Value(row, ColumnMonth))
	day, okD := parseInt(ds.Value(row, ColumnDay))

	if okY && okM && okD && month >= 1 && month <= 12 {
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() == day && int(t.Month()) == month {
			return t.Format("January 02, 2006")
		}
	}

	return fmt.Sprintf("Q%s Day %s", orNA(ds.Value(row, ColumnQuarter)), orNA(ds.Value(row, ColumnDay)))
}

func orNA(value string) string {
	if isMissing(value) {
		return NotAvailable
	}
	if n, ok := parseInt(value); ok {
		return fmt.Sprintf("%d", n)
	}
	return strings.TrimSpace(value)
}
