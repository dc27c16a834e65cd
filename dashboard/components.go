package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/risk"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const pageTitle = "Flight Delay Predictor"

type LandingView struct {
	Error       string
	Flights     []string
	Selected    string
	Routes      []flight_data.Route
	DefaultMock string
}

type SelectionCard struct {
	ID           int
	FlightNumber string
	Origin       string
	Dest         string
	Date         string
	Departs      string
}

type SelectionView struct {
	Flights []SelectionCard
}

type ResultView struct {
	FlightNumber   string
	HeadlineLabel  string
	Headline       string
	ShowHeuristic  bool
	Heuristic      string
	HeuristicTitle string
	Gauge          template.HTML
	Band           risk.Band
	Increasing     []string
	Decreasing     []string
	Origin         string
	Dest           string
	Distance       string
	Departs        string
	Date           string
	Weather        []WeatherRow
}

type layoutData struct {
	Title string
	Body  template.HTML
}

// Page wraps body in the document layout.
func Page(body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := templ.ToGoHTML(ctx, body)
		if err != nil {
			return fmt.Errorf("render body: %w", err)
		}
		return templates.ExecuteTemplate(w, "layout", layoutData{Title: pageTitle, Body: html})
	})
}

func Landing(v LandingView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("landing"), v)
}

func Selection(v SelectionView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("selection"), v)
}

func Result(v ResultView) templ.Component {
	return templ.FromGoHTML(templates.Lookup("result"), v)
}

func RouteOptions(routes []flight_data.Route) templ.Component {
	return templ.FromGoHTML(templates.Lookup("routes"), routes)
}

func selectionView(schedule []flight_data.FlightRecord) SelectionView {
	v := SelectionView{Flights: make([]SelectionCard, 0, len(schedule))}
	for _, f := range schedule {
		v.Flights = append(v.Flights, SelectionCard{
			ID:           f.ID,
			FlightNumber: f.FlightNumber,
			Origin:       f.Origin,
			Dest:         f.Dest,
			Date:         f.Date,
			Departs:      FormatDepTime(f.DepTime),
		})
	}
	return v
}

func resultView(ctx context.Context, a Analysis, names flight_data.AirportNames) (ResultView, error) {
	rec := a.Record

	steps := riskSteps()
	barColor := a.Band.Color
	if a.OnTime {
		steps = onTimeSteps
	}
	gauge, err := templ.ToGoHTML(ctx, Gauge(a.Headline, barColor, steps))
	if err != nil {
		return ResultView{}, fmt.Errorf("render gauge: %w", err)
	}

	v := ResultView{
		FlightNumber:   rec.FlightNumber,
		HeadlineLabel:  a.HeadlineLabel,
		Headline:       fmt.Sprintf("%.1f", a.Headline),
		ShowHeuristic:  a.OnTime || rec.HasTrueScore,
		Heuristic:      fmt.Sprintf("%.1f", a.Heuristic),
		HeuristicTitle: risk.Band5(a.Heuristic).Title,
		Gauge:          gauge,
		Band:           a.Band,
		Origin:         AirportDisplay(names, rec.Origin),
		Dest:           AirportDisplay(names, rec.Dest),
		Distance:       FormatDistance(rec.Distance),
		Departs:        FormatDepTime(rec.DepTime),
		Date:           rec.Date,
		Weather:        WeatherRows(rec.Weather),
	}
	for _, f := range a.Increasing {
		v.Increasing = append(v.Increasing, FactorText(f))
	}
	for _, f := range a.Decreasing {
		v.Decreasing = append(v.Decreasing, FactorText(f))
	}

	return v, nil
}
