package mock_schedule

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/risk"
)

// FlightsPerSchedule is how many upcoming flights a lookup returns.
const FlightsPerSchedule = 3

// Route is a city pair the mock schedule can fly.
type Route struct {
	Origin   string
	Dest     string
	Distance float64
}

var Routes = []Route{
	{"DAL", "HOU", 239},
	{"MDW", "LGA", 733},
	{"PHX", "LAX", 370},
	{"DEN", "SFO", 967},
	{"BWI", "MCO", 787},
	{"ATL", "DAL", 721},
}

var departureMinutes = []int{0, 15, 30, 45}

// Generator produces mock schedules and weather. It is safe for concurrent
// use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Schedule simulates looking up the next days' departures of flightNumber.
func (g *Generator) Schedule(flightNumber string) []flight_data.FlightRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	number := strings.ToUpper(strings.TrimSpace(flightNumber))
	airline := "AA"
	if strings.Contains(number, "WN") {
		airline = "WN"
	}

	today := g.now()
	schedule := make([]flight_data.FlightRecord, 0, FlightsPerSchedule)
	for i := 1; i <= FlightsPerSchedule; i++ {
		route := Routes[g.rng.Intn(len(Routes))]
		hour := 6 + g.rng.Intn(16)
		minute := departureMinutes[g.rng.Intn(len(departureMinutes))]

		schedule = append(schedule, flight_data.FlightRecord{
			ID:           i,
			Source:       flight_data.SourceMock,
			FlightNumber: number,
			Airline:      airline,
			Origin:       route.Origin,
			Dest:         route.Dest,
			Distance:     route.Distance,
			DepTime:      hour*100 + minute,
			Date:         today.AddDate(0, 0, i).Format("January 02, 2006"),
		})
	}

	return schedule
}

// Weather draws a random observation. Precipitation and snow take a few
// discrete values so that dry days dominate.
func (g *Generator) Weather() flight_data.WeatherObservation {
	g.mu.Lock()
	defer g.mu.Unlock()

	return flight_data.WeatherObservation{
		Tavg: g.uniform(-5, 35),
		Tmin: g.uniform(-10, 25),
		Tmax: g.uniform(0, 40),
		Prcp: g.weighted([]float64{0, 5, 25}, []float64{0.7, 0.2, 0.1}),
		Snow: g.weighted([]float64{0, 10}, []float64{0.9, 0.1}),
		Wspd: g.uniform(5, 45),
		Pres: g.uniform(995, 1030),
	}
}

// OnTimeScore is the noisy on-time probability shown for mock flights:
// OnTimeBase minus up to three points of model uncertainty either way,
// clamped to [0, 100].
func (g *Generator) OnTimeScore(w flight_data.WeatherObservation, f flight_data.FlightRecord) float64 {
	g.mu.Lock()
	noise := g.uniform(-3, 3)
	g.mu.Unlock()

	return risk.Clamp(OnTimeBase(w, f) + noise)
}

// OnTimeBase is the deterministic part of OnTimeScore: 100 with a penalty
// per adverse condition.
func OnTimeBase(w flight_data.WeatherObservation, f flight_data.FlightRecord) float64 {
	score := 100.0

	switch {
	case w.Wspd > 40:
		score -= 25
	case w.Wspd > 25:
		score -= 10
	}

	switch {
	case w.Prcp > 15:
		score -= 30
	case w.Prcp > 0:
		score -= 10
	}

	if w.Snow > 0 {
		score -= 40
	}
	if w.Pres < 1000 {
		score -= 15
	}
	if f.DepTime > 1900 {
		score -= 5
	}

	return score
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) weighted(values, weights []float64) float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := g.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return values[i]
		}
		r -= w
	}
	return values[len(values)-1]
}
