package dashboard

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kaireichart/flight-delay-predictor/airports"
	"github.com/kaireichart/flight-delay-predictor/events"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fixtureCSV = `Year,Month,DayofMonth,Quarter,Flight_Number_Reporting_Airline,Origin,Dest,Distance,CRSDepTime,tavg,prcp,snow,wspd,pres,weatherScore
2024,3,9,1,1,0,1,721,1930,18.5,3.2,0,27,1001,45
2023,5,2,2,2,1,2,239,800,20,0,0,10,1020,5
2024,3,10,1,1,0,1,721,1930,10,0,0,10,1020,12
2019,7,4,3,3,3,0,721,600,22,0,0,8,1018,8
`

func fixtureDirectory() *airports.Directory {
	return airports.NewDirectory([]airports.Airport{
		{IATA: "ATL", Name: "Hartsfield-Jackson Atlanta International"},
		{IATA: "DAL", Name: "Dallas Love Field"},
	})
}

func fixtureResolver(t *testing.T) *flight_data.Resolver {
	t.Helper()
	ds, err := flight_data.ReadDataset(strings.NewReader(fixtureCSV), flight_data.DefaultLoadOptions())
	require.NoError(t, err)

	enc := flight_data.NewEncoders(map[string][]string{
		flight_data.ColumnOrigin: {"ATL", "DAL", "HOU", "MDW"},
	})
	return flight_data.NewResolver(ds, enc, fixtureDirectory(), "WN")
}

// fakeMock returns a fixed two flight schedule with calm weather.
type fakeMock struct {
	weather flight_data.WeatherObservation
	onTime  float64
}

func (m fakeMock) Schedule(number string) []flight_data.FlightRecord {
	return []flight_data.FlightRecord{
		{ID: 1, Source: flight_data.SourceMock, FlightNumber: number, Airline: "WN", Origin: "DAL", Dest: "HOU", Distance: 239, DepTime: 630, Date: "October 15, 2026"},
		{ID: 2, Source: flight_data.SourceMock, FlightNumber: number, Airline: "WN", Origin: "MDW", Dest: "LGA", Distance: 733, DepTime: 1945, Date: "October 16, 2026"},
	}
}

func (m fakeMock) Weather() flight_data.WeatherObservation { return m.weather }

func (m fakeMock) OnTimeScore(flight_data.WeatherObservation, flight_data.FlightRecord) float64 {
	return m.onTime
}

func calmMock() fakeMock {
	return fakeMock{
		weather: flight_data.WeatherObservation{Tavg: 20, Wspd: 10, Pres: 1020},
		onTime:  97.5,
	}
}

func newTestServer(t *testing.T, deps Deps) (*httptest.Server, *http.Client) {
	t.Helper()
	events.Init(zap.NewNop())

	mux := http.NewServeMux()
	New(zap.NewNop(), deps).SetupHandlers(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func defaultDeps(t *testing.T) Deps {
	return Deps{
		Resolver: fixtureResolver(t),
		Airports: fixtureDirectory(),
		Mock:     calmMock(),
		Sampling: flight_data.DefaultSamplingPolicy(),
	}
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
