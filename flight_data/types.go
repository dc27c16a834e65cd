package flight_data

// Source tags where a FlightRecord came from.
const (
	SourceCSV  = "CSV"
	SourceMock = "MOCK"
)

// WeatherObservation is the weather at the origin airport used for scoring.
type WeatherObservation struct {
	Tavg float64 `json:"tavg"` // °C
	Tmin float64 `json:"tmin,omitempty"`
	Tmax float64 `json:"tmax,omitempty"`
	Prcp float64 `json:"prcp"` // mm
	Snow float64 `json:"snow"` // mm
	Wspd float64 `json:"wspd"` // km/h
	Pres float64 `json:"pres"` // hPa
}

// FlightRecord is one flight selected for analysis. Records are built once
// per selection and never modified afterwards.
type FlightRecord struct {
	ID           int                `json:"id"`
	Source       string             `json:"source"`
	FlightNumber string             `json:"flight_number"`
	Airline      string             `json:"airline,omitempty"`
	Origin       string             `json:"origin"`
	Dest         string             `json:"dest"`
	Distance     float64            `json:"distance"`
	DepTime      int                `json:"dep_time"` // HHMM
	Date         string             `json:"date"`
	Weather      WeatherObservation `json:"weather"`

	TrueScore    float64 `json:"true_score"`
	HasTrueScore bool    `json:"has_true_score"`
}

// Route is one selectable origin/destination pair for a flight number.
type Route struct {
	Label string `json:"label"`
	Index int    `json:"index"`
}
