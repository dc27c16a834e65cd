package flight_data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFlightNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2606.0", "WN2606"},
		{"2606", "WN2606"},
		{" 28 ", "WN28"},
		{"AB12", "WNAB12"},
		{"", NotAvailable},
		{"NaN", NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFlightNumber(tt.raw, "WN"))
		})
	}
}

func TestEncoders_Decode(t *testing.T) {
	enc := testEncoders()

	got := enc.Decode(ColumnOrigin, "2.0")
	assert.True(t, got.IsDecoded())
	assert.Equal(t, "HOU", got.Value)

	// Dest shares the origin vocabulary
	assert.Equal(t, Decoded("MDW"), enc.Decode(ColumnDest, "3"))

	assert.Equal(t, Raw("99"), enc.Decode(ColumnOrigin, "99"))
	assert.Equal(t, Raw("-1"), enc.Decode(ColumnOrigin, "-1"))
	assert.Equal(t, Raw("LAX"), enc.Decode(ColumnOrigin, "LAX"))

	var none *Encoders
	assert.Equal(t, Raw("1"), none.Decode(ColumnOrigin, "1"))
}

func TestReadEncoders(t *testing.T) {
	enc, err := ReadEncoders(stringsReader(`{"Origin": ["ATL", "BWI"], "Dest": ["SFO"]}`))
	require.NoError(t, err)

	assert.Equal(t, Decoded("BWI"), enc.Decode(ColumnOrigin, "1"))
	// a separate Dest list is ignored, both ends use the origin vocabulary
	assert.Equal(t, Decoded("ATL"), enc.Decode(ColumnDest, "0"))
	assert.Equal(t, Decoded("BWI"), enc.Decode(ColumnDest, "1"))
	assert.Equal(t, Raw("2"), enc.Decode(ColumnDest, "2"))
}

func TestLoadEncoders_Missing(t *testing.T) {
	_, err := LoadEncoders(t.TempDir() + "/label_encoders.json")
	assert.ErrorIs(t, err, ErrEncodersMissing)
}

func TestFindRoutes_DeduplicatesByLabel(t *testing.T) {
	body := csvBody(
		"2024,1,5,1,2606.0,1,2,239,1830,10,0,0,12,1012,15",
		"2024,1,6,1,2606.0,1,2,239,1830,10,0,0,12,1012,15",
		"2024,1,7,1,2606.0,0,1,721,900,10,0,0,12,1012,15",
		"2024,1,8,1,1492.0,3,0,733,900,10,0,0,12,1012,15",
	)
	ds := mustRead(t, body, DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), staticAirports{"DAL": "Dallas Love Field"}, "WN")

	routes := r.FindRoutes("WN2606")

	require.Len(t, routes, 2)
	assert.Equal(t, Route{Label: "Dallas Love Field (DAL) → HOU", Index: 0}, routes[0])
	assert.Equal(t, Route{Label: "ATL → Dallas Love Field (DAL)", Index: 2}, routes[1])
}

func TestFindRoutes_NoMatch(t *testing.T) {
	ds := mustRead(t, csvBody("2024,1,5,1,2606.0,1,2,239,1830,10,0,0,12,1012,15"), DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	routes := r.FindRoutes("WN1")
	assert.NotNil(t, routes)
	assert.Empty(t, routes)
}

func TestFindRoutes_KeepsUndecodableRows(t *testing.T) {
	body := csvBody(
		"2024,1,5,1,77,42,LAX,239,1830,10,0,0,12,1012,15",
		"2024,1,5,1,77,,1,239,1830,10,0,0,12,1012,15",
	)
	ds := mustRead(t, body, DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	routes := r.FindRoutes("WN77")

	require.Len(t, routes, 2)
	assert.Equal(t, "42 → LAX", routes[0].Label)
	assert.Equal(t, "N/A → DAL", routes[1].Label)
}

func TestBuildRecord(t *testing.T) {
	body := csvBody(
		"2024,3,9,1,2606.0,1,2,2239,1930,18.5,3.2,0,27,1001,45",
		"2019,2,31,1,88,0,3,500,700,,abc,0,5,1020,5",
	)
	ds := mustRead(t, body, DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	rec, err := r.BuildRecord(0)
	require.NoError(t, err)
	assert.Equal(t, SourceCSV, rec.Source)
	assert.Equal(t, "WN2606", rec.FlightNumber)
	assert.Equal(t, "DAL", rec.Origin)
	assert.Equal(t, "HOU", rec.Dest)
	assert.Equal(t, 2239.0, rec.Distance)
	assert.Equal(t, 1930, rec.DepTime)
	assert.Equal(t, "March 09, 2024", rec.Date)
	assert.Equal(t, WeatherObservation{Tavg: 18.5, Prcp: 3.2, Snow: 0, Wspd: 27, Pres: 1001}, rec.Weather)
	assert.True(t, rec.HasTrueScore)
	assert.Equal(t, 45.0, rec.TrueScore)

	rec, err = r.BuildRecord(1)
	require.NoError(t, err)
	assert.Equal(t, "Q1 Day 31", rec.Date)
	assert.Equal(t, 0.0, rec.Weather.Tavg)
	assert.Equal(t, 0.0, rec.Weather.Prcp)

	_, err = r.BuildRecord(5)
	assert.ErrorIs(t, err, ErrRowOutOfRange)
}

func TestBuildRecord_EmptyScoreCell(t *testing.T) {
	body := csvBody(
		"2024,3,9,1,1,0,1,2500,1930,10,20,0,45,1010,",
		"2024,3,10,1,2,0,1,2500,1930,10,20,0,45,1010,0",
	)
	opts := DefaultLoadOptions()
	opts.FilterPositiveScore = false
	r := NewResolver(mustRead(t, body, opts), testEncoders(), nil, "WN")

	rec, err := r.BuildRecord(0)
	require.NoError(t, err)
	assert.False(t, rec.HasTrueScore)
	assert.Equal(t, 0.0, rec.TrueScore)

	// a real zero is still a precomputed value
	rec, err = r.BuildRecord(1)
	require.NoError(t, err)
	assert.True(t, rec.HasTrueScore)
	assert.Equal(t, 0.0, rec.TrueScore)
}
