package flight_data

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRow(year, month, flight int) string {
	return fmt.Sprintf("%d,%d,1,1,%d,1,2,239,1830,10,0,0,12,1012,15", year, month, flight)
}

func TestSampleFlights_BucketsAndTarget(t *testing.T) {
	rows := []string{
		sampleRow(2024, 1, 2606), // blocklisted
		sampleRow(2024, 1, 1),
		sampleRow(2024, 1, 2), // same month as 1
		sampleRow(2024, 2, 3),
		sampleRow(2024, 3, 4),
		sampleRow(2024, 4, 5), // bucket full
		sampleRow(2023, 1, 6),
		sampleRow(2017, 6, 7),
		sampleRow(2016, 6, 8),
		sampleRow(2010, 1, 9),
	}
	for i := 0; i < 20; i++ {
		rows = append(rows, sampleRow(2012, 1, 100+i))
	}
	ds := mustRead(t, csvBody(rows...), DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	got := r.SampleFlights(DefaultSamplingPolicy())

	require.Len(t, got, 14)
	assert.NotContains(t, got, "WN2606")
	for _, want := range []string{"WN1", "WN3", "WN4", "WN6", "WN7", "WN8"} {
		assert.Contains(t, got, want)
	}

	seen := map[string]bool{}
	for _, f := range got {
		assert.False(t, seen[f], "duplicate %s", f)
		seen[f] = true
	}

	// top-up walks rows in order, so WN2 and WN5 come in before the 2012 rows
	assert.Contains(t, got, "WN2")
	assert.Contains(t, got, "WN5")
}

func TestSampleFlights_StableOrder(t *testing.T) {
	rows := []string{}
	for i := 0; i < 30; i++ {
		rows = append(rows, sampleRow(2024, i%12+1, 500+i))
	}
	ds := mustRead(t, csvBody(rows...), DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	first := r.SampleFlights(DefaultSamplingPolicy())
	second := r.SampleFlights(DefaultSamplingPolicy())

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, shuffleKey(first[i-1]), shuffleKey(first[i]))
	}
}

func TestSampleFlights_SmallDataset(t *testing.T) {
	ds := mustRead(t, csvBody(sampleRow(2024, 1, 1), sampleRow(2024, 1, 1)), DefaultLoadOptions())
	r := NewResolver(ds, testEncoders(), nil, "WN")

	assert.Equal(t, []string{"WN1"}, r.SampleFlights(DefaultSamplingPolicy()))
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
