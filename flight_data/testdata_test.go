package flight_data

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleHeader = " Year , Month,DayofMonth,Quarter,Flight_Number_Reporting_Airline,Origin,Dest,Distance,CRSDepTime,tavg,prcp,snow,wspd,pres,weatherScore"

func csvBody(rows ...string) string {
	return sampleHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func writeGzip(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flight_data.csv.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())
	return path
}

func testEncoders() *Encoders {
	return NewEncoders(map[string][]string{
		ColumnOrigin: {"ATL", "DAL", "HOU", "MDW"},
	})
}

type staticAirports map[string]string

func (a staticAirports) AirportName(iata string) (string, bool) {
	name, ok := a[iata]
	return name, ok
}

func mustRead(t *testing.T, body string, opts LoadOptions) *Dataset {
	t.Helper()
	ds, err := ReadDataset(strings.NewReader(body), opts)
	require.NoError(t, err)
	return ds
}
