package flight_data

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Columns of the historical flight dataset.
const (
	ColumnFlightNumber = "Flight_Number_Reporting_Airline"
	ColumnOrigin       = "Origin"
	ColumnDest         = "Dest"
	ColumnDistance     = "Distance"
	ColumnDepTime      = "CRSDepTime"
	ColumnYear         = "Year"
	ColumnMonth        = "Month"
	ColumnDay          = "DayofMonth"
	ColumnQuarter      = "Quarter"
	ColumnTavg         = "tavg"
	ColumnPrcp         = "prcp"
	ColumnSnow         = "snow"
	ColumnWspd         = "wspd"
	ColumnPres         = "pres"
)

// MaxRows is the hard cap on data rows read from a dataset file.
const MaxRows = 50000

// LoadOptions controls how a dataset file is read.
type LoadOptions struct {
	MaxRows             int
	ScoreColumn         string
	FilterPositiveScore bool
}

func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		MaxRows:             MaxRows,
		ScoreColumn:         "weatherScore",
		FilterPositiveScore: true,
	}
}

// Dataset is a read-only table of flight rows.
type Dataset struct {
	Path        string
	ScoreColumn string

	frame   dataframe.DataFrame
	columns map[string]int
	rows    [][]string
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

func (d *Dataset) Columns() []string {
	return d.frame.Names()
}

func (d *Dataset) HasColumn(column string) bool {
	_, ok := d.columns[column]
	return ok
}

// Value returns the cell of column in row, or "" when the column does not
// exist or row is out of range.
func (d *Dataset) Value(row int, column string) string {
	idx, ok := d.columns[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return ""
	}
	return d.rows[row][idx]
}

// Scores returns the precomputed score column as floats. Missing cells are
// NaN. The result is nil when the dataset has no score column.
func (d *Dataset) Scores() []float64 {
	if d.ScoreColumn == "" || !d.HasColumn(d.ScoreColumn) {
		return nil
	}
	return d.frame.Col(d.ScoreColumn).Float()
}

// ReadDataset parses delimited flight data from r. Gzip input is detected by
// its magic bytes. At most opts.MaxRows data rows are read.
func ReadDataset(r io.Reader, opts LoadOptions) (*Dataset, error) {
	records, err := readRecords(r, opts.MaxRows)
	if err != nil {
		return nil, err
	}

	header := records[0]
	hasScore := opts.ScoreColumn != "" && containsString(header, opts.ScoreColumn)

	types := map[string]series.Type{}
	if hasScore {
		types[opts.ScoreColumn] = series.Float
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to build data frame: %w", frame.Err)
	}

	if hasScore && opts.FilterPositiveScore {
		frame, err = filterPositive(frame, opts.ScoreColumn)
		if err != nil {
			return nil, err
		}
	}

	ds := &Dataset{frame: frame, columns: make(map[string]int)}
	if hasScore {
		ds.ScoreColumn = opts.ScoreColumn
	}
	for i, name := range frame.Names() {
		ds.columns[name] = i
	}
	if all := frame.Records(); len(all) > 1 {
		ds.rows = all[1:]
	}

	return ds, nil
}

// filterPositive keeps rows whose score column is greater than zero. Missing
// scores are NaN and never pass.
func filterPositive(frame dataframe.DataFrame, column string) (dataframe.DataFrame, error) {
	kept := 0
	for _, v := range frame.Col(column).Float() {
		if v > 0 {
			kept++
		}
	}

	switch kept {
	case frame.Nrow():
		return frame, nil
	case 0:
		// nothing to keep, build an empty frame with the same columns
		return emptyFrame(frame), nil
	}

	filtered := frame.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.Greater,
		Comparando: 0.0,
	})
	if filtered.Err != nil {
		return frame, fmt.Errorf("failed to filter on %s: %w", column, filtered.Err)
	}
	return filtered, nil
}

func emptyFrame(frame dataframe.DataFrame) dataframe.DataFrame {
	cols := make([]series.Series, 0, frame.Ncol())
	for _, name := range frame.Names() {
		col := frame.Col(name)
		cols = append(cols, series.New([]string{}, col.Type(), name))
	}
	return dataframe.New(cols...)
}

func readRecords(r io.Reader, maxRows int) ([][]string, error) {
	if maxRows <= 0 || maxRows > MaxRows {
		maxRows = MaxRows
	}

	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	csvReader := csv.NewReader(src)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := [][]string{header}
	for len(records)-1 < maxRows {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, fitRecord(record, len(header)))
	}

	if len(records) < 2 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}

// fitRecord pads or truncates record to n fields.
func fitRecord(record []string, n int) []string {
	if len(record) == n {
		return record
	}
	fitted := make([]string, n)
	copy(fitted, record)
	return fitted
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// Loader reads dataset files once per path and hands out the cached result
// for the lifetime of the process.
type Loader struct {
	opts LoadOptions

	mu    sync.Mutex
	cache map[string]*Dataset
	loads int
}

func NewLoader(opts LoadOptions) *Loader {
	return &Loader{opts: opts, cache: make(map[string]*Dataset)}
}

// Load returns the dataset at path, reading it on first use. Failed loads
// are not cached.
func (l *Loader) Load(path string) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ds, ok := l.cache[path]; ok {
		return ds, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetMissing, path)
		}
		return nil, fmt.Errorf("failed to open flight data: %w", err)
	}
	defer file.Close()

	l.loads++
	ds, err := ReadDataset(file, l.opts)
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", path, err)
	}
	ds.Path = path
	l.cache[path] = ds

	return ds, nil
}
