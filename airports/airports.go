package airports

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Airport is the metadata kept for one IATA code.
type Airport struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Store is the SQLite database airport metadata is kept in.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the airport database at path and makes
// sure the schema exists.
func Open(path string, log *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create airport data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping airport database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS airports (
			iata    TEXT PRIMARY KEY,
			name    TEXT NOT NULL,
			city    TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create airports table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of airports stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM airports").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return n, nil
}

// Upsert inserts or replaces the given airports in one transaction.
func (s *Store) Upsert(ctx context.Context, airports []Airport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO airports (iata, name, city, country)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(iata) DO UPDATE SET name = excluded.name, city = excluded.city, country = excluded.country
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range airports {
		if _, err := stmt.ExecContext(ctx, a.IATA, a.Name, a.City, a.Country); err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", a.IATA, err)
		}
	}

	return tx.Commit()
}

// ImportCSV reads "iata,name,city,country" rows (header optional) from r
// and upserts them. Rows without a three letter code or a name are skipped.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	var airports []Airport
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read airport CSV: %w", err)
		}

		a, ok := parseAirport(record)
		if !ok {
			continue
		}
		airports = append(airports, a)
	}

	if err := s.Upsert(ctx, airports); err != nil {
		return 0, err
	}

	s.log.Info("imported airports", zap.Int("count", len(airports)))
	return len(airports), nil
}

// ImportFile is ImportCSV over the file at path.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open airport CSV: %w", err)
	}
	defer file.Close()

	return s.ImportCSV(ctx, file)
}

// SeedIfEmpty imports path when the airports table has no rows yet.
func (s *Store) SeedIfEmpty(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	if _, err := s.ImportFile(ctx, path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Warn("airport seed file not found", zap.String("path", path))
			return nil
		}
		return err
	}
	return nil
}

func parseAirport(record []string) (Airport, bool) {
	if len(record) < 2 {
		return Airport{}, false
	}

	a := Airport{
		IATA: strings.ToUpper(strings.TrimSpace(record[0])),
		Name: strings.TrimSpace(record[1]),
	}
	if len(record) > 2 {
		a.City = strings.TrimSpace(record[2])
	}
	if len(record) > 3 {
		a.Country = strings.TrimSpace(record[3])
	}

	if len(a.IATA) != 3 || a.Name == "" {
		return Airport{}, false
	}
	return a, true
}

// Load reads every stored airport into a Directory.
func (s *Store) Load(ctx context.Context) (*Directory, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT iata, name, city, country FROM airports")
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	d := &Directory{airports: make(map[string]Airport)}
	for rows.Next() {
		var a Airport
		if err := rows.Scan(&a.IATA, &a.Name, &a.City, &a.Country); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		d.airports[a.IATA] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read airports: %w", err)
	}

	return d, nil
}

// Directory is an in-memory, read-only view of the airport database.
type Directory struct {
	airports map[string]Airport
}

func NewDirectory(airports []Airport) *Directory {
	d := &Directory{airports: make(map[string]Airport, len(airports))}
	for _, a := range airports {
		d.airports[strings.ToUpper(a.IATA)] = a
	}
	return d
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.airports)
}

// Lookup returns the airport for an IATA code.
func (d *Directory) Lookup(iata string) (Airport, bool) {
	if d == nil {
		return Airport{}, false
	}
	a, ok := d.airports[strings.ToUpper(strings.TrimSpace(iata))]
	return a, ok
}

// AirportName returns the full name for an IATA code.
func (d *Directory) AirportName(iata string) (string, bool) {
	a, ok := d.Lookup(iata)
	return a.Name, ok
}
