package flight_data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// CodeKind tells whether an airport value was decoded through the label
// encoders or kept as stored.
type CodeKind int

const (
	CodeRaw CodeKind = iota
	CodeDecoded
)

// AirportCode is the result of decoding a stored origin/destination value.
type AirportCode struct {
	Kind  CodeKind
	Value string
}

func Decoded(code string) AirportCode { return AirportCode{Kind: CodeDecoded, Value: code} }

func Raw(value string) AirportCode { return AirportCode{Kind: CodeRaw, Value: value} }

func (c AirportCode) IsDecoded() bool { return c.Kind == CodeDecoded }

func (c AirportCode) String() string { return c.Value }

// Encoders maps a column name to the ordered category list its integer
// encoding indexes into.
type Encoders struct {
	classes map[string][]string
}

func NewEncoders(classes map[string][]string) *Encoders {
	return &Encoders{classes: classes}
}

// LoadEncoders reads a JSON label-encoder file of the form
// {"Origin": ["ABQ", "ALB", ...]}. Other columns may be present.
func LoadEncoders(path string) (*Encoders, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrEncodersMissing, path)
		}
		return nil, fmt.Errorf("failed to open label encoders: %w", err)
	}
	defer file.Close()

	return ReadEncoders(file)
}

func ReadEncoders(r io.Reader) (*Encoders, error) {
	classes := make(map[string][]string)
	if err := json.NewDecoder(r).Decode(&classes); err != nil {
		return nil, fmt.Errorf("failed to decode label encoders: %w", err)
	}
	return NewEncoders(classes), nil
}

// Classes returns the category list for column. Origin and destination
// share one airport vocabulary, so destination codes always decode through
// the origin encoder even when the file carries a separate Dest list.
func (e *Encoders) Classes(column string) []string {
	if e == nil {
		return nil
	}
	if column == ColumnDest {
		column = ColumnOrigin
	}
	return e.classes[column]
}

// Decode resolves an integer-encoded value of column to its airport code.
// Values that are not numbers or fall outside the category list come back as
// Raw so callers can still display them.
func (e *Encoders) Decode(column, raw string) AirportCode {
	idx, ok := parseInt(raw)
	if !ok {
		return Raw(raw)
	}
	classes := e.Classes(column)
	if idx < 0 || idx >= len(classes) {
		return Raw(raw)
	}
	return Decoded(classes[idx])
}
