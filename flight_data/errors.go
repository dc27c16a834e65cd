package flight_data

import "errors"

var (
	ErrDatasetMissing  = errors.New("flight data file not found")
	ErrEncodersMissing = errors.New("label encoder file not found")
	ErrEmptyDataset    = errors.New("no flights found in the data")
	ErrRowOutOfRange   = errors.New("row index out of range")
)
