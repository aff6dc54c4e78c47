package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is wrapped by a DataLoadError when a table has no data rows.
var ErrEmptyTable = errors.New("table has no data rows")

// ErrMissingColumn is wrapped by a DataLoadError when a required header is absent.
var ErrMissingColumn = errors.New("required column missing")

// DataLoadError reports a dataset that could not be loaded.
// Row is 1-based over data rows (0 when the failure is not row-specific).
type DataLoadError struct {
	Source string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("load %s: row %d, column %q: %v", e.Source, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func loadError(source string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Err: err}
}
