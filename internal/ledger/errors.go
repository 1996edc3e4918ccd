package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Common ledger loading errors
var (
	// ErrEmptyFile is returned when the uploaded file has no header row.
	ErrEmptyFile = errors.New("ledger file is empty")

	// ErrMalformedCSV is returned when the file cannot be parsed as CSV
	// under either supported encoding.
	ErrMalformedCSV = errors.New("malformed CSV input")
)

// MissingColumnsError is returned when required columns are absent after
// header normalization. It lists every missing column so the caller can
// surface the full set to the user at once.
type MissingColumnsError struct {
	Columns []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("ledger: missing required columns: %s", strings.Join(e.Columns, ", "))
}
