package tabular

import "errors"

// Sentinel kinds for this package. These allow errors.Is from callers.
var (
	// ErrNoStrategy means no encoding/delimiter combination produced more
	// than one column.
	ErrNoStrategy = errors.New("no parse strategy produced a table")
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedFormat means the file extension is not a known table format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
