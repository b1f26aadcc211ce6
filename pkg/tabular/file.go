package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadFile parses r according to the extension of name: .xlsx workbooks via
// ReadXLSX, .csv and .txt through the Tolerant strategies. Other extensions
// return an error wrapping ErrUnsupportedFormat.
func ReadFile(name string, r io.Reader) (Result, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx":
		return ReadXLSX(r)
	case ".csv", ".txt":
		return ParseReader(r, Tolerant)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
