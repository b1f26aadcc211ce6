package ranking

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ranking errors.
var (
	ErrMissingColumn = errors.New("missing column")
	ErrNoData        = errors.New("no data")
)

// MissingColumnError names the expected column absent from the table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// Is reports ErrMissingColumn as the error kind.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}
