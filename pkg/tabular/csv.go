package tabular

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// WriteCSV writes t as UTF-8, comma-delimited text. Short rows are padded to
// the header width so the output is rectangular.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)
	writer.Comma = Canonical.Delimiter

	if err := writer.Write(t.Header); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for i, row := range t.Rows {
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			row = padded
		}
		if err := writer.Write(row); err != nil {
			return eris.Wrapf(err, "csv: write row %d", i+1)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "csv: flush")
	}
	return nil
}
