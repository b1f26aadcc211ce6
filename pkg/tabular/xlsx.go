package tabular

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first worksheet of an XLSX workbook. The first row is
// the header. Numeric cells come back as their stored value, so display
// formats such as thousands separators do not leak into the table; date and
// time cells keep their formatted text.
func ReadXLSX(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, eris.Wrap(err, "xlsx: open workbook")
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, eris.New("xlsx: workbook has no sheets")
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Result{}, eris.Wrapf(err, "xlsx: read sheet %q", sheet)
	}
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, eris.Wrapf(err, "xlsx: read sheet %q", sheet)
	}
	if len(raw) == 0 {
		return Result{}, eris.Wrapf(ErrEmptyInput, "xlsx: sheet %q", sheet)
	}

	rows := make([][]string, len(raw))
	for i := range raw {
		var shown []string
		if i < len(formatted) {
			shown = formatted[i]
		}
		rows[i] = mergeRow(raw[i], shown)
	}

	return Result{
		Table:    Table{Header: rows[0], Rows: rows[1:]},
		Strategy: Strategy{Encoding: Spreadsheet},
	}, nil
}

func mergeRow(raw, shown []string) []string {
	n := max(len(raw), len(shown))
	out := make([]string, n)
	for j := range out {
		var r, s string
		if j < len(raw) {
			r = raw[j]
		}
		if j < len(shown) {
			s = shown[j]
		}
		out[j] = cellText(r, s)
	}
	return out
}

// cellText picks the stored value unless the display text looks like a date
// or a time, whose stored value is a serial day number.
func cellText(raw, shown string) string {
	if raw == "" {
		return shown
	}
	if looksLikeDate(shown) {
		return shown
	}
	return raw
}

func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return strings.ContainsAny(s, "/:") || strings.Contains(s[1:], "-")
}
