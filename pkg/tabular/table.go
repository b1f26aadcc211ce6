// Package tabular reads and writes the delimited and spreadsheet tables the
// leaderboard is published from.
//
// Parsing is driven by an explicit, ordered list of strategies. Each strategy
// fixes one text encoding and one field delimiter; the first strategy that
// yields a header with more than one column wins.
package tabular

import "strings"

// Table is a header row plus data rows of raw cell text.
// Rows may be shorter than the header; missing cells read as "".
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table has no header.
func (t Table) Empty() bool { return len(t.Header) == 0 }

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Index returns the position of the column whose trimmed name equals name,
// or -1 if there is none.
func (t Table) Index(name string) int {
	want := strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	return -1
}

// Has reports whether the table carries the named column.
func (t Table) Has(name string) bool { return t.Index(name) >= 0 }

// Cell returns the cell at (row, col), or "" when col is outside the row.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Value returns the cell at row under the named column.
func (t Table) Value(row int, column string) string {
	return t.Cell(row, t.Index(column))
}

// TrimHeader returns a copy of t whose column names have surrounding
// whitespace removed. Rows are shared with t.
func (t Table) TrimHeader() Table {
	header := make([]string, len(t.Header))
	for i, h := range t.Header {
		header[i] = strings.TrimSpace(h)
	}
	return Table{Header: header, Rows: t.Rows}
}

// Project returns a table with only the named columns that exist in t, in the
// order given. Names are matched after trimming.
func (t Table) Project(columns ...string) Table {
	idx := make([]int, 0, len(columns))
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		if i := t.Index(c); i >= 0 {
			idx = append(idx, i)
			header = append(header, strings.TrimSpace(c))
		}
	}
	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(idx))
		for j, i := range idx {
			row[j] = t.Cell(r, i)
		}
		rows[r] = row
	}
	return Table{Header: header, Rows: rows}
}

// Select returns a table holding the rows at the given positions.
func (t Table) Select(positions []int) Table {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(t.Rows) {
			rows = append(rows, t.Rows[p])
		}
	}
	return Table{Header: t.Header, Rows: rows}
}
