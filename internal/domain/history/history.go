// Package history maintains the dated log of published standings.
//
// The log holds at most one entry per competitor and day: publishing again on
// the same day replaces that day's entries instead of appending to them.
package history

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/tabular"
)

// DateLayout is the day/month/year stamp written into the date column.
const DateLayout = "02/01/2006"

// Stamp formats t as a history date stamp.
func Stamp(t time.Time) string { return t.Format(DateLayout) }

// Entries projects valid competitor rows onto the history columns that are
// present and stamps each with day. The date column always comes first.
func Entries(valid tabular.Table, cols model.Columns, day string) tabular.Table {
	keep := cols.HistoryColumns()[1:]
	projected := valid.Project(keep...)

	out := tabular.Table{
		Header: append([]string{cols.Date}, projected.Header...),
		Rows:   make([][]string, len(projected.Rows)),
	}
	for i, row := range projected.Rows {
		out.Rows[i] = append([]string{day}, row...)
	}
	return out
}

// Merge removes every row of existing stamped with day and appends entries.
// The result's header is the header of existing followed by any columns only
// entries carries; rows are realigned by column name.
func Merge(existing, entries tabular.Table, dateColumn, day string) tabular.Table {
	header := append([]string(nil), existing.Header...)
	for _, h := range entries.Header {
		if indexOf(header, h) < 0 {
			header = append(header, strings.TrimSpace(h))
		}
	}

	out := tabular.Table{Header: header}
	dateIdx := existing.Index(dateColumn)
	for i := range existing.Rows {
		if dateIdx >= 0 && strings.TrimSpace(existing.Cell(i, dateIdx)) == day {
			continue
		}
		out.Rows = append(out.Rows, realign(existing, i, header))
	}
	for i := range entries.Rows {
		out.Rows = append(out.Rows, realign(entries, i, header))
	}
	return out
}

// Filter returns the entries whose name column equals name, ignoring case and
// surrounding whitespace. A blank name returns t unchanged.
func Filter(t tabular.Table, nameColumn, name string) tabular.Table {
	name = strings.TrimSpace(name)
	if name == "" {
		return t
	}
	idx := t.Index(nameColumn)
	keep := make([]int, 0)
	for i := range t.Rows {
		if strings.EqualFold(strings.TrimSpace(t.Cell(i, idx)), name) {
			keep = append(keep, i)
		}
	}
	return t.Select(keep)
}

// Names lists the distinct non-blank competitor names in t, sorted.
func Names(t tabular.Table, nameColumn string) []string {
	idx := t.Index(nameColumn)
	if idx < 0 {
		return nil
	}
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for i := range t.Rows {
		n := strings.TrimSpace(t.Cell(i, idx))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func realign(t tabular.Table, row int, header []string) []string {
	out := make([]string, len(header))
	for j, h := range header {
		out[j] = t.Value(row, h)
	}
	return out
}

func indexOf(header []string, name string) int {
	want := strings.TrimSpace(name)
	for i, h := range header {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	return -1
}
