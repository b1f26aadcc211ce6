package rankfile

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/standings/internal/domain/model"
)

// printStandings writes the first top rows (all when top is 0) and the team
// totals to w.
func printStandings(w io.Writer, st model.Standings, top int, format string) error {
	rows := st.Rows
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}

	if format == FormatJSON {
		out := st
		out.Rows = rows
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "RANK\tID\tNAME\tTEAM\tPOINTS")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.Label, r.RawID, r.Name, r.Team, r.Points)
	}
	_, _ = fmt.Fprintln(tw)

	teams := append(append([]model.TeamTotal(nil), st.Teams...), st.Other)
	for _, t := range teams {
		mark := ""
		if t.Leading {
			mark = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s%s\t%d\t%d members\n", t.Name, mark, t.Points, t.Members)
	}
	leader := st.Leader
	if leader == "" {
		leader = "tie"
	}
	_, _ = fmt.Fprintf(tw, "TOTAL\t%d\tleader: %s\n", st.Total, leader)
	return tw.Flush()
}
