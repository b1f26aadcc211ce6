package rankfile

import (
	"errors"
	"fmt"

	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/types"
)

// ErrMismatch is returned when the served board differs from the local
// ranking.
var ErrMismatch = errors.New("served board does not match local ranking")

// verifyBoard checks the served board against the locally ranked table.
func verifyBoard(local model.Standings, served types.Board) error {
	got := served.Standings
	if len(got.Rows) != len(local.Rows) {
		return fmt.Errorf("%w: %d rows served, %d ranked locally", ErrMismatch, len(got.Rows), len(local.Rows))
	}
	for i, want := range local.Rows {
		row := got.Rows[i]
		if row.RawID != want.RawID || row.Points != want.Points || row.Rank != want.Rank {
			return fmt.Errorf("%w: row %d is %s/%d/#%d, want %s/%d/#%d",
				ErrMismatch, i, row.RawID, row.Points, row.Rank, want.RawID, want.Points, want.Rank)
		}
	}

	// Served rows must stay in non-increasing points order.
	for i := 1; i < len(got.Rows); i++ {
		if got.Rows[i].Points > got.Rows[i-1].Points {
			return fmt.Errorf("%w: row %d has more points than row %d", ErrMismatch, i, i-1)
		}
	}

	if len(got.Teams) != len(local.Teams) {
		return fmt.Errorf("%w: %d team totals served, %d local", ErrMismatch, len(got.Teams), len(local.Teams))
	}
	for i, want := range local.Teams {
		if got.Teams[i].Name != want.Name || got.Teams[i].Points != want.Points {
			return fmt.Errorf("%w: team %q has %d points, want %d", ErrMismatch, want.Name, got.Teams[i].Points, want.Points)
		}
	}
	if got.Leader != local.Leader {
		return fmt.Errorf("%w: leader %q, want %q", ErrMismatch, got.Leader, local.Leader)
	}
	return nil
}
