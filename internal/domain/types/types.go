// Package types contains common types used across the application
package types

import (
	"io"

	"github.com/okian/standings/internal/domain/model"
)

// Board is everything the dashboard renders for the current snapshot.
type Board struct {
	Title      string          `json:"title"`
	Source     string          `json:"source"`
	Strategy   string          `json:"strategy,omitempty"`
	Standings  model.Standings `json:"standings"`
	Counters   []string        `json:"counters,omitempty"`
	RewardsURL string          `json:"rewards_url,omitempty"`
	// Warnings carries soft failures such as a missing or unreadable table.
	Warnings []string `json:"warnings,omitempty"`
}

// Ranked reports whether the board holds a ranking to show.
func (b Board) Ranked() bool { return len(b.Standings.Rows) > 0 }

// HistoryView is the history log, optionally filtered to one competitor.
type HistoryView struct {
	Name   string     `json:"name,omitempty"`
	Names  []string   `json:"names"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Len returns the number of entries in the view.
func (v HistoryView) Len() int { return len(v.Rows) }

// PublishRequest is an operator upload.
type PublishRequest struct {
	Password string
	Filename string
	Body     io.Reader
}

// PublishResult describes a completed publish action.
type PublishResult struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	Date         string `json:"date"`
	Strategy     string `json:"strategy"`
	SnapshotRows int    `json:"snapshot_rows"`
	ValidRows    int    `json:"valid_rows"`
	HistoryRows  int    `json:"history_rows"`
}
