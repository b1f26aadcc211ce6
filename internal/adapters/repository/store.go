// Package repository reads and writes the published standings tables.
package repository

import (
	"context"

	"github.com/okian/standings/pkg/tabular"
)

// Source identifies which table a snapshot was read from.
type Source string

// Snapshot sources, in load precedence order.
const (
	SourceSnapshot Source = "snapshot"
	SourceInitial  Source = "initial"
	SourceNone     Source = "none"
)

// Snapshot is the current competitor table and where it came from.
type Snapshot struct {
	Table    tabular.Table
	Source   Source
	Strategy tabular.Strategy
	// Path is the file the table was read from, empty for SourceNone and
	// in-memory stores.
	Path string
}

// Store provides read/write access to the snapshot and the history log.
type Store interface {
	// ReadSnapshot returns the latest published table, falling back to the
	// bundled initial table. When neither exists it returns an empty snapshot
	// with SourceNone and no error. When the chosen table cannot be parsed it
	// returns an empty snapshot and an error wrapping tabular.ErrNoStrategy.
	ReadSnapshot(ctx context.Context) (Snapshot, error)

	// WriteSnapshot replaces the snapshot wholesale.
	WriteSnapshot(ctx context.Context, t tabular.Table) error

	// ReadHistory returns the history log. A missing log is an empty table.
	ReadHistory(ctx context.Context) (tabular.Table, error)

	// AppendHistory drops every entry stamped with day, appends entries and
	// persists the log. It returns the number of entries in the merged log.
	AppendHistory(ctx context.Context, day string, entries tabular.Table) (int, error)
}
