// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/standings/internal/adapters/repository"
	"github.com/okian/standings/internal/domain/history"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/metrics"
	"github.com/okian/standings/pkg/tabular"
)

// DefaultTitle is the dashboard title used when none is configured.
const DefaultTitle = "Ranking de la competencia"

// Warning messages shown on the dashboard for soft failures.
const (
	WarnNotPublished = "no standings table has been published yet"
	WarnUnreadable   = "the standings table could not be read"
	WarnNoData       = "no data"
)

// PublishRequest is an operator upload.
type PublishRequest = types.PublishRequest

// Service implements the API dependencies for the standings dashboard.
type Service struct {
	// publishMu serialises publishes so the snapshot and history writes of
	// two uploads do not interleave.
	publishMu sync.Mutex

	store  repository.Store
	ranker *ranking.Ranker
	now    func() time.Time

	adminPassword string
	rewardsURL    string
	title         string

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewFileStore(),
		ranker: ranking.New(),
		now:    time.Now,
		title:  DefaultTitle,
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Title returns the dashboard title.
func (s *Service) Title() string { return s.title }

// Columns returns the column names the service reads.
func (s *Service) Columns() model.Columns { return s.ranker.Columns() }

// PublishEnabled reports whether an admin password is configured.
func (s *Service) PublishEnabled() bool { return s.adminPassword != "" }

// Authorize reports whether password matches the configured admin password.
// It always fails when publishing is disabled.
func (s *Service) Authorize(password string) bool {
	if !s.PublishEnabled() {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
}

// Standings loads the current snapshot and ranks it. Missing, unreadable and
// empty tables are reported as board warnings; a missing points or
// identifier column is returned as an error wrapping ranking.ErrMissingColumn.
func (s *Service) Standings(ctx context.Context) (types.Board, error) {
	board := types.Board{
		Title:      s.title,
		RewardsURL: s.rewardsURL,
	}

	snap, err := s.store.ReadSnapshot(ctx)
	board.Source = string(snap.Source)
	switch {
	case errors.Is(err, tabular.ErrNoStrategy):
		metrics.RecordRankingError("unreadable")
		s.logger.Warn(ctx, "standings table unreadable", logger.Error(err))
		board.Warnings = append(board.Warnings, WarnUnreadable)
		return board, nil
	case err != nil:
		return board, fmt.Errorf("load standings: %w", err)
	case snap.Source == repository.SourceNone:
		board.Warnings = append(board.Warnings, WarnNotPublished)
		return board, nil
	}
	board.Strategy = snap.Strategy.String()

	st, err := s.ranker.Rank(snap.Table)
	switch {
	case errors.Is(err, ranking.ErrMissingColumn):
		metrics.RecordRankingError("missing_column")
		s.logger.Warn(ctx, "standings table is missing a column", logger.Error(err))
		return board, err
	case errors.Is(err, ranking.ErrNoData):
		metrics.RecordRankingError("no_data")
		board.Warnings = append(board.Warnings, WarnNoData)
		return board, nil
	case err != nil:
		return board, fmt.Errorf("rank standings: %w", err)
	}

	board.Standings = st
	board.Counters = presentCounters(snap.Table.TrimHeader(), s.ranker.Columns())

	metrics.UpdateRankedCompetitors(len(st.Rows))
	for _, t := range st.Teams {
		metrics.UpdateTeamPoints(t.Name, t.Points)
	}
	metrics.UpdateTeamPoints(st.Other.Name, st.Other.Points)

	return board, nil
}

// History returns the history log. When name is not blank only the entries
// of that competitor are returned; the match ignores case and surrounding
// whitespace.
func (s *Service) History(ctx context.Context, name string) (types.HistoryView, error) {
	t, err := s.store.ReadHistory(ctx)
	if err != nil {
		return types.HistoryView{}, fmt.Errorf("load history: %w", err)
	}

	nameColumn := s.ranker.Columns().Name
	filtered := history.Filter(t, nameColumn, name)

	view := types.HistoryView{
		Name:   strings.TrimSpace(name),
		Names:  history.Names(t, nameColumn),
		Header: t.Header,
		Rows:   filtered.Rows,
	}
	if view.Names == nil {
		view.Names = []string{}
	}
	if view.Header == nil {
		view.Header = []string{}
	}
	if view.Rows == nil {
		view.Rows = [][]string{}
	}
	return view, nil
}

// Publish replaces the snapshot with the uploaded table and records the
// valid rows in the history log under today's date, replacing any entries
// already recorded today. Nothing is written when the password is wrong or
// the upload cannot be parsed. The two writes are not atomic: if the history
// write fails the new snapshot stays in place.
func (s *Service) Publish(ctx context.Context, req PublishRequest) (types.PublishResult, error) {
	start := time.Now()

	if !s.PublishEnabled() {
		metrics.RecordPublishFailure("disabled")
		return types.PublishResult{}, ErrPublishDisabled
	}
	if !s.Authorize(req.Password) {
		metrics.RecordPublishFailure("access_denied")
		s.logger.Warn(ctx, "publish rejected", logger.String("reason", "access denied"))
		return types.PublishResult{}, ErrAccessDenied
	}

	res, err := parseUpload(req.Filename, req.Body)
	if err != nil {
		metrics.RecordPublishFailure("parse")
		s.logger.Warn(ctx, "upload could not be parsed", logger.String("filename", req.Filename), logger.Error(err))
		return types.PublishResult{}, err
	}
	metrics.RecordParseStrategy(res.Strategy.String())

	cols := s.ranker.Columns()
	table := res.Table.TrimHeader()
	valid, err := ranking.FilterValid(table, cols.ID)
	if err != nil {
		metrics.RecordPublishFailure("parse")
		return types.PublishResult{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if !table.Has(cols.Points) {
		s.logger.Warn(ctx, "uploaded table has no points column", logger.String("column", cols.Points))
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	result := types.PublishResult{
		ID:           uuid.NewString(),
		Filename:     req.Filename,
		Date:         history.Stamp(s.now()),
		Strategy:     res.Strategy.String(),
		SnapshotRows: table.Len(),
		ValidRows:    valid.Len(),
	}
	log := s.logger.With(logger.String("publish_id", result.ID))

	if err := s.store.WriteSnapshot(ctx, table); err != nil {
		metrics.RecordPublishFailure("write_snapshot")
		log.Error(ctx, "snapshot write failed", logger.Error(err))
		return types.PublishResult{}, fmt.Errorf("write snapshot: %w", err)
	}

	entries := history.Entries(valid, cols, result.Date)
	n, err := s.store.AppendHistory(ctx, result.Date, entries)
	if err != nil {
		metrics.RecordPublishFailure("write_history")
		log.Error(ctx, "history write failed after snapshot was replaced", logger.Error(err))
		return types.PublishResult{}, fmt.Errorf("append history: %w", err)
	}
	result.HistoryRows = n

	elapsed := time.Since(start)
	metrics.RecordPublish(float64(elapsed.Milliseconds()))
	log.Info(ctx, "standings published",
		logger.String("filename", req.Filename),
		logger.String("strategy", result.Strategy),
		logger.String("date", result.Date),
		logger.Int("rows", result.SnapshotRows),
		logger.Int("valid_rows", result.ValidRows),
		logger.Int("history_rows", result.HistoryRows),
		logger.Duration("elapsed", elapsed))

	return result, nil
}

// parseUpload reads an XLSX workbook or delimited text depending on the
// file extension.
func parseUpload(filename string, body io.Reader) (tabular.Result, error) {
	if body == nil {
		return tabular.Result{}, fmt.Errorf("%w: %w", ErrParse, tabular.ErrEmptyInput)
	}

	res, err := tabular.ReadFile(filename, body)
	switch {
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return tabular.Result{}, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	case err != nil:
		return tabular.Result{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(res.Table.Header) <= 1 {
		return tabular.Result{}, fmt.Errorf("%w: single column header", ErrParse)
	}
	return res, nil
}

func presentCounters(t tabular.Table, cols model.Columns) []string {
	var out []string
	for _, c := range cols.Counters {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
