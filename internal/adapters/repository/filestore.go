package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/standings/internal/domain/history"
	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/metrics"
	"github.com/okian/standings/pkg/tabular"
)

// FileStore keeps the snapshot and the history log as CSV files.
//
// Snapshots are always written as UTF-8, comma-delimited text. Writes go to a
// temporary file in the target directory which is then renamed over the
// target, so a reader never sees a half-written table.
type FileStore struct {
	mu           sync.RWMutex
	snapshotPath string
	initialPath  string
	historyPath  string
	dateColumn   string
	log          logger.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore constructs a file store with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := defaultFileStore()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadSnapshot implements Store.
func (s *FileStore) ReadSnapshot(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency("read_snapshot", float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var parseErrs []error
	candidates := []struct {
		source     Source
		path       string
		strategies []tabular.Strategy
	}{
		// Snapshots are written canonically; the tolerant list still covers
		// files an operator replaced by hand.
		{SourceSnapshot, s.snapshotPath, append([]tabular.Strategy{tabular.Canonical}, tabular.Tolerant...)},
		{SourceInitial, s.initialPath, tabular.Tolerant},
	}

	for _, c := range candidates {
		data, ok, err := readFile(c.path)
		if err != nil {
			return Snapshot{Source: SourceNone}, err
		}
		if !ok {
			continue
		}

		res, err := tabular.Parse(data, c.strategies)
		if errors.Is(err, tabular.ErrEmptyInput) {
			// A blank table file is as unreadable as a garbled one.
			err = fmt.Errorf("%w: %w", tabular.ErrNoStrategy, err)
		}
		if err != nil {
			metrics.RecordParseFailure(string(c.source))
			s.log.Warn(ctx, "table could not be parsed",
				logger.String("source", string(c.source)),
				logger.String("path", c.path),
				logger.Error(err))
			parseErrs = append(parseErrs, fmt.Errorf("%s %s: %w", c.source, c.path, err))
			continue
		}

		metrics.RecordSnapshotLoad(string(c.source))
		metrics.RecordParseStrategy(res.Strategy.String())
		metrics.UpdateSnapshotRows(res.Table.Len())
		s.log.Debug(ctx, "snapshot loaded",
			logger.String("source", string(c.source)),
			logger.String("path", c.path),
			logger.String("strategy", res.Strategy.String()),
			logger.Int("rows", res.Table.Len()))

		return Snapshot{Table: res.Table, Source: c.source, Strategy: res.Strategy, Path: c.path}, nil
	}

	metrics.RecordSnapshotLoad(string(SourceNone))
	return Snapshot{Source: SourceNone}, errors.Join(parseErrs...)
}

// WriteSnapshot implements Store.
func (s *FileStore) WriteSnapshot(ctx context.Context, t tabular.Table) error {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency("write_snapshot", float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeTable(s.snapshotPath, t); err != nil {
		return err
	}
	metrics.UpdateSnapshotRows(t.Len())
	s.log.Info(ctx, "snapshot written", logger.String("path", s.snapshotPath), logger.Int("rows", t.Len()))
	return nil
}

// ReadHistory implements Store.
func (s *FileStore) ReadHistory(ctx context.Context) (tabular.Table, error) {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency("read_history", float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readHistory(ctx)
}

// AppendHistory implements Store.
func (s *FileStore) AppendHistory(ctx context.Context, day string, entries tabular.Table) (int, error) {
	start := time.Now()
	defer func() { metrics.RecordStorageLatency("append_history", float64(time.Since(start).Milliseconds())) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readHistory(ctx)
	if err != nil {
		return 0, err
	}

	merged := history.Merge(existing, entries, s.dateColumn, day)
	if err := writeTable(s.historyPath, merged); err != nil {
		return 0, err
	}

	metrics.UpdateHistoryRows(merged.Len())
	s.log.Info(ctx, "history appended",
		logger.String("path", s.historyPath),
		logger.String("day", day),
		logger.Int("entries", entries.Len()),
		logger.Int("total", merged.Len()))
	return merged.Len(), nil
}

// readHistory must be called with s.mu held.
func (s *FileStore) readHistory(ctx context.Context) (tabular.Table, error) {
	data, ok, err := readFile(s.historyPath)
	if err != nil || !ok {
		return tabular.Table{}, err
	}

	res, err := tabular.Parse(data, append([]tabular.Strategy{tabular.Canonical}, tabular.Tolerant...))
	if err != nil {
		if errors.Is(err, tabular.ErrEmptyInput) {
			return tabular.Table{}, nil
		}
		metrics.RecordParseFailure("history")
		s.log.Error(ctx, "history could not be parsed", logger.String("path", s.historyPath), logger.Error(err))
		return tabular.Table{}, fmt.Errorf("%w: history %s: %w", ErrRead, s.historyPath, err)
	}
	return res.Table.TrimHeader(), nil
}

// readFile returns the file contents and whether the file exists.
func readFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // paths come from configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return data, true, nil
}

func writeTable(path string, t tabular.Table) error {
	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
