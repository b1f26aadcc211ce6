package repository

import (
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/pkg/logger"
)

// Default file names, relative to the working directory.
const (
	DefaultSnapshotPath = "db_competencia.csv"
	DefaultInitialPath  = "Datos.csv"
	DefaultHistoryPath  = "historial.csv"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithSnapshotPath sets the file the latest published table is kept in.
func WithSnapshotPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.snapshotPath = path
		}
	}
}

// WithInitialPath sets the bundled table read when no snapshot exists.
func WithInitialPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.initialPath = path
		}
	}
}

// WithHistoryPath sets the history log file.
func WithHistoryPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.historyPath = path
		}
	}
}

// WithDateColumn sets the history column holding the date stamp.
func WithDateColumn(column string) Option {
	return func(s *FileStore) {
		if column != "" {
			s.dateColumn = column
		}
	}
}

// WithLogger sets the logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

func defaultFileStore() *FileStore {
	return &FileStore{
		snapshotPath: DefaultSnapshotPath,
		initialPath:  DefaultInitialPath,
		historyPath:  DefaultHistoryPath,
		dateColumn:   model.DefaultDateColumn,
		log:          logger.Discard(),
	}
}
