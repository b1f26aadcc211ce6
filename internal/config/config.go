// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation errors wrap ErrInvalidConfig; source errors wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/standings/internal/adapters/repository"
	"github.com/okian/standings/internal/domain/model"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log records.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SnapshotPath is where the latest published table is kept.
	SnapshotPath string `koanf:"snapshot_path"`

	// InitialPath is the bundled table shown before the first publish.
	InitialPath string `koanf:"initial_path"`

	// HistoryPath is the dated history log.
	HistoryPath string `koanf:"history_path"`

	// AdminPassword gates publishing. Empty disables the publish action.
	AdminPassword string `koanf:"admin_password"`

	// Title is the dashboard heading.
	Title string `koanf:"title"`

	// RewardsURL is the outbound rewards link. Empty hides it.
	RewardsURL string `koanf:"rewards_url"`

	// Teams are the two team names team labels are matched against.
	Teams []string `koanf:"teams"`

	// OtherLabel names the bucket for labels matching no team, or several.
	OtherLabel string `koanf:"other_label"`

	// Column names of the published table.
	IDColumn       string   `koanf:"id_column"`
	NameColumn     string   `koanf:"name_column"`
	TeamColumn     string   `koanf:"team_column"`
	PointsColumn   string   `koanf:"points_column"`
	CounterColumns []string `koanf:"counter_columns"`
	DateColumn     string   `koanf:"date_column"`

	// AdminRateLimit is the sustained rate of admin POSTs per second;
	// AdminBurst is the bucket size.
	AdminRateLimit float64 `koanf:"admin_rate_limit"`
	AdminBurst     int     `koanf:"admin_burst"`

	// MaxUploadBytes caps the size of an uploaded table.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config with defaults. The context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      string(logger.FormatText),
		Addr:           ":9080",
		SnapshotPath:   repository.DefaultSnapshotPath,
		InitialPath:    repository.DefaultInitialPath,
		HistoryPath:    repository.DefaultHistoryPath,
		Title:          "Ranking de la competencia",
		Teams:          append([]string(nil), ranking.DefaultTeams...),
		OtherLabel:     ranking.DefaultOtherLabel,
		IDColumn:       model.DefaultIDColumn,
		NameColumn:     model.DefaultNameColumn,
		TeamColumn:     model.DefaultTeamColumn,
		PointsColumn:   model.DefaultPointsColumn,
		CounterColumns: append([]string(nil), model.DefaultCounterColumns...),
		DateColumn:     model.DefaultDateColumn,
		AdminRateLimit: 1,
		AdminBurst:     5,
		MaxUploadBytes: 10 << 20,
	}
}

// Columns returns the configured column set.
func (c *Config) Columns() model.Columns {
	return model.Columns{
		ID:       c.IDColumn,
		Name:     c.NameColumn,
		Team:     c.TeamColumn,
		Points:   c.PointsColumn,
		Counters: append([]string(nil), c.CounterColumns...),
		Date:     c.DateColumn,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for key, v := range map[string]string{
		"snapshot_path": c.SnapshotPath,
		"history_path":  c.HistoryPath,
		"id_column":     c.IDColumn,
		"name_column":   c.NameColumn,
		"team_column":   c.TeamColumn,
		"points_column": c.PointsColumn,
		"date_column":   c.DateColumn,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, key)
		}
	}
	named := 0
	for _, t := range c.Teams {
		if strings.TrimSpace(t) != "" {
			named++
		}
	}
	if named == 0 {
		return fmt.Errorf("%w: teams must name at least one team", ErrInvalidConfig)
	}
	if c.AdminRateLimit <= 0 || c.AdminBurst <= 0 {
		return fmt.Errorf("%w: admin_rate_limit and admin_burst must be positive", ErrInvalidConfig)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}
