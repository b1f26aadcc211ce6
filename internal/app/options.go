package service

import (
	"time"

	"github.com/okian/standings/internal/adapters/repository"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the storage backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRanker sets the ranking transform.
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAdminPassword sets the shared secret that gates publishing. An empty
// password disables publishing.
func WithAdminPassword(password string) Option {
	return func(s *Service) {
		s.adminPassword = password
	}
}

// WithClock sets the time source used to stamp history entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRewardsURL sets the outbound rewards link shown on the dashboard.
func WithRewardsURL(url string) Option {
	return func(s *Service) {
		s.rewardsURL = url
	}
}

// WithTitle sets the dashboard title.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}
