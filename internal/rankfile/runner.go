package rankfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/pkg/logger"
)

// ErrNoFile is returned when no input file is configured.
var ErrNoFile = errors.New("no input file")

// Run ranks the configured file, prints it to out and optionally publishes
// and verifies it against a running service.
func Run(ctx context.Context, config *Config, out io.Writer) error {
	if config.File == "" {
		return ErrNoFile
	}
	ranker := config.Ranker
	if ranker == nil {
		ranker = ranking.New()
	}
	start := time.Now()

	logger.Get().Debug(ctx, "ranking file",
		logger.String("file", config.File),
		logger.String("baseURL", config.BaseURL),
		logger.Bool("publish", config.Publish),
		logger.Bool("verify", config.Verify))

	local, err := rankFile(config.File, ranker)
	if err != nil {
		return err
	}
	logger.Get().Info(ctx, "file ranked",
		logger.String("strategy", local.Strategy),
		logger.Int("rows", len(local.Standings.Rows)))

	if err := printStandings(out, local.Standings, config.Top, config.Format); err != nil {
		return fmt.Errorf("print standings: %w", err)
	}

	if !config.Publish {
		return nil
	}

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	data, err := os.ReadFile(config.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", config.File, err)
	}
	result, err := client.publish(ctx, config.Password, config.File, data)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	logger.Get().Info(ctx, "table published",
		logger.String("id", result.ID),
		logger.String("date", result.Date),
		logger.Int("valid_rows", result.ValidRows),
		logger.Int("history_rows", result.HistoryRows))

	if config.Verify {
		var board types.Board
		if err := client.get(ctx, "/api/standings", &board); err != nil {
			return fmt.Errorf("standings retrieval failed: %w", err)
		}
		if err := verifyBoard(local.Standings, board); err != nil {
			return err
		}
		logger.Get().Info(ctx, "served board matches local ranking")
	}

	logger.Get().Info(ctx, "run completed", logger.Duration("elapsed", time.Since(start)))
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	if err := client.get(ctx, "/healthz", nil); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	return nil
}
