package rankfile

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/standings/pkg/logger"
)

// SetupLogging configures the global logger to write to w. Verbose runs log
// at debug level.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWith(w, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the rankfile tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Standings Rank File Tool
========================

Ranks a standings table the same way the dashboard does and prints it.
Optionally publishes the table to a running service and verifies the
served board matches the local ranking.

Usage:
  go run ./cmd/rankfile -file table.csv [options]

Options:
  -file string
        CSV, TXT or XLSX table to rank (required)
  -top int
        Number of rows to print, 0 prints all (default 0)
  -format string
        Output format: text or json (default "text")
  -publish
        Upload the table to the service
  -verify
        After publishing, compare the served board with the local ranking
  -url string
        Base URL of the service (default "http://localhost:9080")
  -password string
        Admin password (default $STANDINGS_ADMIN_PASSWORD)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Print the ranking of a local export
  go run ./cmd/rankfile -file Datos.csv

  # Publish and verify
  go run ./cmd/rankfile -file Datos.xlsx -publish -verify -url http://localhost:9080
`)
}
