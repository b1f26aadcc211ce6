// Package rankfile ranks a local standings table from the command line and
// can publish it to a running service and check what the service serves.
package rankfile

import (
	"time"

	"github.com/okian/standings/internal/domain/ranking"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds configuration for one rankfile run.
type Config struct {
	File     string        // Path of the CSV, TXT or XLSX table to rank
	Top      int           // Number of rows to print, 0 prints all
	Format   string        // text or json
	BaseURL  string        // Base URL of the service, used with Publish
	Password string        // Admin password, used with Publish
	Publish  bool          // Upload the file to the service
	Verify   bool          // Compare the served board with the local ranking
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging

	// Ranker ranks the local table. Nil uses the default columns and teams.
	Ranker *ranking.Ranker
}
