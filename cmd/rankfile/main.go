package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/standings/internal/config"
	"github.com/okian/standings/internal/domain/ranking"
	"github.com/okian/standings/internal/rankfile"
)

// Default configuration constants.
const (
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		file     = flag.String("file", "", "CSV, TXT or XLSX table to rank")
		top      = flag.Int("top", 0, "Number of rows to print, 0 prints all")
		format   = flag.String("format", rankfile.FormatText, "Output format: text or json")
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		password = flag.String("password", os.Getenv("STANDINGS_ADMIN_PASSWORD"), "Admin password")
		publish  = flag.Bool("publish", false, "Upload the table to the service")
		verify   = flag.Bool("verify", false, "Compare the served board with the local ranking")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *file == "" {
		rankfile.ShowHelp()
		return
	}

	if err := rankfile.SetupLogging(os.Stderr, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Column names and teams follow the service configuration.
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	runConfig := &rankfile.Config{
		File:     *file,
		Top:      *top,
		Format:   *format,
		BaseURL:  *baseURL,
		Password: *password,
		Publish:  *publish,
		Verify:   *verify,
		Timeout:  *timeout,
		Verbose:  *verbose,
		Ranker: ranking.New(
			ranking.WithColumns(cfg.Columns()),
			ranking.WithTeams(cfg.Teams),
			ranking.WithOtherLabel(cfg.OtherLabel),
		),
	}

	if err := rankfile.Run(ctx, runConfig, os.Stdout); err != nil {
		_, _ = os.Stderr.WriteString("rankfile failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
