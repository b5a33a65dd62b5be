package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/hockeyref-scraper/internal/config"
	"github.com/pfrederiksen/hockeyref-scraper/internal/extract"
	"github.com/pfrederiksen/hockeyref-scraper/internal/game"
	"github.com/pfrederiksen/hockeyref-scraper/internal/logger"
	"github.com/pfrederiksen/hockeyref-scraper/internal/scraper"
	"github.com/pfrederiksen/hockeyref-scraper/internal/storage"
	"github.com/pfrederiksen/hockeyref-scraper/internal/throttle"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir  string
	flagFormat   string
	flagVerbose  bool
	flagLogLevel string
	flagPlayoffs bool

	flagPath      string
	flagStartID   int
	flagStartDate string
	flagEndDate   string
	flagDelay     float64
	flagHeader    bool
	flagStrict    bool
	flagBaseURL   string
	flagTimeout   time.Duration
)

// NewRootCmd creates the root command with defaults taken from cfg
func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hockeyref-scrape",
		Short: "Scrape hockey-reference.com games and scoring events into CSV files",
		Long: `A CLI tool to build a local dataset of NHL games and scoring events.
Games in a date range are appended to a games file, and every goal of those
games is appended to a scoring file. Regular season and playoffs use separate files.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", cfg.DataDir, "Directory holding the CSV files")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging and progress output")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&flagPlayoffs, "playoffs", false, "Read the playoff table and write the playoff files")

	cmd.AddCommand(newExtractCmd(cfg))
	cmd.AddCommand(newLastIDCmd())

	return cmd
}

func newExtractCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Append games and scoring events in a date range",
		Example: `  hockeyref-scrape extract --path /leagues/NHL_2024_games.html --start-date 2023-10-01 --end-date 2023-10-30 --delay 3
  hockeyref-scrape extract --path /leagues/NHL_2023_games.html --playoffs --start-id 1 --start-date 2023-04-01 --end-date 2023-04-30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, cfg.UserAgent)
		},
	}

	cmd.Flags().StringVar(&flagPath, "path", "", "Site-relative schedule page, e.g. /leagues/NHL_2024_games.html (required)")
	cmd.Flags().IntVar(&flagStartID, "start-id", 1, "Game id of the first written game (last id in the games file + 1)")
	cmd.Flags().StringVar(&flagStartDate, "start-date", "", "First game date to extract, YYYY-MM-DD, inclusive (required)")
	cmd.Flags().StringVar(&flagEndDate, "end-date", "", "Last game date to extract, YYYY-MM-DD, inclusive (required)")
	cmd.Flags().Float64Var(&flagDelay, "delay", 0, "Seconds to wait after each game (use 3 when loading more than 20 games)")
	cmd.Flags().BoolVar(&flagHeader, "header", false, "Write header lines (default: only when --start-id is 1)")
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "Abort on malformed table rows instead of skipping them")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", cfg.BaseURL, "Site base URL")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", cfg.Timeout, "HTTP request timeout")

	cmd.MarkFlagRequired("path")
	cmd.MarkFlagRequired("start-date")
	cmd.MarkFlagRequired("end-date")

	return cmd
}

func newLastIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-id",
		Short: "Show the last game id written and the next --start-id to use",
		Args:  cobra.NoArgs,
		RunE:  runLastID,
	}
}

// setupLogging installs the default logger for the run
func setupLogging(w io.Writer, cfg *config.Config) error {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}

	format := logger.Format(strings.ToLower(cfg.LogFormat))
	if format != logger.FormatJSON && format != logger.FormatText {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.LogFormat)
	}

	logger.SetDefault(logger.NewWithFormat(level, w, format))
	return nil
}

func parseFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	return format, nil
}

func mode() game.Mode {
	if flagPlayoffs {
		return game.Playoffs
	}
	return game.RegularSeason
}

// runExtract is the extract command logic. The user agent is configured
// through the environment only.
func runExtract(cmd *cobra.Command, userAgent string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	dateRange, err := game.NewDateRange(strings.TrimSpace(flagStartDate), strings.TrimSpace(flagEndDate))
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}
	if flagStartID < 1 {
		return fmt.Errorf("--start-id must be at least 1, got %d", flagStartID)
	}
	if flagDelay < 0 {
		return fmt.Errorf("--delay must not be negative, got %v", flagDelay)
	}
	if flagTimeout <= 0 {
		return fmt.Errorf("--timeout must be positive, got %s", flagTimeout)
	}

	writeHeader := flagStartID == 1
	if cmd.Flags().Changed("header") {
		writeHeader = flagHeader
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var progress io.Writer
	if flagVerbose {
		progress = cmd.ErrOrStderr()
	}

	sc := scraper.New(flagBaseURL, userAgent, flagTimeout)
	ex := extract.New(sc, store, throttle.New(progress))

	logger.Info("Starting extraction", logger.Fields{
		"url":      sc.URL(flagPath),
		"mode":     mode().String(),
		"start_id": flagStartID,
		"range":    dateRange.Start + ".." + dateRange.End,
		"header":   writeHeader,
	})

	summary, err := ex.Run(cmd.Context(), extract.Options{
		Path:        flagPath,
		StartID:     flagStartID,
		Range:       dateRange,
		Mode:        mode(),
		Delay:       throttle.Seconds(flagDelay),
		WriteHeader: writeHeader,
		Strict:      flagStrict,
	})
	if err != nil {
		fields := logger.Fields{"path": flagPath}
		if summary != nil {
			fields["games_written"] = summary.Games
			fields["next_start_id"] = summary.NextID
		}
		logger.Error("Extraction failed", fields, err)
		return err
	}

	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	if err := WriteSummary(cmd.OutOrStdout(), summary, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runLastID is the last-id command logic
func runLastID(cmd *cobra.Command, args []string) error {
	format, err := parseFormat()
	if err != nil {
		return err
	}

	store, err := storage.Lookup(flagDataDir)
	if err != nil {
		return fmt.Errorf("resolving data directory: %w", err)
	}

	last, err := store.LastGameID(mode())
	if err != nil {
		return fmt.Errorf("reading last game id: %w", err)
	}

	gamesFile, _ := store.Paths(mode())
	result := &LastIDResult{
		GamesFile:   gamesFile,
		LastID:      last,
		NextStartID: last + 1,
	}

	if err := WriteLastID(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(cfg).ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
