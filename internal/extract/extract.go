package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/hockeyref-scraper/internal/game"
	"github.com/pfrederiksen/hockeyref-scraper/internal/logger"
	"github.com/pfrederiksen/hockeyref-scraper/internal/scraper"
	"github.com/pfrederiksen/hockeyref-scraper/internal/storage"
	"github.com/pfrederiksen/hockeyref-scraper/internal/throttle"
)

// ScoringTableID is the id of the scoring summary table on a boxscore page
const ScoringTableID = "scoring"

// defaultGameColumns is used when the schedule table has no header row
var defaultGameColumns = []string{"Date", "Visitor", "G", "Home", "G", "", "Att.", "LOG", "Notes"}

// Options describes one extraction run
type Options struct {
	Path        string // site-relative schedule page, e.g. /leagues/NHL_2024_games.html
	StartID     int    // id given to the first written game
	Range       *game.DateRange
	Mode        game.Mode
	Delay       time.Duration // pause after every processed game
	WriteHeader bool          // write header lines before any data
	Strict      bool          // abort on malformed rows instead of skipping them
}

// Summary reports what a run wrote
type Summary struct {
	Path        string    `json:"path"`
	Mode        string    `json:"mode"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Games       int       `json:"games"`
	Events      int       `json:"events"`
	SkippedRows int       `json:"skipped_rows"`
	FirstID     int       `json:"first_id"`
	NextID      int       `json:"next_id"`
	GamesFile   string    `json:"games_file"`
	ScoringFile string    `json:"scoring_file"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Extractor wires the scraper, the output files and the request pauser together
type Extractor struct {
	scraper *scraper.Scraper
	store   *storage.Storage
	pauser  *throttle.Pauser
}

// New creates a new Extractor
func New(sc *scraper.Scraper, store *storage.Storage, pauser *throttle.Pauser) *Extractor {
	return &Extractor{
		scraper: sc,
		store:   store,
		pauser:  pauser,
	}
}

// Run extracts every in-range game of a schedule page and its scoring events.
// The returned Summary is valid even when err is non-nil and counts what was
// written before the failure.
func (e *Extractor) Run(ctx context.Context, opts Options) (summary *Summary, err error) {
	if opts.Range == nil {
		return nil, fmt.Errorf("date range is required")
	}
	if opts.StartID < 1 {
		return nil, fmt.Errorf("start id must be at least 1, got %d", opts.StartID)
	}

	gamesFile, scoringFile := e.store.Paths(opts.Mode)
	summary = &Summary{
		Path:        opts.Path,
		Mode:        opts.Mode.String(),
		StartDate:   opts.Range.Start,
		EndDate:     opts.Range.End,
		FirstID:     opts.StartID,
		NextID:      opts.StartID,
		GamesFile:   gamesFile,
		ScoringFile: scoringFile,
	}
	defer func() { summary.FinishedAt = time.Now().UTC() }()

	table, err := e.scraper.FetchTable(ctx, opts.Path, opts.Mode.TableID())
	if err != nil {
		return summary, fmt.Errorf("fetching schedule: %w", err)
	}

	sinks, err := e.store.Open(opts.Mode)
	if err != nil {
		return summary, fmt.Errorf("opening output files: %w", err)
	}
	defer func() {
		if closeErr := sinks.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output files: %w", closeErr)
		}
	}()

	if opts.WriteHeader {
		if err := sinks.WriteHeaders(gameColumns(table)); err != nil {
			return summary, err
		}
	}

	gameID := opts.StartID
	warnedExtra := false
	for _, row := range table.Rows() {
		if row.IsHeader {
			continue
		}

		if extra := len(row.Cells) - game.GameColumns; extra > 0 && !warnedExtra {
			warnedExtra = true
			logger.IncrCounter("columns.dropped")
			logger.Warn("Schedule row has more columns than the games file keeps", logger.Fields{
				"table":   table.ID,
				"row":     row.Index,
				"columns": len(row.Cells),
				"kept":    game.GameColumns,
			})
		}

		g, rowErr := game.NewGameRow(row.Cells, row.Link)
		if rowErr != nil {
			if err := e.skipRow(opts, summary, &RowError{TableID: table.ID, URL: table.URL, Row: row.Index, Reason: rowErr}); err != nil {
				return summary, err
			}
			continue
		}

		if !opts.Range.Contains(g.Date) || !g.HasBoxscore() {
			continue
		}

		if err := sinks.WriteGame(gameID, g); err != nil {
			return summary, err
		}
		summary.Games++
		summary.NextID = gameID + 1
		logger.IncrCounter("games.written")
		logger.Info("Game written", logger.Fields{
			"game_id": gameID,
			"date":    g.Date,
			"visitor": g.Visitor,
			"home":    g.Home,
		})

		events, err := e.extractScoring(ctx, sinks, gameID, g.BoxscorePath, opts, summary)
		summary.Events += events
		if err != nil {
			return summary, fmt.Errorf("extracting scoring for game %d: %w", gameID, err)
		}

		gameID++
		logger.SetGauge("games.next_id", float64(gameID))

		if err := e.pauser.Pause(ctx, opts.Delay); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// extractScoring writes the scoring events of one game and returns how many it wrote
func (e *Extractor) extractScoring(ctx context.Context, sinks *storage.Sinks, gameID int, path string, opts Options, summary *Summary) (int, error) {
	table, err := e.scraper.FetchTable(ctx, path, ScoringTableID)
	if err != nil {
		return 0, err
	}

	written := 0
	period := game.PeriodNone
	for _, row := range table.Rows() {
		if p, ok := game.ParsePeriodMarker(row.Text()); ok {
			period = p
			continue
		}
		if row.IsHeader || !period.Recorded() {
			continue
		}

		evt, rowErr := game.NewScoringEvent(gameID, period, row.Cells)
		if rowErr != nil {
			if err := e.skipRow(opts, summary, &RowError{TableID: table.ID, URL: table.URL, Row: row.Index, Reason: rowErr}); err != nil {
				return written, err
			}
			continue
		}

		if err := sinks.WriteScoring(evt); err != nil {
			return written, err
		}
		written++
		logger.IncrCounter("events.written")
	}

	logger.Debug("Scoring extracted", logger.Fields{
		"game_id": gameID,
		"events":  written,
	})
	return written, nil
}

// skipRow applies the malformed row policy: warn and continue, or abort when strict
func (e *Extractor) skipRow(opts Options, summary *Summary, rowErr *RowError) error {
	if opts.Strict {
		return rowErr
	}
	summary.SkippedRows++
	logger.IncrCounter("rows.skipped")
	logger.Warn("Skipping malformed row", logger.Fields{
		"table":  rowErr.TableID,
		"row":    rowErr.Row,
		"url":    rowErr.URL,
		"reason": rowErr.Reason.Error(),
	})
	return nil
}

// gameColumns returns the schedule table's column names laid out like a GameRow
func gameColumns(table *scraper.Table) []string {
	header, ok := table.HeaderRow()
	if !ok {
		return defaultGameColumns
	}
	g, err := game.NewGameRow(header.Cells, "")
	if err != nil {
		return defaultGameColumns
	}
	return g.Fields()
}
