package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/hockeyref-scraper/internal/extract"
	"github.com/pfrederiksen/hockeyref-scraper/internal/logger"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// LastIDResult reports where the games file currently ends
type LastIDResult struct {
	GamesFile   string `json:"games_file"`
	LastID      int    `json:"last_id"`
	NextStartID int    `json:"next_start_id"`
}

// WriteSummary writes an extraction summary in the specified format
func WriteSummary(w io.Writer, summary *extract.Summary, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, summary)
	case FormatText:
		return writeSummaryText(w, summary, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteLastID writes a last-id result in the specified format
func WriteLastID(w io.Writer, result *LastIDResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		if result.LastID == 0 {
			fmt.Fprintf(w, "No games in %s yet.\n", result.GamesFile)
		} else {
			fmt.Fprintf(w, "Last game id: %d (%s)\n", result.LastID, result.GamesFile)
		}
		fmt.Fprintf(w, "Next --start-id: %d\n", result.NextStartID)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeSummaryText outputs a summary as human-readable text
func writeSummaryText(w io.Writer, s *extract.Summary, verbose bool) error {
	if s.Games == 0 {
		fmt.Fprintf(w, "No %s games found between %s and %s.\n", s.Mode, s.StartDate, s.EndDate)
		fmt.Fprintf(w, "Next --start-id: %d\n", s.NextID)
		return nil
	}

	fmt.Fprintf(w, "Wrote %d %s games (ids %d-%d) and %d scoring events.\n",
		s.Games, s.Mode, s.FirstID, s.NextID-1, s.Events)
	if s.SkippedRows > 0 {
		fmt.Fprintf(w, "Skipped %d malformed rows.\n", s.SkippedRows)
	}
	fmt.Fprintf(w, "Next --start-id: %d\n", s.NextID)

	if verbose {
		fmt.Fprintf(w, "  Games file:   %s\n", s.GamesFile)
		fmt.Fprintf(w, "  Scoring file: %s\n", s.ScoringFile)

		snapshot := logger.GetMetricsSnapshot()
		if timings, ok := snapshot["timings"].(map[string]map[string]interface{}); ok {
			if fetch, ok := timings["fetch.page"]; ok {
				fmt.Fprintf(w, "  Fetches:      %v (average %v)\n", fetch["count"], fetch["average"])
			}
		}
	}

	return nil
}
