package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/pfrederiksen/hockeyref-scraper/internal/game"
)

// Sinks is an open games/scoring file pair. Every record is flushed as soon as
// it is written.
type Sinks struct {
	games      *os.File
	scoring    *os.File
	gamesCSV   *csv.Writer
	scoringCSV *csv.Writer
}

// WriteHeaders writes the header line of both files.
// gameColumns are the schedule table's column names; a GameId column is prepended.
func (k *Sinks) WriteHeaders(gameColumns []string) error {
	header := append([]string{"GameId"}, gameColumns...)
	if err := write(k.gamesCSV, header); err != nil {
		return fmt.Errorf("writing games header: %w", err)
	}
	if err := write(k.scoringCSV, game.ScoringHeader); err != nil {
		return fmt.Errorf("writing scoring header: %w", err)
	}
	return nil
}

// WriteGame appends one game record
func (k *Sinks) WriteGame(gameID int, row *game.GameRow) error {
	if err := write(k.gamesCSV, row.Record(gameID)); err != nil {
		return fmt.Errorf("writing game %d: %w", gameID, err)
	}
	return nil
}

// WriteScoring appends one scoring event record
func (k *Sinks) WriteScoring(evt *game.ScoringEvent) error {
	if err := write(k.scoringCSV, evt.Record()); err != nil {
		return fmt.Errorf("writing scoring event for game %d: %w", evt.GameID, err)
	}
	return nil
}

// Close flushes and closes both files
func (k *Sinks) Close() error {
	k.gamesCSV.Flush()
	k.scoringCSV.Flush()
	return errors.Join(
		k.gamesCSV.Error(),
		k.scoringCSV.Error(),
		k.games.Close(),
		k.scoring.Close(),
	)
}

func write(w *csv.Writer, record []string) error {
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
