package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pfrederiksen/hockeyref-scraper/internal/game"
)

const (
	GameFile           = "gamedata.csv"
	ScoringFile        = "scoringdata.csv"
	PlayoffGameFile    = "playoffgamedata.csv"
	PlayoffScoringFile = "playoffscoringdata.csv"
)

// Storage handles the output files inside a data directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating the data directory if needed
func New(dataDir string) (*Storage, error) {
	dataDir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Lookup returns a Storage for reading an existing data directory.
// Unlike New it never creates the directory.
func Lookup(dataDir string) (*Storage, error) {
	dataDir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}
	return &Storage{dataDir: dataDir}, nil
}

// expandHome expands a leading ~/ to the home directory
func expandHome(dataDir string) (string, error) {
	if !strings.HasPrefix(dataDir, "~/") {
		return dataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dataDir[2:]), nil
}

// Paths returns the games and scoring file paths for a mode
func (s *Storage) Paths(mode game.Mode) (string, string) {
	if mode == game.Playoffs {
		return filepath.Join(s.dataDir, PlayoffGameFile), filepath.Join(s.dataDir, PlayoffScoringFile)
	}
	return filepath.Join(s.dataDir, GameFile), filepath.Join(s.dataDir, ScoringFile)
}

// Open opens the mode's file pair for appending. The caller must Close the result.
func (s *Storage) Open(mode game.Mode) (*Sinks, error) {
	gamesPath, scoringPath := s.Paths(mode)

	games, err := openAppend(gamesPath)
	if err != nil {
		return nil, err
	}

	scoring, err := openAppend(scoringPath)
	if err != nil {
		games.Close()
		return nil, err
	}

	return &Sinks{
		games:      games,
		scoring:    scoring,
		gamesCSV:   csv.NewWriter(games),
		scoringCSV: csv.NewWriter(scoring),
	}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}

// LastGameID returns the highest game id in the mode's games file, or 0 when
// the file is missing or holds no games.
func (s *Storage) LastGameID(mode game.Mode) (int, error) {
	gamesPath, _ := s.Paths(mode)

	f, err := os.Open(gamesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("opening %s: %w", gamesPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	last := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", gamesPath, err)
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			// header line
			continue
		}
		if id > last {
			last = id
		}
	}

	return last, nil
}
