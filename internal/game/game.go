package game

import (
	"fmt"
	"strconv"
	"strings"
)

// MinGameCells is the number of cells a schedule row needs: date, visitor,
// visitor goals, home, home goals.
const MinGameCells = 5

// GameColumns is the number of schedule columns kept in the games file:
// date through notes. Cells past it are not written.
const GameColumns = 9

// MinScoringCells is the number of cells a scoring row needs: time, team, situation.
const MinScoringCells = 3

// Mode selects which schedule table is read and which file pair is written
type Mode int

const (
	RegularSeason Mode = iota
	Playoffs
)

// TableID returns the id of the schedule table on a season index page
func (m Mode) TableID() string {
	if m == Playoffs {
		return "games_playoffs"
	}
	return "games"
}

func (m Mode) String() string {
	if m == Playoffs {
		return "playoffs"
	}
	return "regular"
}

// GameRow is one row of a season schedule table
type GameRow struct {
	Date         string `json:"date"`
	Visitor      string `json:"visitor"`
	VisitorGoals string `json:"visitor_goals"`
	Home         string `json:"home"`
	HomeGoals    string `json:"home_goals"`
	Decision     string `json:"decision"` // OT/SO marker column, often blank
	Attendance   string `json:"attendance"`
	Length       string `json:"length"`
	Notes        string `json:"notes"`
	BoxscorePath string `json:"boxscore_path,omitempty"`
}

// NewGameRow builds a GameRow from the text of a schedule row's cells.
// Only the first GameColumns cells are kept; missing trailing cells stay empty.
func NewGameRow(cells []string, boxscorePath string) (*GameRow, error) {
	if len(cells) < MinGameCells {
		return nil, fmt.Errorf("schedule row has %d cells, need at least %d", len(cells), MinGameCells)
	}

	at := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	return &GameRow{
		Date:         cells[0],
		Visitor:      cells[1],
		VisitorGoals: cells[2],
		Home:         cells[3],
		HomeGoals:    cells[4],
		Decision:     at(5),
		Attendance:   at(6),
		Length:       at(7),
		Notes:        at(8),
		BoxscorePath: boxscorePath,
	}, nil
}

// Fields returns the row's columns in source table order
func (g *GameRow) Fields() []string {
	return []string{
		g.Date,
		g.Visitor,
		g.VisitorGoals,
		g.Home,
		g.HomeGoals,
		g.Decision,
		g.Attendance,
		g.Length,
		g.Notes,
	}
}

// HasBoxscore reports whether the row links to a game detail page
func (g *GameRow) HasBoxscore() bool {
	return g.BoxscorePath != ""
}

// Record returns the CSV record for the row prefixed with its game id
func (g *GameRow) Record(gameID int) []string {
	return append([]string{strconv.Itoa(gameID)}, g.Fields()...)
}

// ScoringHeader is the header record of a scoring file
var ScoringHeader = []string{"GameId", "Period", "Min", "Sec", "Team", "Situation"}

// ScoringEvent is one goal from a game's scoring summary
type ScoringEvent struct {
	GameID    int    `json:"game_id"`
	Period    Period `json:"period"`
	Minute    string `json:"minute"`
	Second    string `json:"second"`
	Team      string `json:"team"`
	Situation string `json:"situation"`
}

// NewScoringEvent builds a ScoringEvent from the text of a scoring row's cells
func NewScoringEvent(gameID int, period Period, cells []string) (*ScoringEvent, error) {
	if len(cells) < MinScoringCells {
		return nil, fmt.Errorf("scoring row has %d cells, need at least %d", len(cells), MinScoringCells)
	}

	minute, second, err := SplitClock(cells[0])
	if err != nil {
		return nil, err
	}

	return &ScoringEvent{
		GameID:    gameID,
		Period:    period,
		Minute:    minute,
		Second:    second,
		Team:      cells[1],
		Situation: strings.TrimSpace(cells[2]),
	}, nil
}

// Record returns the CSV record for the event
func (e *ScoringEvent) Record() []string {
	return []string{
		strconv.Itoa(e.GameID),
		strconv.Itoa(int(e.Period)),
		e.Minute,
		e.Second,
		e.Team,
		e.Situation,
	}
}

// SplitClock splits "M:SS" or "MM:SS" into its minute and second text.
// The parts are returned verbatim, so "14:05" yields "14" and "05".
func SplitClock(text string) (string, string, error) {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ":")
	if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
		return "", "", fmt.Errorf("malformed clock %q", text)
	}
	return parts[0], parts[1], nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
