package game

import (
	"fmt"
	"strconv"
	"strings"
)

// headerDate is the text of the Date column in header rows repeated inside tables
const headerDate = "Date"

// Ordinal converts a YYYY-MM-DD date to an approximate day number
// (year*365 + month*30 + day). It only orders dates, it does not measure them.
// An empty date yields -1.
func Ordinal(date string) (int, error) {
	if date == "" {
		return -1, nil
	}

	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
		}
		nums[i] = n
	}

	year, month, day := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid date %q: month or day out of range", date)
	}

	return year*365 + month*30 + day, nil
}

// DateRange is a closed interval of game dates
type DateRange struct {
	Start string
	End   string

	startOrd int
	endOrd   int
}

// NewDateRange validates both bounds and returns the range
func NewDateRange(start, end string) (*DateRange, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("start and end dates are required")
	}

	startOrd, err := Ordinal(start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	endOrd, err := Ordinal(end)
	if err != nil {
		return nil, fmt.Errorf("end date: %w", err)
	}
	if startOrd > endOrd {
		return nil, fmt.Errorf("start date %s is after end date %s", start, end)
	}

	return &DateRange{
		Start:    start,
		End:      end,
		startOrd: startOrd,
		endOrd:   endOrd,
	}, nil
}

// Contains reports whether dateText falls inside the range.
// Empty text, repeated header text and unparsable text are never in range.
func (r *DateRange) Contains(dateText string) bool {
	if dateText == "" || dateText == headerDate {
		return false
	}
	n, err := Ordinal(dateText)
	if err != nil {
		return false
	}
	return n >= r.startOrd && n <= r.endOrd
}

// InRange reports whether dateText lies within [start, end] inclusive
func InRange(dateText, start, end string) bool {
	if dateText == "" || dateText == headerDate {
		return false
	}

	n, err := Ordinal(dateText)
	if err != nil {
		return false
	}
	s, err := Ordinal(start)
	if err != nil {
		return false
	}
	e, err := Ordinal(end)
	if err != nil {
		return false
	}

	return n >= s && n <= e
}
