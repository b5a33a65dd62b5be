package game

import "strings"

// Period identifies the game segment a scoring row belongs to
type Period int

const (
	PeriodNone Period = iota
	PeriodFirst
	PeriodSecond
	PeriodThird
	PeriodOvertime
	PeriodShootout
)

var periodMarkers = map[string]Period{
	"1st Period": PeriodFirst,
	"2nd Period": PeriodSecond,
	"3rd Period": PeriodThird,
	"OT Period":  PeriodOvertime,
	"Shootout":   PeriodShootout,
}

// ParsePeriodMarker reports whether text is a period marker row and which
// period it opens. Numbered playoff overtimes ("2nd OT Period") count as overtime.
func ParsePeriodMarker(text string) (Period, bool) {
	text = strings.Join(strings.Fields(text), " ")
	if p, ok := periodMarkers[text]; ok {
		return p, true
	}
	if strings.HasSuffix(text, " OT Period") {
		return PeriodOvertime, true
	}
	return PeriodNone, false
}

// Recorded reports whether goals in this period are written out.
// Shootout attempts are not goals and are dropped.
func (p Period) Recorded() bool {
	return p != PeriodShootout
}

func (p Period) String() string {
	switch p {
	case PeriodFirst:
		return "1st Period"
	case PeriodSecond:
		return "2nd Period"
	case PeriodThird:
		return "3rd Period"
	case PeriodOvertime:
		return "OT Period"
	case PeriodShootout:
		return "Shootout"
	default:
		return "none"
	}
}
