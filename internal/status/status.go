// Package status classifies "now" against a restaurant's opening hours.
package status

import (
	"fmt"
	"strings"

	"github.com/example/tarest/internal/hours"
)

// Phrase is the open/closed classification shown next to a restaurant.
type Phrase int

const (
	Unknown Phrase = iota
	ClosedToday
	Closed
	OpensSoon
	Open
	ClosesSoon
)

// Lookahead is how long before an opening or closing time the "soon" phrases apply.
const Lookahead = 1800.0

const keyPrefix = "OpenCloseString-"

var phraseNames = [...]string{
	Unknown:     "unknown",
	ClosedToday: "closed today",
	Closed:      "closed",
	OpensSoon:   "opens soon",
	Open:        "open",
	ClosesSoon:  "closes soon",
}

func (p Phrase) String() string {
	if p < 0 || int(p) >= len(phraseNames) {
		return phraseNames[Unknown]
	}
	return phraseNames[p]
}

// Key is the string-table key callers localise the phrase with.
func (p Phrase) Key() string {
	return keyPrefix + p.String()
}

func (p Phrase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phrase) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), keyPrefix)
	for i, name := range phraseNames {
		if name == s {
			*p = Phrase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status phrase %q", string(b))
}

// Evaluate classifies now (seconds since midnight) against the slots of
// week[weekday]. It never fails; missing data yields Unknown.
func Evaluate(week hours.WeekSchedule, weekday int, now float64) Phrase {
	if len(week) == 0 {
		return Unknown
	}
	if weekday < 0 || weekday >= len(week) {
		return Unknown
	}
	today := week[weekday]
	if len(today) == 0 {
		return Unknown
	}
	if today[0].IsClosedAllDay() {
		return ClosedToday
	}

	for i, slot := range today {
		opensSoon := slot.Open - Lookahead
		closesSoon := slot.Close - Lookahead
		switch {
		case now < opensSoon:
			return Closed
		case now < slot.Open:
			return OpensSoon
		case now < closesSoon:
			return Open
		case now < slot.Close:
			return ClosesSoon
		}
		if i == len(today)-1 {
			return Closed
		}
	}
	return Unknown
}
