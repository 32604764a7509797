package hours

import (
	"math"
	"strconv"
	"strings"
)

const (
	tokenAnd       = "and"
	tokenSeparator = "-"
)

// ParseWeek converts one raw string per day into a WeekSchedule.
//
// Day strings that yield no slot, blank ones included, are dropped, so the
// result can be shorter than raw. Malformed input never fails: unknown tokens are taken as times and
// unparseable time parts count as zero.
func ParseWeek(raw []string) WeekSchedule {
	week := make(WeekSchedule, 0, len(raw))
	for _, s := range raw {
		day, ok := ParseDay(s)
		if !ok || len(day) == 0 {
			continue
		}
		week = append(week, day)
	}
	return week
}

// ParseDay parses the string of a single day. ok is false when s holds no
// token at all; a day with tokens but no recognised window yields an empty,
// non-nil schedule.
func ParseDay(s string) (day DaySchedule, ok bool) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return nil, false
	}

	day = DaySchedule{}
	expectOpen := true
	var open string
	for _, tok := range tokens {
		switch {
		case tok == "closed" || tok == "Closed":
			day = append(day, ClosedAllDay)
			expectOpen = true
		case tok == tokenAnd:
			expectOpen = true
		case tok == tokenSeparator:
			expectOpen = false
		case isFusedClose(tok):
			// the feed sometimes glues the separator to the close time ("-19:00")
			day = append(day, TimeSlot{
				Open:  SecondsSinceMidnight(open),
				Close: SecondsSinceMidnight(tok[1:]),
			})
			expectOpen = true
		case expectOpen:
			open = tok
		default:
			day = append(day, TimeSlot{
				Open:  SecondsSinceMidnight(open),
				Close: SecondsSinceMidnight(tok),
			})
			expectOpen = true
		}
	}
	return day, true
}

// isFusedClose matches a whole token of the form "-HH:MM".
func isFusedClose(tok string) bool {
	if len(tok) != 6 || tok[0] != '-' || tok[3] != ':' {
		return false
	}
	for _, i := range []int{1, 2, 4, 5} {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

// SecondsSinceMidnight converts "H", "H:MM" or "H:MM:SS.fff" into seconds.
// Part i (counted from the left, empty parts skipped) is weighted by 60^(2-i);
// a part that is not a finite number adds nothing.
func SecondsSinceMidnight(s string) float64 {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' })
	var seconds float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		seconds += v * math.Pow(60, float64(2-i))
	}
	return seconds
}
