package status

import (
	"time"

	"github.com/example/tarest/internal/hours"
)

// Moment splits t, in its own location, into the weekday index used by
// WeekSchedule (Sunday = 0) and the seconds elapsed since local midnight.
func Moment(t time.Time) (weekday int, seconds float64) {
	h, m, s := t.Clock()
	seconds = float64(h*3600+m*60+s) + float64(t.Nanosecond())/1e9
	return int(t.Weekday()), seconds
}

// At evaluates week for the instant t.
func At(week hours.WeekSchedule, t time.Time) Phrase {
	weekday, seconds := Moment(t)
	return Evaluate(week, weekday, seconds)
}
