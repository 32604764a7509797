package hours

import (
	"fmt"
	"math"
	"strings"
)

// FormatClock renders seconds since midnight as zero-padded "HH:MM".
// Seconds and fractions are truncated. Negative values render as "--:--".
func FormatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "--:--"
	}
	total := int64(seconds) / 60
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatDay renders a day the way the detail screen lists it:
// "closed", "" for no data, or "HH:MM - HH:MM" windows joined by " and ".
func FormatDay(d DaySchedule) string {
	if len(d) == 0 {
		return ""
	}
	if d.ClosedAllDay() {
		return "closed"
	}
	windows := make([]string, 0, len(d))
	for _, s := range d {
		if s.IsClosedAllDay() {
			windows = append(windows, "closed")
			continue
		}
		windows = append(windows, FormatClock(s.Open)+" - "+FormatClock(s.Close))
	}
	return strings.Join(windows, " and ")
}
