// Package hours turns the free-form opening-hours strings of the restaurant feed
// into per-day lists of time slots.
package hours

// TimeSlot is one open/close window, both ends in seconds since local midnight.
type TimeSlot struct {
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
}

// ClosedAllDay is the sentinel slot for a day without any service window.
var ClosedAllDay = TimeSlot{Open: -1, Close: -1}

func (s TimeSlot) IsClosedAllDay() bool {
	return s == ClosedAllDay
}

// DaySchedule holds the slots of one day in feed order. Empty means no data
// for that day, which is not the same as ClosedAllDay.
type DaySchedule []TimeSlot

// ClosedAllDay reports whether the day starts with the sentinel slot.
func (d DaySchedule) ClosedAllDay() bool {
	return len(d) > 0 && d[0].IsClosedAllDay()
}

// WeekSchedule is indexed by weekday, Sunday = 0.
type WeekSchedule []DaySchedule

// Day returns the schedule for index i, or nil when i is out of range.
func (w WeekSchedule) Day(i int) DaySchedule {
	if i < 0 || i >= len(w) {
		return nil
	}
	return w[i]
}
