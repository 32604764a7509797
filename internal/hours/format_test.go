package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "10:00", FormatClock(36000))
	assert.Equal(t, "15:30", FormatClock(55800))
	assert.Equal(t, "10:00", FormatClock(36000.5678))
	assert.Equal(t, "09:05", FormatClock(32759))
	assert.Equal(t, "25:00", FormatClock(90000))
	assert.Equal(t, "--:--", FormatClock(-1))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "", FormatDay(nil))
	assert.Equal(t, "closed", FormatDay(DaySchedule{ClosedAllDay}))
	assert.Equal(t, "closed", FormatDay(DaySchedule{ClosedAllDay, {36000, 43200}}))
	assert.Equal(t, "10:00 - 13:00 and 14:00 - 15:30",
		FormatDay(DaySchedule{{36000, 46800}, {50400, 55800}}))
	assert.Equal(t, "10:00 - 12:00 and closed",
		FormatDay(DaySchedule{{36000, 43200}, ClosedAllDay}))
}

func TestWeekSchedule_Day(t *testing.T) {
	w := WeekSchedule{{ClosedAllDay}, {{36000, 43200}}}
	assert.Nil(t, w.Day(-1))
	assert.Nil(t, w.Day(2))
	assert.True(t, w.Day(0).ClosedAllDay())
	assert.False(t, w.Day(1).ClosedAllDay())
}
