package hours

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeek(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want WeekSchedule
	}{
		{"nil input", nil, WeekSchedule{}},
		{"empty input", []string{}, WeekSchedule{}},
		{"closed", []string{"closed"}, WeekSchedule{{ClosedAllDay}}},
		{"capital closed", []string{"Closed"}, WeekSchedule{{ClosedAllDay}}},
		{
			"two windows",
			[]string{"10:00 - 13:00 and 14:00 - 15:30"},
			WeekSchedule{{{36000, 46800}, {50400, 55800}}},
		},
		{"blank day dropped", []string{"  "}, WeekSchedule{}},
		{"empty string dropped", []string{""}, WeekSchedule{}},
		{"fused close time", []string{"10:00 -19:00"}, WeekSchedule{{{36000, 68400}}}},
		{"fused close other hour", []string{"11:30 -22:15"}, WeekSchedule{{{41400, 80100}}}},
		{"hours only", []string{"10 - 13"}, WeekSchedule{{{36000, 46800}}}},
		{"repeated spaces", []string{"10:00 - 13:00 and   15:30 - 19:00 and 20:30 - 21:00"},
			WeekSchedule{{{36000, 46800}, {55800, 68400}, {73800, 75600}}}},
		{"tabs and newlines", []string{"\t10:00\t-\n13:00 "}, WeekSchedule{{{36000, 46800}}}},
		{"missing open", []string{"- 13"}, WeekSchedule{{{0, 46800}}}},
		{"no separator", []string{"10 and 13"}, WeekSchedule{}},
		{"only and", []string{"and"}, WeekSchedule{}},
		{"only separator", []string{"-"}, WeekSchedule{}},
		{"lone open time", []string{"10:00", "closed"}, WeekSchedule{{ClosedAllDay}}},
		{"garbage tokens", []string{"noon - late"}, WeekSchedule{{{0, 0}}}},
		{
			"blank entries shift following days",
			[]string{"closed", " ", "7:00 - 9:00"},
			WeekSchedule{{ClosedAllDay}, {{25200, 32400}}},
		},
		{
			"closed after a window",
			[]string{"10:00 - 12:00 closed"},
			WeekSchedule{{{36000, 43200}, ClosedAllDay}},
		},
		{
			// the pending open time survives a slot and is reused
			"stale open buffer",
			[]string{"10 - 13 - 14"},
			WeekSchedule{{{36000, 46800}, {36000, 50400}}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseWeek(c.in))
		})
	}
}

func TestParseWeek_FusedTokenIsWholeTokenOnly(t *testing.T) {
	// neither a longer token nor a single-digit hour triggers the repair; both are
	// just buffered as open times, so the day yields no slot and is dropped
	assert.Equal(t, WeekSchedule{}, ParseWeek([]string{"10:00 -19:00:00"}))
	assert.Equal(t, WeekSchedule{}, ParseWeek([]string{"10:00 -9:00"}))
	assert.Equal(t, WeekSchedule{}, ParseWeek([]string{"10:00 x-19:00"}))
}

func TestParseWeek_FusedTokenUsesBufferedOpen(t *testing.T) {
	week := ParseWeek([]string{"8:00 - 9:00 and 17:00 -19:00"})
	require.Len(t, week, 1)
	assert.Equal(t, DaySchedule{{28800, 32400}, {61200, 68400}}, week[0])
}

func TestParseWeek_SlotCountMatchesSeparators(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(4)
		windows := make([]string, n)
		for j := range windows {
			windows[j] = fmt.Sprintf("%02d:%02d - %02d:%02d",
				rng.Intn(24), rng.Intn(60), rng.Intn(24), rng.Intn(60))
		}
		day := strings.Join(windows, " and ")

		week := ParseWeek([]string{day})
		require.Len(t, week, 1, day)
		assert.Len(t, week[0], strings.Count(day, " - "), day)
	}
}

func TestParseDay(t *testing.T) {
	day, ok := ParseDay("   ")
	assert.False(t, ok)
	assert.Nil(t, day)

	day, ok = ParseDay("and")
	assert.True(t, ok)
	assert.NotNil(t, day)
	assert.Empty(t, day)
}

func TestSecondsSinceMidnight(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12", 43200},
		{"12:30", 45000},
		{"0:00:30.5", 30.5},
		{"10:00:00.5678", 36000.5678},
		{"7:05", 25500},
		{"", 0},
		{"abc", 0},
		{"12:xx", 43200},
		{"xx:30", 1800},
		{"10::30", 37800},
		{"NaN", 0},
		{"Inf:30", 1800},
		{"1:1:1:60", 3661 + 1},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.InDelta(t, c.want, SecondsSinceMidnight(c.in), 1e-9)
		})
	}
}
