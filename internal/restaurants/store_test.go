package restaurants

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tarest/internal/hours"
	"github.com/example/tarest/internal/status"
)

// Wednesday 2021-05-19 11:00 UTC
var wed11 = time.Date(2021, 5, 19, 11, 0, 0, 0, time.UTC)

func everyDay(raw string) hours.WeekSchedule {
	days := make([]string, 7)
	for i := range days {
		days[i] = raw
	}
	return hours.ParseWeek(days)
}

func sample() Snapshot {
	return NewSnapshot([]Restaurant{
		{Name: "Pho Bar", Flags: "🇹🇭", Hours: everyDay("10:00 - 11:20")},
		{Name: "Alpenstube", Flags: "🇩🇪", Hours: everyDay("closed")},
		{Name: "Mamma Mia", Flags: "🇮🇹", ThumbImage: "mamma64", Hours: everyDay("09:00 - 22:00")},
		{Name: "No Hours"},
	}, wed11)
}

func TestStore_ReplaceFillsDefaultsAndNotifies(t *testing.T) {
	s := NewStore()
	_, ok := s.Snapshot()
	assert.False(t, ok)
	assert.Nil(t, s.Rows(wed11, AlphaAscending))

	ch := s.Subscribe()
	snap := sample()
	s.Replace(snap)

	select {
	case ev := <-ch:
		assert.Equal(t, EventReplaced, ev.Kind)
		assert.Equal(t, snap.ID, ev.SnapshotID)
		assert.Equal(t, 4, ev.Count)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	r, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, DefaultThumbImage, r.ThumbImage)
	assert.Equal(t, DefaultBigImage, r.BigImage)
	r, _ = s.Get(2)
	assert.Equal(t, "mamma64", r.ThumbImage)

	_, ok = s.Get(4)
	assert.False(t, ok)
	// caller's slice is untouched
	assert.Empty(t, snap.Restaurants[0].ThumbImage)

	s.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	s := NewStore()
	_ = s.Subscribe()
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			s.Replace(sample())
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Replace blocked on a full subscriber")
	}
}

func TestStore_Rows(t *testing.T) {
	s := NewStore()
	s.Replace(sample())

	rows := s.Rows(wed11, AlphaAscending)
	require.Len(t, rows, 4)
	names := []string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name}
	assert.Equal(t, []string{"Alpenstube", "Mamma Mia", "No Hours", "Pho Bar"}, names)

	byName := map[string]Row{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Equal(t, status.ClosesSoon, byName["Pho Bar"].Status)
	assert.Equal(t, status.ClosedToday, byName["Alpenstube"].Status)
	assert.Equal(t, status.Open, byName["Mamma Mia"].Status)
	assert.Equal(t, status.Unknown, byName["No Hours"].Status)
	assert.Equal(t, "OpenCloseString-open", byName["Mamma Mia"].StatusKey)
	assert.Equal(t, 2, byName["Mamma Mia"].Index)

	desc := s.Rows(wed11, AlphaDescending)
	assert.Equal(t, "Pho Bar", desc[0].Name)

	feed := s.Rows(wed11, ByDistance)
	assert.Equal(t, "Pho Bar", feed[0].Name)
	assert.Equal(t, 3, feed[3].Index)
}

func TestStore_Detail(t *testing.T) {
	s := NewStore()
	s.Replace(sample())

	d, ok := s.Detail(0, wed11)
	require.True(t, ok)
	assert.Equal(t, "Pho Bar", d.Name)
	assert.Equal(t, DefaultBigImage, d.ImageName)
	require.Len(t, d.Days, 7)
	assert.Equal(t, "Wednesday", d.Days[3].Weekday)
	assert.True(t, d.Days[3].Today)
	assert.False(t, d.Days[0].Today)
	assert.Equal(t, "10:00 - 11:20", d.Days[3].Hours)

	d, _ = s.Detail(1, wed11)
	assert.Equal(t, "closed", d.Days[0].Hours)

	_, ok = s.Detail(-1, wed11)
	assert.False(t, ok)
}

func TestSortStrategy(t *testing.T) {
	assert.Equal(t, AlphaDescending, AlphaAscending.Next(false))
	assert.Equal(t, AlphaAscending, AlphaDescending.Next(false))
	assert.Equal(t, ByDistance, AlphaDescending.Next(true))
	assert.Equal(t, AlphaAscending, ByDistance.Next(true))

	for _, s := range []SortStrategy{AlphaAscending, AlphaDescending, ByDistance} {
		got, err := ParseSortStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseSortStrategy("1")
	require.NoError(t, err)
	assert.Equal(t, AlphaDescending, got)
	_, err = ParseSortStrategy("random")
	assert.Error(t, err)
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "Sunday", WeekdayLabel(0))
	assert.Equal(t, "Saturday", WeekdayLabel(6))
	assert.Equal(t, "Day 7", WeekdayLabel(7))
}
