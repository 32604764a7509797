package restaurants

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/example/tarest/internal/hours"
	"github.com/example/tarest/internal/status"
)

type SortStrategy int

const (
	AlphaAscending SortStrategy = iota
	AlphaDescending
	ByDistance
)

var sortNames = [...]string{
	AlphaAscending:  "alpha-asc",
	AlphaDescending: "alpha-desc",
	ByDistance:      "distance",
}

func (s SortStrategy) String() string {
	if s < 0 || int(s) >= len(sortNames) {
		return sortNames[AlphaAscending]
	}
	return sortNames[s]
}

// ParseSortStrategy accepts the names returned by String and the numeric values.
func ParseSortStrategy(v string) (SortStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "alpha-asc", "asc", "0":
		return AlphaAscending, nil
	case "alpha-desc", "desc", "1":
		return AlphaDescending, nil
	case "distance", "2":
		return ByDistance, nil
	}
	return AlphaAscending, fmt.Errorf("unknown sort strategy %q", v)
}

// Next is the strategy the sort button switches to. ByDistance is skipped
// while location access is not granted.
func (s SortStrategy) Next(locationAllowed bool) SortStrategy {
	switch s {
	case AlphaAscending:
		return AlphaDescending
	case AlphaDescending:
		if locationAllowed {
			return ByDistance
		}
		return AlphaAscending
	default:
		return AlphaAscending
	}
}

// Row is one line of the restaurant list.
type Row struct {
	Index     int           `json:"index"`
	Name      string        `json:"name"`
	ImageName string        `json:"imageName"`
	Status    status.Phrase `json:"status"`
	StatusKey string        `json:"statusKey"`
	Flags     string        `json:"flags"`
	Distance  float64       `json:"distance"`
}

// Rows builds the list for now, ordered by strategy. It returns nil when no
// restaurants are loaded. Distance is not known server side, so ByDistance
// keeps feed order.
func (s *Store) Rows(now time.Time, strategy SortStrategy) []Row {
	s.mu.RLock()
	list := s.snap.Restaurants
	s.mu.RUnlock()
	if len(list) == 0 {
		return nil
	}

	rows := make([]Row, len(list))
	for i, r := range list {
		p := status.At(r.Hours, now)
		rows[i] = Row{
			Index:     i,
			Name:      r.Name,
			ImageName: r.ThumbImage,
			Status:    p,
			StatusKey: p.Key(),
			Flags:     r.Flags,
		}
	}

	switch strategy {
	case AlphaAscending:
		slices.SortStableFunc(rows, func(a, b Row) int { return strings.Compare(a.Name, b.Name) })
	case AlphaDescending:
		slices.SortStableFunc(rows, func(a, b Row) int { return strings.Compare(b.Name, a.Name) })
	case ByDistance:
		slices.SortStableFunc(rows, func(a, b Row) int {
			switch {
			case a.Distance < b.Distance:
				return -1
			case a.Distance > b.Distance:
				return 1
			}
			return 0
		})
	}
	return rows
}

type DayLine struct {
	Weekday string `json:"weekday"`
	Hours   string `json:"hours"`
	Today   bool   `json:"today"`
}

// Detail is the data behind the restaurant detail screen.
type Detail struct {
	Index     int           `json:"index"`
	Name      string        `json:"name"`
	ImageName string        `json:"imageName"`
	ImageURL  string        `json:"imageUrl,omitempty"`
	Flags     string        `json:"flags"`
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Status    status.Phrase `json:"status"`
	StatusKey string        `json:"statusKey"`
	Days      []DayLine     `json:"days"`
}

func (s *Store) Detail(i int, now time.Time) (Detail, bool) {
	r, ok := s.Get(i)
	if !ok {
		return Detail{}, false
	}
	weekday, _ := status.Moment(now)
	p := status.At(r.Hours, now)
	d := Detail{
		Index:     i,
		Name:      r.Name,
		ImageName: r.BigImage,
		ImageURL:  r.ImageURL,
		Flags:     r.Flags,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Status:    p,
		StatusKey: p.Key(),
		Days:      DayLines(r.Hours, weekday),
	}
	return d, true
}

// DayLines renders every day of week, marking today.
func DayLines(week hours.WeekSchedule, today int) []DayLine {
	out := make([]DayLine, len(week))
	for i, day := range week {
		out[i] = DayLine{Weekday: WeekdayLabel(i), Hours: hours.FormatDay(day), Today: i == today}
	}
	return out
}

// WeekdayLabel names schedule index i, Sunday = 0.
func WeekdayLabel(i int) string {
	if i >= 0 && i < 7 {
		return time.Weekday(i).String()
	}
	return fmt.Sprintf("Day %d", i)
}
