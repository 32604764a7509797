// Package restaurants holds the restaurant list served by tarest and the
// views derived from it.
package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/tarest/internal/hours"
)

const (
	DefaultThumbImage = "No Image 64"
	DefaultBigImage   = "No Image 128"
)

type Restaurant struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	ThumbImage string             `json:"thumbImage"`
	BigImage   string             `json:"bigImage"`
	ImageURL   string             `json:"imageUrl,omitempty"`
	Flags      string             `json:"flags"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	Hours      hours.WeekSchedule `json:"hours"`
}

// WithDefaults fills in the placeholder image names.
func (r Restaurant) WithDefaults() Restaurant {
	if r.ThumbImage == "" {
		r.ThumbImage = DefaultThumbImage
	}
	if r.BigImage == "" {
		r.BigImage = DefaultBigImage
	}
	return r
}

// Snapshot is one complete restaurant list as decoded from a feed.
type Snapshot struct {
	ID          uuid.UUID    `json:"id"`
	FetchedAt   time.Time    `json:"fetchedAt"`
	Restaurants []Restaurant `json:"restaurants"`
}

// NewSnapshot stamps list with a fresh id and the given time.
func NewSnapshot(list []Restaurant, at time.Time) Snapshot {
	return Snapshot{ID: uuid.New(), FetchedAt: at, Restaurants: list}
}
