// Package feed decodes the restaurant feed JSON and converts it into
// restaurant records.
package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/example/tarest/internal/errlog"
	"github.com/example/tarest/internal/hours"
	"github.com/example/tarest/internal/restaurants"
)

// Fallback coordinate for records without a usable location.
const (
	DefaultLatitude  = 52.453730238865944
	DefaultLongitude = 13.445109940799426
)

var ErrEmptyFeed = errors.New("feed: no restaurants in feed")

var kitchenFlags = map[string]string{
	"thai":     "🇹🇭",
	"italian":  "🇮🇹",
	"american": "🇺🇸",
	"german":   "🇩🇪",
	"chinese":  "🇨🇳",
}

type Location struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Element is one restaurant as it appears in the feed.
type Element struct {
	Name              string   `json:"name" validate:"required"`
	KitchenTypes      []string `json:"kitchenTypes"`
	OpeningHours      []string `json:"openinghours"`
	Location          Location `json:"location"`
	PresentationImage string   `json:"presentationImage"`
}

var validate = validator.New()

// Decode reads a feed document: a JSON array of elements.
func Decode(r io.Reader) ([]Element, error) {
	var elems []Element
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("feed: decode: %w", err)
	}
	if len(elems) == 0 {
		return nil, ErrEmptyFeed
	}
	for i, e := range elems {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("feed: element %d: %w", i, err)
		}
	}
	return elems, nil
}

// Convert builds restaurant records in feed order. Unknown kitchen types
// are reported to errs and skipped.
func Convert(elems []Element, errs *errlog.List) []restaurants.Restaurant {
	out := make([]restaurants.Restaurant, 0, len(elems))
	for _, e := range elems {
		out = append(out, restaurants.Restaurant{
			ID:        uuid.New(),
			Name:      e.Name,
			ImageURL:  e.PresentationImage,
			Flags:     Flags(e.KitchenTypes, errs),
			Latitude:  coordinate(e.Location.Lat, DefaultLatitude),
			Longitude: coordinate(e.Location.Lon, DefaultLongitude),
			Hours:     hours.ParseWeek(e.OpeningHours),
		}.WithDefaults())
	}
	return out
}

// Flags concatenates the flag of every known kitchen type.
func Flags(kitchens []string, errs *errlog.List) string {
	var b strings.Builder
	for _, k := range kitchens {
		flag, ok := kitchenFlags[k]
		if !ok {
			errs.Errorf("feed.Convert", "unknown kitchen type %q", k)
			continue
		}
		b.WriteString(flag)
	}
	return b.String()
}

func coordinate(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}

// Load decodes r and converts it. Failures are recorded in errs as well as
// returned.
func Load(r io.Reader, errs *errlog.List) ([]restaurants.Restaurant, error) {
	elems, err := Decode(r)
	if err != nil {
		errs.Add("feed.Load", errlog.Error, err.Error())
		return nil, err
	}
	errs.Add("feed.Load", errlog.Info, fmt.Sprintf("decoded %d restaurants", len(elems)))
	return Convert(elems, errs), nil
}
