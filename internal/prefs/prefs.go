// Package prefs stores the client's UI state in a signed and encrypted cookie.
package prefs

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/example/tarest/internal/restaurants"
)

// Map region shown before the user has moved the map.
const (
	DefaultCenterLat = 51.117027000000036
	DefaultCenterLon = 10.333652
	DefaultSpanLat   = 9.589147244505277
	DefaultSpanLon   = 10.026110459526336
)

const (
	CookieName = "tarest_prefs"
	maxAge     = 365 * 24 * time.Hour
)

// MapContentMark selects what the map shows.
type MapContentMark int

const (
	MapAllRestaurants MapContentMark = iota
	MapSelectedRestaurant
)

type State struct {
	SelectedTab    int                      `json:"selectedTab"`
	SortStrategy   restaurants.SortStrategy `json:"sortStrategy"`
	MapCenterLat   float64                  `json:"mapCenterLat"`
	MapCenterLon   float64                  `json:"mapCenterLon"`
	MapSpanLat     float64                  `json:"mapSpanLat"`
	MapSpanLon     float64                  `json:"mapSpanLon"`
	MapContentMark MapContentMark           `json:"mapContentMark"`
}

func Defaults() State {
	return State{
		SortStrategy: restaurants.AlphaAscending,
		MapCenterLat: DefaultCenterLat,
		MapCenterLon: DefaultCenterLon,
		MapSpanLat:   DefaultSpanLat,
		MapSpanLon:   DefaultSpanLon,
	}
}

// Restore merges a stored state onto the defaults. The map region is only
// taken over when all four of its values are non-zero.
func Restore(stored State) State {
	s := Defaults()
	s.SelectedTab = stored.SelectedTab
	s.SortStrategy = stored.SortStrategy
	s.MapContentMark = stored.MapContentMark
	if stored.MapCenterLat != 0 && stored.MapCenterLon != 0 && stored.MapSpanLat != 0 && stored.MapSpanLon != 0 {
		s.MapCenterLat = stored.MapCenterLat
		s.MapCenterLon = stored.MapCenterLon
		s.MapSpanLat = stored.MapSpanLat
		s.MapSpanLon = stored.MapSpanLon
	}
	if s.SortStrategy < restaurants.AlphaAscending || s.SortStrategy > restaurants.ByDistance {
		s.SortStrategy = restaurants.AlphaAscending
	}
	return s
}

type Codec struct {
	sc *securecookie.SecureCookie
}

func NewCodec(hashKey, blockKey []byte) *Codec {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Codec{sc: sc}
}

func (c *Codec) Encode(s State) (string, error) {
	return c.sc.Encode(CookieName, s)
}

func (c *Codec) Decode(value string) (State, error) {
	var s State
	if err := c.sc.Decode(CookieName, value, &s); err != nil {
		return State{}, err
	}
	return Restore(s), nil
}

// Read returns the request's state, or the defaults when the cookie is
// missing or does not verify.
func (c *Codec) Read(r *http.Request) State {
	ck, err := r.Cookie(CookieName)
	if err != nil {
		return Defaults()
	}
	s, err := c.Decode(ck.Value)
	if err != nil {
		return Defaults()
	}
	return s
}

func (c *Codec) Write(w http.ResponseWriter, r *http.Request, s State) error {
	encoded, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
		MaxAge:   int(maxAge.Seconds()),
	})
	return nil
}

func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
