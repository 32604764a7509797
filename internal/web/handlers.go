package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/example/tarest/internal/errlog"
	"github.com/example/tarest/internal/feed"
	"github.com/example/tarest/internal/hours"
	"github.com/example/tarest/internal/prefs"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/snapshots"
	"github.com/example/tarest/internal/status"
)

type listResponse struct {
	Available bool              `json:"available"`
	Sort      string            `json:"sort"`
	Rows      []restaurants.Row `json:"rows"`
}

func (s *Server) prefsFor(r *http.Request) prefs.State {
	if s.Prefs == nil {
		return prefs.Defaults()
	}
	return s.Prefs.Read(r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	strategy := s.prefsFor(r).SortStrategy
	if v := r.URL.Query().Get("sort"); v != "" {
		parsed, err := restaurants.ParseSortStrategy(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	rows := s.Store.Rows(s.now(), strategy)
	resp := listResponse{Available: rows != nil, Sort: strategy.String(), Rows: rows}
	if rows == nil {
		resp.Rows = []restaurants.Row{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	d, ok := s.Store.Detail(idx, s.now())
	if !ok {
		writeError(w, http.StatusNotFound, "no restaurant at index "+strconv.Itoa(idx))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type parseRequest struct {
	Days []string   `json:"days"`
	At   *time.Time `json:"at,omitempty"`
}

type parseResponse struct {
	Week      hours.WeekSchedule    `json:"week"`
	Days      []restaurants.DayLine `json:"days"`
	Status    *status.Phrase        `json:"status,omitempty"`
	StatusKey string                `json:"statusKey,omitempty"`
}

func (s *Server) handleParseHours(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, bodyErrorStatus(err), err.Error())
		return
	}

	week := hours.ParseWeek(req.Days)
	today := -1
	resp := parseResponse{Week: week}
	if req.At != nil {
		p := status.At(week, *req.At)
		today, _ = status.Moment(*req.At)
		resp.Status = &p
		resp.StatusKey = p.Key()
	}
	resp.Days = restaurants.DayLines(week, today)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prefsFor(r))
}

func (s *Server) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	if s.Prefs == nil {
		writeError(w, http.StatusServiceUnavailable, "prefs cookie keys not configured")
		return
	}
	var st prefs.State
	if err := decodeJSON(w, r, &st); err != nil {
		writeError(w, bodyErrorStatus(err), err.Error())
		return
	}
	st = prefs.Restore(st)
	if err := s.Prefs.Write(w, r, st); err != nil {
		s.Errors.Add("web.putPrefs", errlog.Error, err.Error())
		writeError(w, http.StatusInternalServerError, "could not store prefs")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type feedResponse struct {
	Snapshot uuid.UUID `json:"snapshot"`
	Count    int       `json:"count"`
	Stored   bool      `json:"stored"`
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	list, err := feed.Load(http.MaxBytesReader(w, r.Body, maxBody), s.Errors)
	if err != nil {
		code := bodyErrorStatus(err)
		if errors.Is(err, feed.ErrEmptyFeed) {
			code = http.StatusUnprocessableEntity
		}
		writeError(w, code, err.Error())
		return
	}

	snap := restaurants.NewSnapshot(list, s.now())
	stored := false
	if s.Snapshots != nil {
		if err := s.Snapshots.Save(r.Context(), snap, "api"); err != nil {
			s.Errors.Add("web.feed", errlog.Error, err.Error())
			writeError(w, http.StatusInternalServerError, "could not store snapshot")
			return
		}
		stored = true
	}
	s.Store.Replace(snap)
	writeJSON(w, http.StatusOK, feedResponse{Snapshot: snap.ID, Count: len(list), Stored: stored})
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	entries := s.Errors.Entries()
	if entries == nil {
		entries = []errlog.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.Snapshots == nil {
		writeJSON(w, http.StatusOK, []snapshots.Meta{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	metas, err := s.Snapshots.List(r.Context(), limit)
	if err != nil {
		s.Errors.Add("web.snapshots", errlog.Error, err.Error())
		writeError(w, http.StatusInternalServerError, "could not list snapshots")
		return
	}
	if metas == nil {
		metas = []snapshots.Meta{}
	}
	writeJSON(w, http.StatusOK, metas)
}
