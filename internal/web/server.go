package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/tarest/internal/auth"
	"github.com/example/tarest/internal/errlog"
	"github.com/example/tarest/internal/logger"
	"github.com/example/tarest/internal/prefs"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/snapshots"
)

// SnapshotRepo is the persistence used by the admin routes.
type SnapshotRepo interface {
	Save(ctx context.Context, snap restaurants.Snapshot, source string) error
	List(ctx context.Context, limit int) ([]snapshots.Meta, error)
}

type Server struct {
	Store  *restaurants.Store
	Prefs  *prefs.Codec
	Errors *errlog.List
	// Snapshots may be nil; fed restaurants are then kept in memory only.
	Snapshots      SnapshotRepo
	AdminTokenHash string
	// Location is the zone opening hours are evaluated in. Defaults to time.Local.
	Location *time.Location
	Clock    func() time.Time
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Route("/restaurants", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{index}", s.handleDetail)
	})
	r.Post("/hours/parse", s.handleParseHours)

	r.Get("/prefs", s.handleGetPrefs)
	r.Put("/prefs", s.handlePutPrefs)

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAdmin(s.AdminTokenHash))
		r.Post("/feed", s.handleFeed)
		r.Get("/errors", s.handleErrors)
		r.Get("/snapshots", s.handleSnapshots)
	})

	return r
}

func (s *Server) now() time.Time {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock()
	}
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return now
}

func requestLogger(next http.Handler) http.Handler {
	log := logger.Named("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Named("http").Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
