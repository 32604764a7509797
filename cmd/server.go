package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/tarest/internal/db"
	"github.com/example/tarest/internal/errlog"
	"github.com/example/tarest/internal/logger"
	"github.com/example/tarest/internal/migrate"
	"github.com/example/tarest/internal/prefs"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/snapshots"
	"github.com/example/tarest/internal/watcher"
	"github.com/example/tarest/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the HTTP API and the status watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireCookieKeys(); err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			log := logger.Named("server")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			errs := errlog.New(cfg.ErrLogPath, cfg.ErrLogKeepInfo)
			if err := errs.Load(); err != nil {
				log.Warn().Err(err).Msg("error list not restored")
			}

			store := restaurants.NewStore()
			repo := snapshots.NewRepo(d)
			snap, err := repo.Latest(ctx)
			switch {
			case err == nil:
				store.Replace(snap)
				log.Info().Str("snapshot", snap.ID.String()).Int("count", len(snap.Restaurants)).Msg("restaurants loaded")
			case errors.Is(err, db.ErrNotFound):
				log.Info().Msg("no snapshot stored yet, waiting for a feed")
			default:
				return fmt.Errorf("load snapshot: %w", err)
			}

			w := &watcher.Watcher{
				Store:    store,
				Interval: cfg.WatchInterval,
				Clock:    func() time.Time { return time.Now().In(loc) },
			}
			ws := &web.Server{
				Store:          store,
				Prefs:          prefs.NewCodec(cfg.CookieHashKey, cfg.CookieBlockKey),
				Errors:         errs,
				Snapshots:      repo,
				AdminTokenHash: cfg.AdminTokenHash,
				Location:       loc,
			}
			if cfg.AdminTokenHash == "" {
				log.Warn().Msg("ADMIN_TOKEN_BCRYPT not set, admin routes disabled")
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := w.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				return web.Start(gctx, cfg.ListenAddr, ws.Routes())
			})
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
