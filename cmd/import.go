package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tarest/internal/db"
	"github.com/example/tarest/internal/errlog"
	"github.com/example/tarest/internal/feed"
	"github.com/example/tarest/internal/migrate"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/snapshots"
)

func newImportCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Load a restaurant feed file and store it as the current snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			errs := errlog.New(cfg.ErrLogPath, cfg.ErrLogKeepInfo)
			_ = errs.Load()

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			list, err := feed.Load(f, errs)
			if err != nil {
				return err
			}
			snap := restaurants.NewSnapshot(list, time.Now())
			printSummary(cmd, snap)

			if dryRun {
				return nil
			}

			ctx := context.Background()
			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}
			if err := snapshots.NewRepo(d).Save(ctx, snap, file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored snapshot %s\n", snap.ID)
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "", "feed JSON file")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "decode and print without storing")
	_ = c.MarkFlagRequired("file")
	return c
}

func printSummary(cmd *cobra.Command, snap restaurants.Snapshot) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d restaurants\n", len(snap.Restaurants))
	for i, r := range snap.Restaurants {
		fmt.Fprintf(out, "%3d  %-30s %-8s %d days  (%.5f, %.5f)\n", i, r.Name, r.Flags, len(r.Hours), r.Latitude, r.Longitude)
	}
}
