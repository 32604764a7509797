package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tarest/internal/errlog"
)

func newErrorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "errors",
		Short: "Print the persisted error list, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.ErrLogPath == "" {
				return fmt.Errorf("ERRLOG_PATH is not set")
			}
			l := errlog.New(cfg.ErrLogPath, true)
			if err := l.Load(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			entries := l.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no entries")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-5s  %s: %s\n", e.At.Format(time.RFC3339), e.Kind, e.From, e.Text)
			}
			return nil
		},
	}
}
