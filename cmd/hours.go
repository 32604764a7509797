package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tarest/internal/hours"
	"github.com/example/tarest/internal/restaurants"
	"github.com/example/tarest/internal/status"
)

func newHoursCmd() *cobra.Command {
	var at string

	c := &cobra.Command{
		Use:   `hours "<day>" ["<day>" ...]`,
		Short: "Parse opening-hours strings and show the status at a given time",
		Long: `Parse one opening-hours string per day and show the status at a given time.

Days are numbered from Sunday in the order they are given. An argument that
yields no time slot, a blank one included, is dropped, so every later
argument moves up one day. Pass "closed" to keep a day's place.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = t
			}

			week := hours.ParseWeek(args)
			weekday, seconds := status.Moment(now)
			out := cmd.OutOrStdout()
			for _, line := range restaurants.DayLines(week, weekday) {
				mark := " "
				if line.Today {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-9s  %s\n", mark, line.Weekday, line.Hours)
			}
			p := status.Evaluate(week, weekday, seconds)
			fmt.Fprintf(out, "at %s: %s (%s)\n", now.Format(time.RFC3339), p, p.Key())
			return nil
		},
	}

	c.Flags().StringVar(&at, "at", "", "evaluate at this RFC3339 time instead of now")
	return c
}
