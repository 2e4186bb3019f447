package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/theme"
)

func newDueCmd(stdout io.Writer, opts *globalOptions) *cobra.Command {
	var done bool
	var today string

	cmd := &cobra.Command{
		Use:   "due <date>",
		Short: "Classify a due date as OVERDUE, DUE_SOON, FUTURE, UNSET or COMPLETED",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) == 1 {
				date = args[0]
			}

			t := now()
			if today != "" {
				parsed, err := duedate.Parse(today)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", today, err)
				}
				t = parsed
			}

			cat := duedate.Classify(date, done, t)
			days, ok := duedate.DaysUntil(date, t)

			if opts.jsonOutput {
				out := struct {
					Date      string           `json:"date"`
					Done      bool             `json:"done"`
					Category  duedate.Category `json:"category"`
					DaysUntil *int             `json:"days_until,omitempty"`
				}{Date: date, Done: done, Category: cat}
				if ok {
					out.DaysUntil = &days
				}
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprint(stdout, theme.DueBadgeStyle(cat).Render(cat.String()))
			if ok && !done {
				fmt.Fprintf(stdout, " (%s)", describeDays(days))
			}
			fmt.Fprintln(stdout)
			return nil
		},
	}
	cmd.Flags().BoolVar(&done, "done", false, "Treat the card as done")
	cmd.Flags().StringVar(&today, "today", "", "Classify against this date instead of now (YYYY-MM-DD)")
	return cmd
}

func describeDays(days int) string {
	switch {
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	case days > 1:
		return fmt.Sprintf("due in %d days", days)
	case days == -1:
		return "1 day late"
	default:
		return fmt.Sprintf("%d days late", -days)
	}
}
