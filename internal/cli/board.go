package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/duedate"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/theme"
)

// now is the clock commands classify due dates against.
var now = time.Now

// withEnv opens the environment for the duration of fn.
func withEnv(
	cmd *cobra.Command,
	stdout, stderr io.Writer,
	opts *globalOptions,
	fn func(ctx context.Context, e *env) error,
) error {
	e, err := opts.open(stdout, stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, e)
}

type cardRow struct {
	ID          string           `json:"id"`
	ListID      string           `json:"list_id"`
	Title       string           `json:"title"`
	DueDate     string           `json:"due_date,omitempty"`
	DueCategory duedate.Category `json:"due_category"`
	Done        bool             `json:"done"`
	ItemsDone   int              `json:"items_done"`
	ItemsTotal  int              `json:"items_total"`
	Percent     int              `json:"percent"`
}

type listRow struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Cards []cardRow `json:"cards"`
}

func newCardRow(c model.Card, t time.Time) cardRow {
	done, total, pct := checklist.Progress(c.Checklist)
	return cardRow{
		ID:          c.ID,
		ListID:      c.ListID,
		Title:       c.Title,
		DueDate:     c.DueDate,
		DueCategory: duedate.Classify(c.DueDate, c.Done, t),
		Done:        c.Done,
		ItemsDone:   done,
		ItemsTotal:  total,
		Percent:     pct,
	}
}

func writeCardRow(w io.Writer, r cardRow) {
	box := "[ ]"
	if r.Done {
		box = "[x]"
	}
	fmt.Fprintf(w, "  %s %s  (%s)", box, r.Title, r.ID)
	if r.DueDate != "" {
		fmt.Fprintf(w, "  due %s %s", r.DueDate, theme.DueBadgeStyle(r.DueCategory).Render(r.DueCategory.String()))
	}
	if r.ItemsTotal > 0 {
		fmt.Fprintf(w, "  ☑ %d/%d", r.ItemsDone, r.ItemsTotal)
	}
	fmt.Fprintln(w)
}

func newBoardCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print every list with its cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				board, err := e.store.LoadBoard(ctx)
				if err != nil {
					return err
				}

				t := now()
				rows := make([]listRow, 0, len(board.Lists))
				for _, l := range board.Lists {
					lr := listRow{ID: l.ID, Title: l.Title, Cards: []cardRow{}}
					for _, c := range l.Cards {
						lr.Cards = append(lr.Cards, newCardRow(c, t))
					}
					rows = append(rows, lr)
				}

				if e.json {
					return e.printJSON(rows)
				}
				if len(rows) == 0 {
					fmt.Fprintln(stdout, "No lists. Create one with: taskboard list add <title>")
					return nil
				}
				for _, lr := range rows {
					fmt.Fprintf(stdout, "%s (%s)\n", lr.Title, lr.ID)
					for _, r := range lr.Cards {
						writeCardRow(stdout, r)
					}
				}
				return nil
			})
		},
	}
}
