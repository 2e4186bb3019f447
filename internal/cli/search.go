package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/search"
)

func newSearchCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List the cards whose text matches a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				board, err := e.store.LoadBoard(ctx)
				if err != nil {
					return err
				}

				filter := e.filter()
				if mode != "" {
					filter.Mode = search.ParseMode(mode)
				}
				res := filter.Apply(query, board.Lists)

				t := now()
				matches := []cardRow{}
				for _, l := range board.Lists {
					for _, c := range l.Cards {
						if res.Visible(c.ID) {
							matches = append(matches, newCardRow(c, t))
						}
					}
				}

				if e.json {
					return e.printJSON(struct {
						Query   string    `json:"query"`
						Mode    string    `json:"mode"`
						Matches []cardRow `json:"matches"`
						Hidden  []string  `json:"hidden"`
					}{query, string(filter.Mode), matches, res.Hidden(board.Lists)})
				}

				if len(matches) == 0 {
					fmt.Fprintf(stdout, "No cards match %q\n", query)
					return nil
				}
				fmt.Fprintf(stdout, "%d card(s) match %q\n", len(matches), query)
				for _, r := range matches {
					writeCardRow(stdout, r)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Match mode: substring or fuzzy (default from config)")
	return cmd
}
