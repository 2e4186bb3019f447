package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/ui/cardform"
)

func newCardCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}
	cmd.AddCommand(newCardAddCmd(stdout, stderr, opts))
	cmd.AddCommand(newCardDoneCmd(stdout, stderr, opts))
	cmd.AddCommand(newCardRmCmd(stdout, stderr, opts))
	return cmd
}

func newCardAddCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	var due, description string

	cmd := &cobra.Command{
		Use:   "add <listID> <title>",
		Short: "Create a card in a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cardform.ValidateDueDate(due); err != nil {
				return err
			}
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				c := model.Card{
					ListID:      args[0],
					Title:       strings.Join(args[1:], " "),
					Description: description,
					DueDate:     strings.TrimSpace(due),
				}
				if err := e.store.CreateCard(ctx, &c); err != nil {
					return err
				}
				if e.json {
					return e.printJSON(newCardRow(c, now()))
				}
				fmt.Fprintf(stdout, "Created card %q (%s)\n", c.Title, c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&description, "description", "", "Card description")
	return cmd
}

func newCardDoneCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <cardID>",
		Short: "Mark a card done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				c, err := e.store.GetCardByID(ctx, args[0])
				if err != nil {
					return err
				}
				c.Done = !undo
				if err := e.store.UpdateCard(ctx, *c); err != nil {
					return err
				}
				state := "done"
				if undo {
					state = "not done"
				}
				fmt.Fprintf(stdout, "Marked %q %s\n", c.Title, state)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the card not done")
	return cmd
}

func newCardRmCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <cardID>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				if err := e.store.DeleteCard(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Deleted card %s\n", args[0])
				return nil
			})
		},
	}
}
