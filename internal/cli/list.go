package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/model"
)

func newListCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage board lists",
	}
	cmd.AddCommand(newListAddCmd(stdout, stderr, opts))
	cmd.AddCommand(newListRmCmd(stdout, stderr, opts))
	return cmd
}

func newListAddCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a list at the end of the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				l := model.List{Title: strings.Join(args, " ")}
				if err := e.store.CreateList(ctx, &l); err != nil {
					return err
				}
				if e.json {
					return e.printJSON(l)
				}
				fmt.Fprintf(stdout, "Created list %q (%s)\n", l.Title, l.ID)
				return nil
			})
		},
	}
}

func newListRmCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <listID>",
		Short: "Delete a list with its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				if err := e.store.DeleteList(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Deleted list %s\n", args[0])
				return nil
			})
		},
	}
}
