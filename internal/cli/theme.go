package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/theme"
)

func newThemeCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the stored theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				return printTheme(e, e.toggler().Load(ctx))
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark and store the choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				t := e.toggler()
				t.Load(ctx)
				return printTheme(e, t.Toggle(ctx))
			})
		},
	})

	return cmd
}

func printTheme(e *env, mode theme.Mode) error {
	if e.json {
		return e.printJSON(struct {
			Theme theme.Mode `json:"theme"`
			Dark  bool       `json:"dark"`
		}{mode, mode == theme.Dark})
	}
	fmt.Fprintf(e.stdout, "%s %s\n", theme.Icon(mode), mode)
	return nil
}
