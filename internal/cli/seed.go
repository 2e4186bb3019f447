package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/seed"
)

func newSeedCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.toml>",
		Short: "Import lists and cards from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				sum, err := seed.Import(ctx, e.store, f)
				if err != nil {
					return err
				}
				e.logger.Info("seeded board", "file", args[0], "lists", sum.Lists, "cards", sum.Cards)
				if e.json {
					return e.printJSON(sum)
				}
				fmt.Fprintf(stdout, "Imported %d list(s), %d card(s), %d checklist item(s)\n",
					sum.Lists, sum.Cards, sum.Items)
				return nil
			})
		},
	}
}
