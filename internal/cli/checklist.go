package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/taskboard/internal/checklist"
)

// checklistOp runs one manager operation against the loaded board.
type checklistOp func(m *checklist.Manager, listID, cardID string, args []string) (checklist.View, bool, error)

func newChecklistCmd(stdout, stderr io.Writer, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"cl"},
		Short:   "Show and edit a card's checklist",
	}

	cmd.AddCommand(newChecklistSubCmd(stdout, stderr, opts,
		"show <listID> <cardID>", "Show the checklist with progress", cobra.ExactArgs(2),
		func(m *checklist.Manager, listID, cardID string, _ []string) (checklist.View, bool, error) {
			return m.Render(listID, cardID), false, nil
		}))

	cmd.AddCommand(newChecklistSubCmd(stdout, stderr, opts,
		"add <listID> <cardID> <text>", "Append an item", cobra.MinimumNArgs(3),
		func(m *checklist.Manager, listID, cardID string, args []string) (checklist.View, bool, error) {
			v, ok := m.Add(listID, cardID, strings.Join(args, " "))
			return v, ok, nil
		}))

	cmd.AddCommand(newChecklistSubCmd(stdout, stderr, opts,
		"toggle <listID> <cardID> <index>", "Flip an item's done flag", cobra.ExactArgs(3),
		func(m *checklist.Manager, listID, cardID string, args []string) (checklist.View, bool, error) {
			i, err := parseIndex(args[0])
			if err != nil {
				return checklist.View{}, false, err
			}
			v, ok := m.Toggle(listID, cardID, i)
			return v, ok, nil
		}))

	cmd.AddCommand(newChecklistSubCmd(stdout, stderr, opts,
		"rm <listID> <cardID> <index>", "Delete an item", cobra.ExactArgs(3),
		func(m *checklist.Manager, listID, cardID string, args []string) (checklist.View, bool, error) {
			i, err := parseIndex(args[0])
			if err != nil {
				return checklist.View{}, false, err
			}
			v, ok := m.DeleteOne(listID, cardID, i)
			return v, ok, nil
		}))

	cmd.AddCommand(newChecklistSubCmd(stdout, stderr, opts,
		"clear-done <listID> <cardID>", "Delete every done item", cobra.ExactArgs(2),
		func(m *checklist.Manager, listID, cardID string, _ []string) (checklist.View, bool, error) {
			v, ok := m.DeleteDone(listID, cardID)
			return v, ok, nil
		}))

	return cmd
}

func newChecklistSubCmd(
	stdout, stderr io.Writer,
	opts *globalOptions,
	use, short string,
	argsFn cobra.PositionalArgs,
	op checklistOp,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFn,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, stdout, stderr, opts, func(ctx context.Context, e *env) error {
				board, err := e.store.LoadBoard(ctx)
				if err != nil {
					return err
				}
				save := func() error { return e.store.SaveBoard(ctx, board) }
				m := checklist.NewManager(board, save, e.logger)

				listID, cardID := args[0], args[1]
				v, applied, err := op(m, listID, cardID, args[2:])
				if err != nil {
					return err
				}
				if !v.Found {
					return fmt.Errorf("card %s not found in list %s", cardID, listID)
				}

				if e.json {
					return e.printJSON(struct {
						checklist.View
						Applied bool `json:"applied"`
					}{v, applied})
				}
				writeChecklist(stdout, v)
				return nil
			})
		},
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid item index %q", s)
	}
	return i, nil
}

func writeChecklist(w io.Writer, v checklist.View) {
	fmt.Fprintf(w, "Checklist %d/%d (%d%%)\n", v.Done, v.Total, v.Percent)
	if len(v.Items) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, it := range v.Items {
		box := "[ ]"
		if it.Done {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %d. %s %s\n", it.Index, box, it.Text)
	}
}
