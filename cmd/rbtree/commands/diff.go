package commands

import (
	"context"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbtree/internal/history"
)

const diffArgs = 2

func newDiffCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show entries added, changed or removed between two inputs",
		Args:  cobra.ExactArgs(diffArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				older, err := state.readEntries(args[0])
				if err != nil {
					return err
				}

				newer, err := state.readEntries(args[1])
				if err != nil {
					return err
				}

				store := state.newStore()
				from := store.Replace(ctx, older...)
				to := store.Replace(ctx, newer...)

				delta, err := history.Diff(store, from, to)
				if err != nil {
					return err
				}

				state.logger.DebugContext(ctx, "versions compared", "from", from, "to", to,
					"added", len(delta.Added), "changed", len(delta.Changed), "removed", len(delta.Removed))

				out := cmd.OutOrStdout()
				if delta.IsEmpty() {
					okColor.Fprintln(out, "no differences")

					return nil
				}

				tbl := newTable(out)
				tbl.AppendHeader(table.Row{"", "Key", "Value"})

				for _, e := range delta.Added {
					tbl.AppendRow(table.Row{"+", e.Key, e.Value})
				}

				for _, e := range delta.Changed {
					tbl.AppendRow(table.Row{"~", e.Key, e.Value})
				}

				for _, e := range delta.Removed {
					tbl.AppendRow(table.Row{"-", e.Key, e.Value})
				}

				tbl.Render()

				return nil
			})
		},
	}
}
