package commands

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
)

func newListCommand(state *app) *cobra.Command {
	var (
		descending bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "list <input>",
		Short: "List the entries of an input in key order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				tree, err := state.buildTree(ctx, args[0])
				if err != nil {
					return err
				}

				writeEntries(cmd, tree, descending, limit)

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&descending, "desc", "d", false, "list in descending order")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "list at most n entries (0 lists all)")

	return cmd
}

// writeEntries renders tree as a table, ascending unless descending is set.
func writeEntries(cmd *cobra.Command, tree rbtree.Tree[string, string], descending bool, limit int) {
	seq := tree.Ascend()
	if descending {
		seq = tree.Descend()
	}

	tbl := newTable(cmd.OutOrStdout())
	tbl.AppendHeader(table.Row{"#", "Key", "Value"})

	shown := 0

	for key, value := range seq {
		if limit > 0 && shown == limit {
			break
		}

		shown++
		tbl.AppendRow(table.Row{shown, key, value})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%s of %s entries", humanize.Comma(int64(shown)), humanize.Comma(int64(tree.Len())))})
	tbl.Render()
}
