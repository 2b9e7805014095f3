package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newStatsCommand(state *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats <input>",
		Short: "Show the shape of the tree built from an input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				tree, err := state.buildTree(ctx, args[0])
				if err != nil {
					return err
				}

				stats := tree.Stats()

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")

					err = enc.Encode(stats)
					if err != nil {
						return fmt.Errorf("encode stats: %w", err)
					}

					return nil
				}

				tbl := newTable(cmd.OutOrStdout())
				tbl.AppendHeader(table.Row{"Metric", "Value"})
				tbl.AppendRows([]table.Row{
					{"entries", humanize.Comma(int64(stats.Len))},
					{"depth", stats.Depth},
					{"min depth", stats.MinDepth},
					{"black height", stats.BlackHeight},
					{"red nodes", humanize.Comma(int64(stats.RedNodes))},
					{"black nodes", humanize.Comma(int64(stats.BlackNodes))},
				})
				tbl.Render()

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print stats as JSON")

	return cmd
}
