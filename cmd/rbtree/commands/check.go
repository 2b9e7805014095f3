package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <input>...",
		Short: "Verify the red-black invariants of the trees built from inputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				out := cmd.OutOrStdout()

				var firstErr error

				for _, input := range args {
					tree, err := state.buildTree(ctx, input)
					if err != nil {
						return err
					}

					err = tree.Check()
					if err != nil {
						failColor.Fprintf(out, "FAIL %s: %v\n", input, err)

						if firstErr == nil {
							firstErr = fmt.Errorf("%s: %w", input, err)
						}

						continue
					}

					okColor.Fprintf(out, "OK   %s (%d entries, black height %d)\n", input, tree.Len(), tree.BlackHeight())
				}

				return firstErr
			})
		},
	}
}
