package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// getMinArgs is the input plus at least one key.
const getMinArgs = 2

// ErrKeysMissing is returned by get --strict when a key is absent.
var ErrKeysMissing = errors.New("keys not found")

func newGetCommand(state *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "get <input> <key>...",
		Short: "Look up keys in an input",
		Long: `Look up keys in an input. Keys are matched with the configured order,
so under fold order "GO" finds the entry stored as "Go".`,
		Args: cobra.MinimumNArgs(getMinArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				return runGet(ctx, cmd, state, args[0], args[1:], strict)
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any key is missing")

	return cmd
}

func runGet(ctx context.Context, cmd *cobra.Command, state *app, input string, keys []string, strict bool) error {
	tree, err := state.buildTree(ctx, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	missing := 0

	for _, key := range keys {
		entry, found := tree.FindEntry(key)
		state.metrics.RecordLookup(ctx, found)

		if !found {
			missing++

			failColor.Fprintf(out, "%s\tnot found\n", key)

			continue
		}

		fmt.Fprintf(out, "%s\t%s\n", entry.Key, entry.Value)
	}

	if strict && missing > 0 {
		return fmt.Errorf("%w: %d of %d", ErrKeysMissing, missing, len(keys))
	}

	return nil
}
