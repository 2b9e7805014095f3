package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbtree/pkg/persist"
	"github.com/Sumatoshi-tech/rbtree/pkg/safeconv"
	"github.com/Sumatoshi-tech/rbtree/pkg/snapshot"
)

const (
	saveArgs = 2

	opSave = "save"
	opLoad = "load"
)

// snapshotFlags override the snapshot section of the config.
type snapshotFlags struct {
	codec     string
	directory string
	compress  bool
}

func (f *snapshotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.codec, "codec", "", "snapshot codec: json, gob or yaml (default from config)")
	cmd.Flags().StringVar(&f.directory, "dir", "", "snapshot directory (default from config)")
	cmd.Flags().BoolVar(&f.compress, "compress", false, "LZ4-compress the snapshot")
}

// resolve merges the flags with the config and returns the codec and directory.
func (f *snapshotFlags) resolve(cmd *cobra.Command, state *app) (persist.Codec, string, error) {
	name := state.cfg.Snapshot.Codec
	if f.codec != "" {
		name = f.codec
	}

	compress := state.cfg.Snapshot.Compress
	if cmd.Flags().Changed("compress") {
		compress = f.compress
	}

	dir := state.cfg.Snapshot.Directory
	if f.directory != "" {
		dir = f.directory
	}

	codec, err := persist.CodecByName(name, compress)
	if err != nil {
		return nil, "", err
	}

	return codec, dir, nil
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat snapshot: %w", err)
	}

	return info.Size(), nil
}

func newSaveCommand(state *app) *cobra.Command {
	var flags snapshotFlags

	cmd := &cobra.Command{
		Use:   "save <input> <name>",
		Short: "Build a tree from an input and save it as a snapshot",
		Args:  cobra.ExactArgs(saveArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				codec, dir, err := flags.resolve(cmd, state)
				if err != nil {
					return err
				}

				entries, err := state.readEntries(args[0])
				if err != nil {
					return err
				}

				store := state.newStore()
				store.Apply(ctx, entries...)

				err = store.Save(ctx, dir, args[1], codec)
				if err != nil {
					return err
				}

				path := snapshot.Path(dir, args[1], codec)

				size, err := fileSize(path)
				if err != nil {
					return err
				}

				state.metrics.RecordSnapshot(ctx, opSave, size)

				okColor.Fprintf(cmd.OutOrStdout(), "saved %d entries to %s (%s)\n",
					store.Head().Len(), path, humanize.Bytes(safeconv.MustSizeToUint64(size)))

				return nil
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newLoadCommand(state *app) *cobra.Command {
	var (
		flags      snapshotFlags
		descending bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a snapshot, verify it and list its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				codec, dir, err := flags.resolve(cmd, state)
				if err != nil {
					return err
				}

				path := snapshot.Path(dir, args[0], codec)

				size, err := fileSize(path)
				if err != nil {
					return err
				}

				store := state.newStore()

				_, err = store.Restore(ctx, dir, args[0], codec)
				if err != nil {
					return err
				}

				tree := store.Head()

				err = tree.Check()
				if err != nil {
					return fmt.Errorf("snapshot %s: %w", args[0], err)
				}

				state.metrics.RecordSnapshot(ctx, opLoad, size)

				infoColor.Fprintf(cmd.OutOrStdout(), "loaded %d entries from %s (%s)\n",
					tree.Len(), path, humanize.Bytes(safeconv.MustSizeToUint64(size)))
				writeEntries(cmd, tree, descending, limit)

				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&descending, "desc", "d", false, "list in descending order")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "list at most n entries (0 lists all)")

	return cmd
}
