// Package commands implements the rbtree command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/rbtree/internal/history"
	"github.com/Sumatoshi-tech/rbtree/pkg/config"
	"github.com/Sumatoshi-tech/rbtree/pkg/observability"
	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
	"github.com/Sumatoshi-tech/rbtree/pkg/version"
)

const (
	flagConfig  = "config"
	flagVerbose = "verbose"
	flagQuiet   = "quiet"
	flagLogJSON = "log-json"
	flagOrder   = "order"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	order      string
	verbose    bool
	quiet      bool
	logJSON    bool

	cfg      *config.Config
	less     rbtree.LessFunc[string]
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *observability.TreeMetrics
	shutdown func(context.Context) error
}

// NewRootCommand creates the rbtree command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	state := &app{}

	rootCmd := &cobra.Command{
		Use:   "rbtree",
		Short: "Build, inspect and snapshot persistent red-black trees",
		Long: `rbtree loads key/value entries into a persistent red-black tree and
reports on it.

Input files hold one entry per line as key=value, key<TAB>value or a bare
key, with # comments, or a .json array of {"key", "value"} objects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return state.close(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&state.configPath, flagConfig, "", "config file (default: rbtree.yaml in ., ./config or /etc/rbtree)")
	flags.BoolVarP(&state.verbose, flagVerbose, "v", false, "verbose output")
	flags.BoolVarP(&state.quiet, flagQuiet, "q", false, "only log errors")
	flags.BoolVar(&state.logJSON, flagLogJSON, false, "write logs as JSON")
	flags.StringVar(&state.order, flagOrder, "", "key order: lexical, numeric or fold (default from config)")

	rootCmd.AddCommand(
		newListCommand(state),
		newGetCommand(state),
		newStatsCommand(state),
		newCheckCommand(state),
		newCompareCommand(state),
		newDiffCommand(state),
		newSaveCommand(state),
		newLoadCommand(state),
		newVersionCommand(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	if a.order != "" {
		cfg.Order.Mode = a.order
	}

	less, err := Comparator(cfg.Order.Mode)
	if err != nil {
		return err
	}

	obsCfg := observability.FromSettings(cfg, version.Version)
	obsCfg.LogJSON = obsCfg.LogJSON || a.logJSON
	obsCfg.LogOutput = cmd.ErrOrStderr()

	switch {
	case a.quiet:
		obsCfg.LogLevel = slog.LevelError
	case a.verbose:
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.Verbose = true
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.cfg = cfg
	a.less = less
	a.logger = providers.Logger
	a.tracer = providers.Tracer
	a.metrics = providers.Metrics
	a.shutdown = providers.Shutdown

	a.logger.Debug("configured", "order", cfg.Order.Mode, "codec", cfg.Snapshot.Codec)

	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return a.shutdown(ctx)
}

// run wraps one subcommand in a span and logs its outcome.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := observability.StartCommand(ctx, a.tracer, cmd.Name())
	start := time.Now()

	err := fn(ctx)
	observability.EndCommand(span, err)

	if err != nil {
		a.logger.DebugContext(ctx, "command failed", "command", cmd.Name(), "error", err)

		return err
	}

	a.logger.DebugContext(ctx, "command done", "command", cmd.Name(), "elapsed", time.Since(start))

	return nil
}

// newStore creates a history store wired to the app's logger and metrics.
func (a *app) newStore() *history.Store[string, string] {
	return history.New[string, string](a.less,
		history.WithLogger(a.logger),
		history.WithMetrics(a.metrics),
	)
}

// readEntries reads path and checks its keys against the configured order.
func (a *app) readEntries(path string) ([]rbtree.Entry[string, string], error) {
	entries, err := ReadEntries(path)
	if err != nil {
		return nil, err
	}

	err = validateKeys(a.cfg.Order.Mode, entries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}

// buildTree reads path and inserts its entries into a fresh tree.
func (a *app) buildTree(ctx context.Context, path string) (rbtree.Tree[string, string], error) {
	entries, err := a.readEntries(path)
	if err != nil {
		return rbtree.Tree[string, string]{}, err
	}

	store := a.newStore()
	store.Apply(ctx, entries...)

	tree := store.Head()

	a.logger.InfoContext(ctx, "tree built", "input", path, "entries", len(entries), "len", tree.Len())

	return tree, nil
}
