package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rbtree/pkg/rbtree"
)

const compareArgs = 2

// Relation describes how the key sets of two trees relate.
type Relation string

// Key set relations, from strongest to weakest.
const (
	RelationEqual    Relation = "equal"
	RelationSubset   Relation = "subset"
	RelationSuperset Relation = "superset"
	RelationOverlap  Relation = "overlapping"
	RelationDisjoint Relation = "disjoint"
)

// Relate classifies the key sets of a and b. Values are ignored.
func Relate(a, b rbtree.Tree[string, string]) Relation {
	aInB := rbtree.Subset(a, b)
	bInA := rbtree.Subset(b, a)

	switch {
	case aInB && bInA:
		return RelationEqual
	case aInB:
		return RelationSubset
	case bInA:
		return RelationSuperset
	case a.Any(func(key, _ string) bool { return b.Contains(key) }):
		return RelationOverlap
	default:
		return RelationDisjoint
	}
}

func newCompareCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare the key sets of two inputs",
		Long: `Compare the key sets of two inputs: equal, subset (every key of a is
in b), superset, overlapping or disjoint.`,
		Args: cobra.ExactArgs(compareArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.run(cmd, func(ctx context.Context) error {
				a, err := state.buildTree(ctx, args[0])
				if err != nil {
					return err
				}

				b, err := state.buildTree(ctx, args[1])
				if err != nil {
					return err
				}

				relation := Relate(a, b)
				relationColor(relation).Fprintf(cmd.OutOrStdout(), "%s is %s %s (%d vs %d keys)\n",
					args[0], relationPhrase(relation), args[1], a.Len(), b.Len())

				return nil
			})
		},
	}
}

func relationPhrase(relation Relation) string {
	switch relation {
	case RelationEqual:
		return "equal to"
	case RelationSubset:
		return "a subset of"
	case RelationSuperset:
		return "a superset of"
	case RelationOverlap:
		return "overlapping with"
	default:
		return "disjoint from"
	}
}

func relationColor(relation Relation) *color.Color {
	switch relation {
	case RelationEqual:
		return okColor
	case RelationSubset, RelationSuperset:
		return infoColor
	case RelationOverlap:
		return warnColor
	default:
		return failColor
	}
}
