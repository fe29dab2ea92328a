package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph/transform"
)

// newFilterCmd creates the filter command and its subcommands. Each
// subcommand cuts a graph down to an interesting region: between keeps the
// paths connecting matched nodes, slice keeps each top-level subgraph's
// internal structure.
func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Cut a dependency graph down to a region of interest",
	}
	cmd.AddCommand(newFilterBetweenCmd())
	cmd.AddCommand(newFilterSliceCmd())
	return cmd
}

func newFilterBetweenCmd() *cobra.Command {
	var (
		io      ioOpts
		include []string
		exclude []string
		key     string
	)

	cmd := &cobra.Command{
		Use:   "between [input]",
		Short: "Keep only the paths connecting matched nodes",
		Long: `Keep only the paths connecting matched nodes.

Nodes matching any include pattern are endpoints; a node survives when it
lies on a directed path from one endpoint to another. Fewer than two matches
produce an empty graph. Patterns are globs (*, ?, [...]) matched against
node labels, or IDs with --key id.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matchKey, err := parseMatchKey(key)
			if err != nil {
				return err
			}
			g, err := readGraph(inputArg(args), io.from)
			if err != nil {
				return err
			}
			filtered, err := transform.Between(g, transform.BetweenOptions{
				Include: include,
				Exclude: exclude,
				Key:     matchKey,
			})
			if err != nil {
				return err
			}
			printStats(filtered.AllNodes().Len(), len(filtered.AllEdges()))
			return writeGraph(filtered, io)
		},
	}

	addInputFlags(cmd, &io)
	addOutputFlags(cmd, &io)
	cmd.Flags().StringArrayVarP(&include, "include", "g", nil, "glob pattern for path endpoints (repeatable)")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "x", nil, "glob pattern for nodes to drop from the result (repeatable)")
	cmd.Flags().StringVar(&key, "key", "label", "node text to match patterns against: label, id")
	return cmd
}

func newFilterSliceCmd() *cobra.Command {
	var (
		io          ioOpts
		dropOrphans bool
		recursive   bool
	)

	cmd := &cobra.Command{
		Use:   "slice [input]",
		Short: "Keep each subgraph's internal structure only",
		Long: `Keep each subgraph's internal structure only.

Edges crossing a top-level subgraph boundary are cut; edges inside one
subgraph, and edges between root-level nodes, survive. With --drop-orphans
root-level nodes are removed too, with --recursive the slicing repeats at
every nesting level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(inputArg(args), io.from)
			if err != nil {
				return err
			}
			sliced := transform.Slice(g, transform.SliceOptions{
				DropOrphans: dropOrphans,
				Recursive:   recursive,
			})
			printStats(sliced.AllNodes().Len(), len(sliced.AllEdges()))
			return writeGraph(sliced, io)
		},
	}

	addInputFlags(cmd, &io)
	addOutputFlags(cmd, &io)
	cmd.Flags().BoolVar(&dropOrphans, "drop-orphans", false, "remove nodes outside any subgraph")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "slice at every nesting level")
	return cmd
}
