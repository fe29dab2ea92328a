package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/depgraph/transform"
)

// newSimplifyCmd creates the simplify command, which removes edges implied
// by longer paths (transitive reduction).
func newSimplifyCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "simplify [input]",
		Short: "Remove redundant edges via transitive reduction",
		Long: `Remove redundant edges via transitive reduction.

An edge a -> c is redundant when a longer path a -> ... -> c exists. The
input must be acyclic; run "depgraph cycles" first to find and break cycles.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newProgress(loggerFromContext(cmd.Context()))
			g, err := readGraph(inputArg(args), opts.from)
			if err != nil {
				return err
			}
			before := len(g.AllEdges())
			simplified, err := transform.Simplify(g)
			if err != nil {
				return err
			}
			p.done("Simplified graph")
			printStats(simplified.AllNodes().Len(), len(simplified.AllEdges()))
			loggerFromContext(cmd.Context()).Debugf("removed %d redundant edges", before-len(simplified.AllEdges()))
			return writeGraph(simplified, opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}

// newFlattenCmd creates the flatten command, which hoists every node and
// edge out of subgraphs to the root.
func newFlattenCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "flatten [input]",
		Short: "Collapse all subgraph structure into a flat graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(inputArg(args), opts.from)
			if err != nil {
				return err
			}
			return writeGraph(transform.Flatten(g), opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}

// newCyclesCmd creates the cycles command, which extracts strongly connected
// components into cycle_N subgraphs.
func newCyclesCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "cycles [input]",
		Short: "Extract dependency cycles as subgraphs",
		Long: `Extract dependency cycles as subgraphs.

Each strongly connected component of two or more nodes becomes a cycle_N
subgraph. An acyclic graph produces empty output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(inputArg(args), opts.from)
			if err != nil {
				return err
			}
			cycles := transform.Cycles(g)
			if cycles.IsEmpty() {
				printSuccess("no cycles found")
			} else {
				printWarning("%d cycles found", len(cycles.Subgraphs))
			}
			return writeGraph(cycles, opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}

// newMergeCmd creates the merge command, which unions several graphs.
func newMergeCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "merge <inputs...>",
		Short: "Merge multiple dependency graphs into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			graphs := make([]*depgraph.Graph, 0, len(args))
			for _, path := range args {
				g, err := readGraph(path, opts.from)
				if err != nil {
					return err
				}
				graphs = append(graphs, g)
			}
			return writeGraph(transform.Merge(graphs...), opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}

// newReverseCmd creates the reverse command, which flips every edge.
func newReverseCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "reverse [input]",
		Short: "Reverse the direction of every edge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(inputArg(args), opts.from)
			if err != nil {
				return err
			}
			return writeGraph(transform.Reverse(g), opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}
