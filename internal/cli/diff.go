package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/depgraph/diff"
)

// errDifferences signals a non-zero exit for --check without the noise of a
// long error message.
var errDifferences = fmt.Errorf("graphs differ")

// diffOpts holds the flags shared by all diff subcommands.
type diffOpts struct {
	io      ioOpts
	check   bool // exit 1 when the graphs differ
	cluster bool // group removed nodes into a subgraph (annotate only)
}

// newDiffCmd creates the diff command and its subcommands. Every subcommand
// takes a before and an after graph and renders the comparison differently:
// annotate as a merged visual graph, list as tab-separated changes, subtract
// as the removed-only graph, summary as per-status counts.
func newDiffCmd() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two dependency graphs",
	}
	cmd.PersistentFlags().BoolVar(&opts.check, "check", false, "exit with status 1 when the graphs differ")
	cmd.PersistentFlags().StringVar(&opts.io.from, "from", "", "input format (auto-detected if empty)")

	cmd.AddCommand(newDiffAnnotateCmd(&opts))
	cmd.AddCommand(newDiffListCmd(&opts))
	cmd.AddCommand(newDiffSubtractCmd(&opts))
	cmd.AddCommand(newDiffSummaryCmd(&opts))
	return cmd
}

// compareArgs loads both inputs and diffs them.
func compareArgs(args []string, opts *diffOpts) (*diff.GraphDiff, *depgraph.Graph, *depgraph.Graph, error) {
	before, err := readGraph(args[0], opts.io.from)
	if err != nil {
		return nil, nil, nil, err
	}
	after, err := readGraph(args[1], opts.io.from)
	if err != nil {
		return nil, nil, nil, err
	}
	return diff.Compare(before, after), before, after, nil
}

// checkResult converts a diff with changes into a failing exit code when
// --check is set.
func checkResult(d *diff.GraphDiff, opts *diffOpts) error {
	if !opts.check || !d.HasChanges() {
		return nil
	}
	printWarning("graphs differ")
	return errDifferences
}

func newDiffAnnotateCmd(opts *diffOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate <before> <after>",
		Short: "Render the diff as an annotated graph",
		Long: `Render the diff as one graph shaped like the after input.

Added nodes are green with a "+ " label prefix, removed red "- ", changed
orange "~ ", moved blue "> ". Removed nodes are appended at the root, or
grouped into a Removed cluster with --cluster.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, after, err := compareArgs(args, opts)
			if err != nil {
				return err
			}
			if err := writeGraph(diff.Annotate(d, after, opts.cluster), opts.io); err != nil {
				return err
			}
			return checkResult(d, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.cluster, "cluster", false, "group removed nodes into a subgraph")
	addOutputFlags(cmd, &opts.io)
	return cmd
}

func newDiffListCmd(opts *diffOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <before> <after>",
		Short: "List changes as tab-separated lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := compareArgs(args, opts)
			if err != nil {
				return err
			}
			w, closer, err := openOutput(opts.io.output)
			if err != nil {
				return err
			}
			defer closer()
			if err := diff.WriteList(w, d); err != nil {
				return err
			}
			return checkResult(d, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.io.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newDiffSubtractCmd(opts *diffOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtract <before> <after>",
		Short: "Extract what the after graph removed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, before, _, err := compareArgs(args, opts)
			if err != nil {
				return err
			}
			if err := writeGraph(diff.Subtract(d, before), opts.io); err != nil {
				return err
			}
			return checkResult(d, opts)
		},
	}
	addOutputFlags(cmd, &opts.io)
	return cmd
}

func newDiffSummaryCmd(opts *diffOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <before> <after>",
		Short: "Print per-status node and edge counts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, _, err := compareArgs(args, opts)
			if err != nil {
				return err
			}
			w, closer, err := openOutput(opts.io.output)
			if err != nil {
				return err
			}
			defer closer()
			if err := diff.WriteSummary(w, d); err != nil {
				return err
			}
			if !d.HasChanges() {
				printSuccess("no differences")
			}
			return checkResult(d, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.io.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
