package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph/query"
	"github.com/matzehuels/depgraph/pkg/depgraph/transform"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// queryOpts holds the flags shared by the query subcommands.
type queryOpts struct {
	io      ioOpts
	include []string
	exclude []string
	and     bool
	key     string
	field   string
	sort    string
	reverse bool
	limit   int
}

// newQueryCmd creates the query command and its subcommands, which answer
// questions about a graph as plain text instead of producing graph output:
// nodes and edges list matching elements, metrics summarizes the shape.
func newQueryCmd() *cobra.Command {
	var opts queryOpts

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Inspect a dependency graph as plain text",
	}
	cmd.PersistentFlags().StringVar(&opts.io.from, "from", "", "input format (auto-detected if empty)")
	cmd.PersistentFlags().StringVarP(&opts.io.output, "output", "o", "", "output file (stdout if empty)")

	cmd.AddCommand(newQueryNodesCmd(&opts))
	cmd.AddCommand(newQueryEdgesCmd(&opts))
	cmd.AddCommand(newQueryMetricsCmd(&opts))
	return cmd
}

func newQueryNodesCmd(opts *queryOpts) *cobra.Command {
	var (
		selection string
		depsFlag  bool
		rdeps     bool
		depth     int
	)

	cmd := &cobra.Command{
		Use:   "nodes [input]",
		Short: "List nodes, one per line",
		Long: `List nodes, one per line.

Start from all nodes, roots, or leaves (--select), filter with glob
patterns, then optionally pull in dependencies (--deps, --depth) or reverse
dependencies (--rdeps) of the selection. The numeric sorts print a count
column and order descending.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nopts := query.NodesOptions{
				Include: opts.include,
				Exclude: opts.exclude,
				And:     opts.and,
				Reverse: opts.reverse,
				Limit:   opts.limit,
				Deps:    depsFlag,
				RDeps:   rdeps,
			}
			var err error
			if nopts.Key, err = parseMatchKey(opts.key); err != nil {
				return err
			}
			if nopts.Select, err = parseSelection(selection); err != nil {
				return err
			}
			if nopts.Sort, err = parseNodeSort(opts.sort); err != nil {
				return err
			}
			field, err := parseField(opts.field)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("depth") {
				nopts.Depth = &depth
			}

			g, err := readGraph(inputArg(args), opts.io.from)
			if err != nil {
				return err
			}
			results, err := query.Nodes(g, nopts)
			if err != nil {
				return err
			}
			w, closer, err := openOutput(opts.io.output)
			if err != nil {
				return err
			}
			defer closer()
			return writeNodeResults(w, results, field)
		},
	}

	cmd.Flags().StringVar(&selection, "select", "all", "initial node set: all, roots, leaves")
	cmd.Flags().StringVar(&opts.sort, "sort", "none", "order: none, topo, in-degree, out-degree, ancestors, descendants")
	cmd.Flags().BoolVar(&depsFlag, "deps", false, "include all dependencies of selected nodes")
	cmd.Flags().BoolVar(&rdeps, "rdeps", false, "include all reverse dependencies of selected nodes")
	cmd.Flags().IntVar(&depth, "depth", 0, "bound the dependency expansion (implies --deps)")
	addQueryListFlags(cmd, opts)
	return cmd
}

func newQueryEdgesCmd(opts *queryOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edges [input]",
		Short: "List edges as tab-separated lines",
		Long: `List edges as tab-separated source/target lines.

A glob pattern matches an edge when either endpoint matches it; exclusion
drops the edge when either endpoint matches.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eopts := query.EdgesOptions{
				Include: opts.include,
				Exclude: opts.exclude,
				And:     opts.and,
				Reverse: opts.reverse,
				Limit:   opts.limit,
			}
			var err error
			if eopts.Key, err = parseMatchKey(opts.key); err != nil {
				return err
			}
			if eopts.Field, err = parseField(opts.field); err != nil {
				return err
			}
			if eopts.Sort, err = parseEdgeSort(opts.sort); err != nil {
				return err
			}

			g, err := readGraph(inputArg(args), opts.io.from)
			if err != nil {
				return err
			}
			results, err := query.Edges(g, eopts)
			if err != nil {
				return err
			}
			w, closer, err := openOutput(opts.io.output)
			if err != nil {
				return err
			}
			defer closer()
			return writeEdgeResults(w, results)
		},
	}

	cmd.Flags().StringVar(&opts.sort, "sort", "none", "order: none, source, target")
	addQueryListFlags(cmd, opts)
	return cmd
}

func newQueryMetricsCmd(opts *queryOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics [input]",
		Short: "Print whole-graph metrics as name/value lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(inputArg(args), opts.io.from)
			if err != nil {
				return err
			}
			w, closer, err := openOutput(opts.io.output)
			if err != nil {
				return err
			}
			defer closer()
			return query.Compute(g).Write(w)
		},
	}
	return cmd
}

// addQueryListFlags registers the filtering and ordering flags shared by the
// nodes and edges listings.
func addQueryListFlags(cmd *cobra.Command, opts *queryOpts) {
	cmd.Flags().StringArrayVarP(&opts.include, "include", "g", nil, "glob pattern to keep (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.exclude, "exclude", "x", nil, "glob pattern to drop (repeatable)")
	cmd.Flags().BoolVar(&opts.and, "and", false, "require every include pattern to match")
	cmd.Flags().StringVar(&opts.key, "key", "label", "node text to match patterns against: label, id")
	cmd.Flags().StringVar(&opts.field, "field", "label", "node text to print: label, id")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "reverse the final order")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "print at most this many lines (0 for all)")
}

func writeNodeResults(w io.Writer, results []query.NodeResult, field query.Field) error {
	for _, r := range results {
		text := r.Label
		if field == query.FieldID {
			text = r.ID
		}
		var err error
		if r.HasCount {
			_, err = fmt.Fprintf(w, "%s\t%d\n", text, r.Count)
		} else {
			_, err = fmt.Fprintln(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEdgeResults(w io.Writer, results []query.EdgeResult) error {
	for _, r := range results {
		var err error
		if r.Label != "" {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", r.From, r.To, r.Label)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", r.From, r.To)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func parseMatchKey(s string) (transform.MatchKey, error) {
	switch s {
	case "label", "":
		return transform.MatchLabel, nil
	case "id":
		return transform.MatchID, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown key %q (supported: label, id)", s)
	}
}

func parseField(s string) (query.Field, error) {
	switch s {
	case "label", "":
		return query.FieldLabel, nil
	case "id":
		return query.FieldID, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown field %q (supported: label, id)", s)
	}
}

func parseSelection(s string) (query.Selection, error) {
	switch s {
	case "all", "":
		return query.SelectAll, nil
	case "roots":
		return query.SelectRoots, nil
	case "leaves":
		return query.SelectLeaves, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown selection %q (supported: all, roots, leaves)", s)
	}
}

func parseNodeSort(s string) (query.NodeSort, error) {
	switch s {
	case "none", "":
		return query.SortNone, nil
	case "topo":
		return query.SortTopo, nil
	case "in-degree":
		return query.SortInDegree, nil
	case "out-degree":
		return query.SortOutDegree, nil
	case "ancestors":
		return query.SortAncestors, nil
	case "descendants":
		return query.SortDescendants, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort %q (supported: none, topo, in-degree, out-degree, ancestors, descendants)", s)
	}
}

func parseEdgeSort(s string) (query.EdgeSort, error) {
	switch s {
	case "none", "":
		return query.EdgeSortNone, nil
	case "source":
		return query.EdgeSortSource, nil
	case "target":
		return query.EdgeSortTarget, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort %q (supported: none, source, target)", s)
	}
}
