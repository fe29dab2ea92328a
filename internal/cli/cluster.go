package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph/cluster"
	"github.com/matzehuels/depgraph/pkg/errors"
)

const (
	algoLPA     = "lpa"
	algoLouvain = "louvain"
)

// clusterOpts holds the command-line flags for the cluster command.
type clusterOpts struct {
	algorithm     string  // "lpa" or "louvain"
	directed      bool    // respect edge direction when building adjacency
	maxIterations int     // label propagation pass limit
	seed          int64   // shuffle seed, only used when the flag is set
	resolution    float64 // Louvain community granularity
}

// newClusterCmd creates the cluster command, which groups nodes into
// communities and emits them as cluster_N subgraphs.
func newClusterCmd() *cobra.Command {
	var (
		io   ioOpts
		opts clusterOpts
	)

	cmd := &cobra.Command{
		Use:   "cluster [input]",
		Short: "Group nodes into communities as subgraphs",
		Long: `Group nodes into communities as subgraphs.

Two algorithms are available: "lpa" (label propagation, the default) and
"louvain" (modularity optimization). Each community becomes a cluster_N
subgraph; edges between communities stay at the root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var algo cluster.Algorithm
			switch opts.algorithm {
			case algoLPA:
				algo = cluster.LabelPropagation{}
			case algoLouvain:
				algo = cluster.Louvain{}
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown algorithm %q (supported: lpa, louvain)", opts.algorithm)
			}

			p := newProgress(loggerFromContext(cmd.Context()))
			g, err := readGraph(inputArg(args), io.from)
			if err != nil {
				return err
			}

			copts := cluster.Options{
				Directed:      opts.directed,
				MaxIterations: opts.maxIterations,
				Resolution:    opts.resolution,
			}
			if cmd.Flags().Changed("seed") {
				copts.Seed = &opts.seed
			}

			partition, err := algo.Cluster(g, copts)
			if err != nil {
				return err
			}
			p.done("Clustered graph")
			printStats(g.AllNodes().Len(), len(g.AllEdges()))
			printSuccess("%d clusters", len(partition))
			return writeGraph(partition.Graph(g), io)
		},
	}

	addInputFlags(cmd, &io)
	addOutputFlags(cmd, &io)
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", algoLPA, "clustering algorithm: lpa (default), louvain")
	cmd.Flags().BoolVar(&opts.directed, "directed", false, "respect edge direction")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 100, "maximum label propagation passes")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for visit-order shuffling")
	cmd.Flags().Float64Var(&opts.resolution, "resolution", 1.0, "louvain resolution (higher favors smaller communities)")
	return cmd
}
