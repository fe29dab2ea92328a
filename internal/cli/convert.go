package cli

import (
	"github.com/spf13/cobra"
)

// newConvertCmd creates the convert command, which parses a graph in one
// format and emits it in another.
func newConvertCmd() *cobra.Command {
	var opts ioOpts

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert a dependency graph between formats",
		Long: `Convert a dependency graph between formats.

The input format is detected from the file extension and content unless
--from is given. Reads stdin when the input is "-" or omitted.

Examples:
  depgraph convert deps.dot --to mermaid
  cat Cargo.toml | depgraph convert --from cargo --to json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			g, err := readGraph(inputArg(args), opts.from)
			if err != nil {
				return err
			}
			logger.Debugf("parsed %d nodes, %d edges", g.AllNodes().Len(), len(g.AllEdges()))
			return writeGraph(g, opts)
		},
	}

	addInputFlags(cmd, &opts)
	addOutputFlags(cmd, &opts)
	return cmd
}
