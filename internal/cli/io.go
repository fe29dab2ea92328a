package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/format"
)

// ioOpts holds the input/output flags shared by most commands.
type ioOpts struct {
	from   string // input format, auto-detected when empty
	to     string // output format
	output string // output file path (stdout if empty)
}

// addInputFlags registers --from on cmd.
func addInputFlags(cmd *cobra.Command, opts *ioOpts) {
	cmd.Flags().StringVar(&opts.from, "from", "", "input format (auto-detected if empty)")
}

// addOutputFlags registers --to and --output on cmd.
func addOutputFlags(cmd *cobra.Command, opts *ioOpts) {
	cmd.Flags().StringVar(&opts.to, "to", "dot", "output format")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
}

// readGraph loads and parses a graph. A path of "-" or "" reads stdin. When
// formatName is empty the format is detected from the path and content.
func readGraph(path, formatName string) (*depgraph.Graph, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		path = ""
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading stdin")
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %q not found", path)
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading %q", path)
		}
	}

	if formatName == "" {
		f, err := format.Detect(path, data)
		if err != nil {
			return nil, err
		}
		formatName = f.Name
	}
	return format.Parse(formatName, data)
}

// writeGraph emits g in the configured output format, to the output file or
// stdout.
func writeGraph(g *depgraph.Graph, opts ioOpts) error {
	w, closer, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer closer()
	return format.Emit(opts.to, w, g)
}

// openOutput returns a writer for path, or stdout when path is empty. The
// returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "creating %q", path)
	}
	return f, func() { f.Close() }, nil
}

// inputArg returns the optional positional input path, empty meaning stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
