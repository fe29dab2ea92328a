package cli

import (
	"bytes"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/errors"
	"github.com/matzehuels/depgraph/pkg/format"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	io     ioOpts
	format string // "svg" or "png"
}

// newRenderCmd creates the render command, which rasterizes a graph to an
// image via Graphviz layout.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a dependency graph to SVG or PNG",
		Long: `Render a dependency graph to SVG or PNG.

The graph is converted to DOT and laid out with Graphviz. The output path
defaults to the input name with the image extension, or graph.svg / graph.png
when reading stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var imgFormat graphviz.Format
			switch opts.format {
			case "svg":
				imgFormat = graphviz.SVG
			case "png":
				imgFormat = graphviz.PNG
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown image format %q (supported: svg, png)", opts.format)
			}

			p := newProgress(loggerFromContext(cmd.Context()))
			input := inputArg(args)
			g, err := readGraph(input, opts.io.from)
			if err != nil {
				return err
			}

			var dot bytes.Buffer
			if err := format.Emit("dot", &dot, g); err != nil {
				return err
			}

			ctx := cmd.Context()
			gv, err := graphviz.New(ctx)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
			}
			defer gv.Close()

			parsed, err := graphviz.ParseBytes(dot.Bytes())
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
			}
			defer parsed.Close()

			var img bytes.Buffer
			if err := gv.Render(ctx, parsed, imgFormat, &img); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "render")
			}

			output := opts.io.output
			if output == "" {
				output = outputName(input, opts.format)
			}
			if err := os.WriteFile(output, img.Bytes(), 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "writing %q", output)
			}
			p.done("Rendered " + output)
			return nil
		},
	}

	addInputFlags(cmd, &opts.io)
	cmd.Flags().StringVarP(&opts.io.output, "output", "o", "", "output image path")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "image format: svg (default), png")
	return cmd
}

// outputName derives the image path from the input path, falling back to
// "graph.<ext>" for stdin.
func outputName(input, ext string) string {
	if input == "" || input == "-" {
		return "graph." + ext
	}
	if i := strings.LastIndex(input, "."); i > 0 {
		input = input[:i]
	}
	return input + "." + ext
}
