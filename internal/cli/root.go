package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depgraph/pkg/buildinfo"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Execute runs the depgraph CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:           "depgraph",
		Short:         "depgraph transforms and converts dependency graphs",
		Long:          `depgraph parses dependency graphs from several text formats, runs structural transformations (transitive reduction, cycle extraction, clustering, diffing), and writes the result in any supported format or renders it to an image.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newSimplifyCmd())
	root.AddCommand(newFlattenCmd())
	root.AddCommand(newCyclesCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newReverseCmd())
	root.AddCommand(newClusterCmd())
	root.AddCommand(newFilterCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newRenderCmd())

	err := root.ExecuteContext(context.Background())
	if err != nil && err != errDifferences {
		// errDifferences already printed its warning.
		printError("%s", errors.UserMessage(err))
	}
	return err
}
