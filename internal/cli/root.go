package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvnage/mvnage/pkg/buildinfo"
)

// rootOpts holds flags shared by every command.
type rootOpts struct {
	configPath string
}

// Execute runs the mvnage CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (resolve,
// report, serve) and configures logging based on the --verbose flag. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	opts := &rootOpts{}

	root := &cobra.Command{
		Use:          "mvnage",
		Short:        "mvnage resolves Maven artifact publication dates and dependency age",
		Long:         `mvnage probes an ordered chain of Maven repository mirrors for an artifact's publication timestamp and computes libyear dependency-age reports from pom.xml files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./mvnage.toml if present)")

	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root.ExecuteContext(ctx)
}
