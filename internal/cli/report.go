package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mvnage/mvnage/pkg/libyear"
	"github.com/mvnage/mvnage/pkg/maven"
)

type reportOpts struct {
	root    *rootOpts
	json    bool
	workers int
}

// newReportCmd creates the report command.
func newReportCmd(ro *rootOpts) *cobra.Command {
	opts := reportOpts{root: ro}

	cmd := &cobra.Command{
		Use:   "report <pom.xml>",
		Short: "Compute a libyear dependency-age report for a Maven project",
		Long: `Compute a libyear dependency-age report for a Maven project.

The pom.xml's direct dependencies are resolved against the repository chain
and each dependency's age in libyears (365.25-day years since publication)
is summed into a project total. Dependencies that cannot be dated (test or
provided scope, optional, unresolved properties, managed versions) are
skipped and logged at debug level.

Examples:
  mvnage report pom.xml
  mvnage report pom.xml --workers 16 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runReport(c.Context(), &opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print machine-readable output")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent resolutions (default from config)")
	return cmd
}

func runReport(ctx context.Context, opts *reportOpts, path string) error {
	logger := loggerFromContext(ctx)

	proj, err := maven.ParsePOMFile(path)
	if err != nil {
		return err
	}
	for _, s := range proj.Skipped {
		logger.Debugf("Skipping %s", s)
	}
	if len(proj.Dependencies) == 0 {
		printInfo("no datable dependencies in %s", path)
		return nil
	}

	cfg, err := loadConfig(opts.root.configPath)
	if err != nil {
		return err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = cfg.Report.Workers
	}
	client := cfg.newResolver()

	logger.Infof("Resolving %d dependencies of %s", len(proj.Dependencies), proj.Coordinate())
	prog := newProgress(logger)
	rep := libyear.Run(ctx, client, proj.Dependencies, libyear.Options{Workers: workers})
	prog.done(fmt.Sprintf("Resolved %d of %d dependencies", len(rep.Entries)-rep.Failed, len(rep.Entries)))

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	renderReport(rep)
	return nil
}

// renderReport prints the per-dependency table and summary.
func renderReport(rep *libyear.Report) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleTitle.Padding(0, 1)
			case col == 2:
				return styleNumber.Padding(0, 1)
			default:
				return styleValue.Padding(0, 1)
			}
		}).
		Headers("DEPENDENCY", "RELEASED", "AGE")

	for _, e := range rep.Entries {
		if e.Err != "" {
			t.Row(e.Coordinate.String(), "-", "unresolved")
			continue
		}
		t.Row(e.Coordinate.String(), e.ReleasedAt.Format("2006-01-02"), fmt.Sprintf("%.2f y", e.AgeYears))
	}
	fmt.Println(t)

	printKeyValue("total", fmt.Sprintf("%.2f libyears", rep.TotalYears))
	if rep.Failed > 0 {
		printWarning("%d of %d dependencies could not be resolved", rep.Failed, len(rep.Entries))
	}
}
