package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvnage/mvnage/pkg/libyear"
	"github.com/mvnage/mvnage/pkg/maven"
)

type resolveOpts struct {
	root *rootOpts
	json bool
}

// newResolveCmd creates the resolve command.
func newResolveCmd(ro *rootOpts) *cobra.Command {
	opts := resolveOpts{root: ro}

	cmd := &cobra.Command{
		Use:   "resolve <groupId:artifactId:version>",
		Short: "Resolve the publication timestamp of a Maven artifact",
		Long: `Resolve the publication timestamp of a Maven artifact.

Repositories are probed in priority order (Maven Central, Google Maven,
Gradle Plugin Portal, JitPack by default) and the first hit wins.

Examples:
  mvnage resolve org.springframework:spring-beans:7.0.1
  mvnage resolve com.github.PhilJay:MPAndroidChart:v3.1.0 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runResolve(c.Context(), &opts, args[0])
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print machine-readable output")
	return cmd
}

func runResolve(ctx context.Context, opts *resolveOpts, arg string) error {
	logger := loggerFromContext(ctx)

	coord, err := maven.ParseCoordinate(arg)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.root.configPath)
	if err != nil {
		return err
	}

	client := cfg.newResolver()
	logger.Debugf("Probing %d repositories for %s", len(client.Repositories()), coord)

	var spin *spinner
	if !opts.json {
		spin = newSpinner(ctx, fmt.Sprintf("probing repositories for %s", coord))
		spin.start()
	}
	ts, err := client.LastModified(ctx, coord)
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}

	released := time.UnixMilli(ts).UTC()
	age := libyear.AgeYears(released, time.Now())

	if opts.json {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Coordinate   string    `json:"coordinate"`
			TimestampMS  int64     `json:"timestamp_ms"`
			LastModified time.Time `json:"last_modified"`
			AgeYears     float64   `json:"age_years"`
		}{coord.String(), ts, released, age})
	}

	printSuccess("%s", coord)
	printKeyValue("released", released.Format(time.RFC3339))
	printKeyValue("timestamp", fmt.Sprintf("%d ms", ts))
	printKeyValue("age", fmt.Sprintf("%.2f libyears", age))
	return nil
}
