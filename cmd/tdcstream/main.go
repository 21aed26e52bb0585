package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/labtdc/tdcstream/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "TDC timestamp stream merging and coincidence counting",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			mergeCommand(),
			coincidencesCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
