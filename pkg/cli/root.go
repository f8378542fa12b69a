/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gridcert/pkg/logging"
)

const (
	name           = "gridcert"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/gridcert/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the gridcert command line with args (including the program
// name).
func Execute(ctx context.Context, args []string) error {
	return newRootCmd().Run(ctx, args)
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Certify netCDF metadata and coordinates against a metadata standard or a reference file",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLogger(name, version,
				logging.WithDebug(cmd.Bool("debug")),
				logging.WithJSON(cmd.Bool("log-json")),
				logging.WithOutput(cmd.Root().ErrWriter),
			)
			slog.Debug("starting", "commit", commit, "date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			checkCmd(),
			decodeCmd(),
			standardCmd(),
		},
	}
}
