/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gridcert/pkg/batch"
	"github.com/NVIDIA/gridcert/pkg/config"
	"github.com/NVIDIA/gridcert/pkg/dataset"
	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/ignore"
	"github.com/NVIDIA/gridcert/pkg/serializer"
	"github.com/NVIDIA/gridcert/pkg/standard"
	"github.com/NVIDIA/gridcert/pkg/validator"
	"github.com/NVIDIA/gridcert/pkg/vocabulary"
)

// defaultPattern selects files in directory mode when no pattern is given.
const defaultPattern = "*.nc"

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Validate netCDF files against a metadata standard or a reference file",
		ArgsUsage:             "FILE...",
		Description: `Validates each file in turn and prints a text report per file followed by
an overall summary. The command fails when at least one file failed.

# Standard mode (default)

The metadata standard is read from --standard, a catalog file or a directory
holding cmsaf_metadata_standard[_v<X-Y>].xml. --standard-version selects a
versioned catalog in that directory.

# Reference mode (--reference)

Global and variable attributes, variables and groups are compared with a
trusted file. Attributes that change between releases (date_created,
history, ...) are ignored by default.

# Examples

Validate against the default standard:
  gridcert check CFCmm20200101000000219AVPOS01GL.nc

Check coordinates too and detect gaps in a monthly series:
  gridcert check -c -m filename -d ./output 'CFCmm*.nc'

Compare with a reference file, ignoring one variable attribute:
  gridcert check -r reference.nc -i 'cfc@comment' candidate.nc

Write a JSON summary and Prometheus metrics:
  gridcert check --summary summary.json --format json --metrics-file gridcert.prom FILE...`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "standard",
				Aliases: []string{"s"},
				Usage:   "Metadata standard catalog file or directory (default: $GRIDCERT_STANDARDS_PATH or <exe>/../share)",
			},
			&cli.StringFlag{
				Name:  "standard-version",
				Usage: "Metadata standard version to select in the standard directory (e.g., 3.0)",
			},
			&cli.StringFlag{
				Name:    "reference",
				Aliases: []string{"r"},
				Usage:   "Reference file to compare with instead of a metadata standard",
			},
			&cli.StringFlag{
				Name:    "ignore",
				Aliases: []string{"i"},
				Usage:   "Comma-separated attributes to ignore (attr, var@attr, @attr; prefix*, *suffix and *contains* wildcards)",
			},
			&cli.BoolFlag{
				Name:    "coordinates",
				Aliases: []string{"c"},
				Usage:   "Check time, latitude and longitude coordinates",
			},
			&cli.BoolFlag{
				Name:    "lazy",
				Aliases: []string{"l"},
				Usage:   "Report grid mesh mismatches and missing time bounds as warnings",
			},
			&cli.StringFlag{
				Name:    "missing",
				Aliases: []string{"m"},
				Usage:   fmt.Sprintf("Detect missing files of a cadence (%s)", strings.Join(batch.MissingClasses, ", ")),
			},
			&cli.StringFlag{
				Name:    "directory",
				Aliases: []string{"d"},
				Usage:   "Search files below this directory; arguments are then file name patterns (default: " + defaultPattern + ")",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML configuration file; flags override its settings",
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: "Write a machine-readable batch summary to this path ('-' for stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   "Summary format (yaml, json, table)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write validation metrics in the Prometheus text format to this path",
			},
		},
		Action: runCheck,
	}
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	paths, err := collectPaths(cmd, cfg)
	if err != nil {
		return err
	}

	out := stdout(cmd)
	opts, cleanup, err := validatorOptions(cfg, out)
	if err != nil {
		return err
	}
	defer cleanup()

	v, err := validator.New(opts...)
	if err != nil {
		return err
	}

	runner := batch.New(v,
		batch.WithMissing(cfg.Missing()),
		batch.WithWriter(out),
		batch.WithVersion(version),
	)
	sum, runErr := runner.Run(ctx, paths)

	if p := cmd.String("summary"); p != "" && sum != nil {
		if err := writeOutput(ctx, cmd, serializer.Format(cfg.SummaryFormat()), p, sum); err != nil {
			return err
		}
	}
	if p := cmd.String("metrics-file"); p != "" {
		if err := validator.WriteMetrics(p); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	if sum.Failed > 0 {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidFormat,
			fmt.Sprintf("%d of %d files failed validation", sum.Failed, sum.Total),
			map[string]any{"failed": sum.Failed, "total": sum.Total})
	}
	return nil
}

// buildConfig merges the config file with the flags set on cmd.
func buildConfig(cmd *cli.Command) (*config.Config, error) {
	var opts []config.Option
	if p := cmd.String("config"); p != "" {
		f, err := config.LoadFile(p)
		if err != nil {
			return nil, err
		}
		opts = append(opts, f.Options()...)
	}

	if cmd.IsSet("standard") {
		opts = append(opts, config.WithStandardsPath(cmd.String("standard")))
	}
	if cmd.IsSet("standard-version") {
		opts = append(opts, config.WithStandardVersion(cmd.String("standard-version")))
	}
	if cmd.IsSet("reference") {
		opts = append(opts, config.WithReference(cmd.String("reference")))
	}
	if cmd.IsSet("ignore") {
		opts = append(opts, config.WithIgnore(splitList(cmd.String("ignore"))...))
	}
	if cmd.IsSet("coordinates") {
		opts = append(opts, config.WithCoordinates(cmd.Bool("coordinates")))
	}
	if cmd.IsSet("lazy") {
		opts = append(opts, config.WithLazy(cmd.Bool("lazy")))
	}
	if cmd.IsSet("missing") {
		opts = append(opts, config.WithMissing(cmd.String("missing")))
	}
	if cmd.IsSet("format") {
		opts = append(opts, config.WithSummaryFormat(cmd.String("format")))
	}

	cfg := config.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// collectPaths returns the files to validate. In directory mode the
// arguments are patterns matched below the directory.
func collectPaths(cmd *cli.Command, cfg *config.Config) ([]string, error) {
	args := cmd.Args().Slice()
	dir := cmd.String("directory")

	if dir == "" {
		if len(args) == 0 {
			return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "at least one file is required")
		}
		paths := slices.Clone(args)
		if cfg.Missing() != "" {
			batch.Sort(paths)
		}
		return paths, nil
	}

	if len(args) == 0 {
		args = []string{defaultPattern}
	}
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range args {
		found, err := batch.Discover(dir, pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	if len(paths) == 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, "no files found",
			map[string]any{"directory": dir, "patterns": args})
	}
	batch.Sort(paths)
	return paths, nil
}

// validatorOptions loads the catalog or opens the reference file. cleanup
// releases the reference file and is never nil.
func validatorOptions(cfg *config.Config, out io.Writer) (opts []validator.Option, cleanup func(), err error) {
	cleanup = func() {}
	opts = []validator.Option{
		validator.WithVersion(version),
		validator.WithCoordinates(cfg.Coordinates()),
		validator.WithLazy(cfg.Lazy()),
		validator.WithReleaseYear(cfg.ReleaseYear()),
		validator.WithWriter(out),
	}

	if cfg.ReferenceMode() {
		ref, err := dataset.Open(cfg.Reference())
		if err != nil {
			return nil, cleanup, cnserrors.WrapWithContext(cnserrors.CodeOf(err), "failed to open reference file", err,
				map[string]any{"path": cfg.Reference()})
		}
		fmt.Fprintf(out, "Using Reference File '%s'\n", cfg.Reference())
		slog.Info("reference mode", "reference", cfg.Reference())
		list := ignore.New(ignore.ReferenceDefaults...)
		list.Add(cfg.Ignore()...)
		opts = append(opts, validator.WithReference(ref), validator.WithIgnore(list))
		return opts, func() { ref.Close() }, nil
	}

	loc, err := standard.Resolve(cfg.StandardsPath(), cfg.StandardVersion())
	if err != nil {
		return nil, cleanup, err
	}
	cat, err := standard.Load(loc)
	if err != nil {
		return nil, cleanup, err
	}
	fmt.Fprintf(out, "Using Metadata Standard Version %s\n", cat.Version)
	slog.Info("standard mode", "standard", loc, "version", cat.Version, "entries", cat.Len())

	registry := vocabulary.NewRegistry(vocabulary.WithSearchPath(filepath.Dir(loc), cfg.StandardsPath()))
	opts = append(opts,
		validator.WithCatalog(cat),
		validator.WithVocabularies(registry),
		validator.WithIgnore(ignore.New(cfg.Ignore()...)),
	)
	return opts, cleanup, nil
}

// splitList splits a comma-separated flag value, dropping blank items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
