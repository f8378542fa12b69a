/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gridcert/pkg/defaults"
	"github.com/NVIDIA/gridcert/pkg/header"
	"github.com/NVIDIA/gridcert/pkg/standard"
)

// StandardKind is the kind of catalog overviews.
const StandardKind header.Kind = "MetadataStandard"

type catalogOverview struct {
	header.Header `json:",inline" yaml:",inline"`

	Path         string          `json:"path" yaml:"path"`
	Version      string          `json:"standardVersion" yaml:"standardVersion"`
	LastModified string          `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Include      string          `json:"include,omitempty" yaml:"include,omitempty"`
	Available    []string        `json:"available,omitempty" yaml:"available,omitempty"`
	Entries      []entryOverview `json:"entries" yaml:"entries"`
}

type entryOverview struct {
	ID       string            `json:"id" yaml:"id"`
	Type     string            `json:"type" yaml:"type"`
	Required standard.Required `json:"required" yaml:"required"`
	Rules    int               `json:"rules" yaml:"rules"`
	Keywords []string          `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

func standardCmd() *cli.Command {
	return &cli.Command{
		Name:  "standard",
		Usage: "Print an overview of a metadata standard catalog",
		Description: `Resolves the catalog the check command would use and lists its version and
entries. In a standards directory the available versions are listed too.

# Examples

  gridcert standard --standard ./share
  gridcert standard --standard ./share --standard-version 3.0 --format table`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "standard",
				Aliases: []string{"s"},
				Value:   defaults.StandardsPath(),
				Usage:   "Metadata standard catalog file or directory",
			},
			&cli.StringFlag{
				Name:  "standard-version",
				Usage: "Metadata standard version to select in the standard directory",
			},
			formatFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			location := cmd.String("standard")
			path, err := standard.Resolve(location, cmd.String("standard-version"))
			if err != nil {
				return err
			}
			cat, err := standard.Load(path)
			if err != nil {
				return err
			}
			ov := overview(path, cat)
			if versions, err := standard.Versions(location); err == nil {
				for _, a := range versions {
					ov.Available = append(ov.Available, a.Version.String())
				}
			}
			return writeOutput(ctx, cmd, outFormat, cmd.String("output"), ov)
		},
	}
}

func overview(path string, cat *standard.Catalog) *catalogOverview {
	ov := &catalogOverview{
		Path:         path,
		Version:      cat.Version,
		LastModified: cat.LastModified,
		Include:      cat.Include,
		Entries:      make([]entryOverview, 0, cat.Len()),
	}
	ov.Init(StandardKind, "", version)
	for _, e := range cat.Entries {
		ov.Entries = append(ov.Entries, entryOverview{
			ID:       e.ID,
			Type:     e.Type,
			Required: e.Required,
			Rules:    e.RuleCount(),
			Keywords: e.Keywords,
		})
	}
	return ov
}
