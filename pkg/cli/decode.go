/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/filename"
)

// decodedName is the decode output of one argument.
type decodedName struct {
	File       string         `json:"file" yaml:"file"`
	Valid      bool           `json:"valid" yaml:"valid"`
	Name       *filename.Name `json:"name,omitempty" yaml:"name,omitempty"`
	Nominal    *time.Time     `json:"nominal,omitempty" yaml:"nominal,omitempty"`
	Resolution float64        `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode file names against the product naming grammar",
		ArgsUsage: "NAME...",
		Description: `Prints the fields of each file name: product, temporal and interval class,
nominal date and time, area, grid resolution and versions. Directory
components are ignored.

# Examples

  gridcert decode CFCmm20200101000000219AVPOS01GL.nc
  gridcert decode --format table ./output/*.nc`,
		Flags: []cli.Flag{
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
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "at least one file name is required")
			}
			return writeOutput(ctx, cmd, outFormat, cmd.String("output"), decodeNames(args))
		},
	}
}

func decodeNames(args []string) []decodedName {
	out := make([]decodedName, 0, len(args))
	for _, arg := range args {
		base := filepath.Base(arg)
		d := decodedName{File: base}
		if n, ok := filename.Decode(base); ok {
			d.Valid = true
			d.Name = &n
			if res, ok := n.Resolution(); ok {
				d.Resolution = res
			}
		}
		if t, ok := filename.NominalTime(base); ok {
			d.Nominal = &t
		}
		out = append(out, d)
	}
	return out
}
