/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/gridcert/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// stdout returns the writer of the root command.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// writeOutput serializes data to path, or to the command writer when path
// is blank or "-".
func writeOutput(ctx context.Context, cmd *cli.Command, format serializer.Format, path string, data any) error {
	var s serializer.Serializer = serializer.NewWriter(format, stdout(cmd))
	if path != "" && path != serializer.StdoutURI {
		fw, err := serializer.NewFileWriterOrStdout(format, path)
		if err != nil {
			return err
		}
		s = fw
	}
	if c, ok := s.(serializer.Closer); ok {
		defer c.Close()
	}
	return s.Serialize(ctx, data)
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "yaml",
		Usage:   "Output format (yaml, json, table)",
	}
}
