/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NVIDIA/gridcert/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.Execute(ctx, os.Args)
	stop()
	if err == nil {
		return
	}

	slog.Error("gridcert failed", "error", err)
	if errors.Is(err, context.Canceled) {
		os.Exit(2)
	}
	os.Exit(1)
}
