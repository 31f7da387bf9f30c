//go:build !windows

package main

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
)

func runWindow(ctx context.Context, o options, log *slog.Logger) error {
	return errors.New("windowed rendering needs Windows, run with -headless")
}
