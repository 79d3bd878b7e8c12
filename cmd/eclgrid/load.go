package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/eclgrid/internal/logger"
	"github.com/samcharles93/eclgrid/pkg/egrid"
)

// loadGrid resolves --grid / --grids-dir and decodes the file.
func loadGrid(ctx context.Context, cmd *cli.Command) (string, *egrid.Grid, error) {
	stdin := cmd.Root().Reader
	if stdin == nil {
		stdin = os.Stdin
	}
	path, err := resolveGridPath(gridPath, gridsDir, stdin, errWriter(cmd))
	if err != nil {
		return "", nil, err
	}
	log := logger.FromContext(ctx)
	g, err := egrid.Open(path, egrid.WithLogger(log))
	if err != nil {
		return "", nil, err
	}
	return path, g, nil
}
