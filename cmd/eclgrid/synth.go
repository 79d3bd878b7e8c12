package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/eclgrid/internal/logger"
	"github.com/samcharles93/eclgrid/pkg/egrid"
)

func synthCmd() *cli.Command {
	var (
		out  string
		name string
		box  egrid.Box
	)

	return &cli.Command{
		Name:  "synth",
		Usage: "Write a synthetic box-shaped grid",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (default: <grids-dir or ./out>/<name>.EGRID)",
				Destination: &out,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "grid name used for the default output file",
				Value:       "SYNTH",
				Destination: &name,
			},
			&cli.StringFlag{
				Name:        "grids-dir",
				Usage:       "directory for the default output file",
				Destination: &gridsDir,
			},
			&cli.IntFlag{Name: "nx", Usage: "cells along X", Value: 10, Destination: &box.NX},
			&cli.IntFlag{Name: "ny", Usage: "cells along Y", Value: 10, Destination: &box.NY},
			&cli.IntFlag{Name: "nz", Usage: "layers", Value: 5, Destination: &box.NZ},
			&cli.FloatFlag{Name: "dx", Usage: "cell size along X", Value: 100, Destination: &box.DX},
			&cli.FloatFlag{Name: "dy", Usage: "cell size along Y", Value: 100, Destination: &box.DY},
			&cli.FloatFlag{Name: "dz", Usage: "layer thickness", Value: 10, Destination: &box.DZ},
			&cli.FloatFlag{Name: "origin-x", Usage: "X of pillar (0,0)", Destination: &box.OriginX},
			&cli.FloatFlag{Name: "origin-y", Usage: "Y of pillar (0,0)", Destination: &box.OriginY},
			&cli.FloatFlag{Name: "top", Usage: "depth of the top face", Value: 2000, Destination: &box.Top},
			&cli.FloatFlag{Name: "tilt", Usage: "X shift of pillar bottoms per unit depth", Destination: &box.Tilt},
			&cli.StringFlag{Name: "map-units", Usage: "MAPUNITS value", Value: "METRES", Destination: &box.MapUnits},
		},
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			log := logger.FromContext(ctx)

			path, err := resolveSynthOut(out, name, gridsDir)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			if err := egrid.WriteBox(f, box); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info("grid written", "path", path, "nx", box.NX, "ny", box.NY, "nz", box.NZ)
			_, err = fmt.Fprintln(outWriter(cmd), path)
			return err
		},
	}
}
