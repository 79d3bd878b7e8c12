package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/eclgrid/pkg/egrid"
)

type inspectReport struct {
	Path         string       `json:"path"`
	NX           int          `json:"nx"`
	NY           int          `json:"ny"`
	NZ           int          `json:"nz"`
	NumCells     int          `json:"num_cells"`
	GridType     int32        `json:"grid_type"`
	DualPorosity int32        `json:"dual_porosity"`
	FormatFlag   int32        `json:"format_flag"`
	MapUnits     string       `json:"map_units"`
	MapAxes      [6]float32   `json:"map_axes"`
	CoordLen     int          `json:"coord_len"`
	ZCornLen     uint64       `json:"zcorn_len"`
	Limits       egrid.Limits `json:"limits"`
}

func newInspectReport(path string, g *egrid.Grid) inspectReport {
	nx, ny, nz := g.Dims()
	ax := g.MapAxes()
	return inspectReport{
		Path:         path,
		NX:           nx,
		NY:           ny,
		NZ:           nz,
		NumCells:     g.NumCells(),
		GridType:     g.GridType(),
		DualPorosity: g.DualPorosity(),
		FormatFlag:   g.FormatFlag(),
		MapUnits:     g.MapUnits(),
		MapAxes:      [6]float32{ax.YAxisEndX, ax.YAxisEndY, ax.OriginX, ax.OriginY, ax.XAxisEndX, ax.XAxisEndY},
		CoordLen:     g.CoordLen(),
		ZCornLen:     g.ZCornLen(),
		Limits:       g.CalcGridLimits(),
	}
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:   "inspect",
		Usage:  "Print grid header, dimensions and extent",
		Flags:  append(gridFlags(), outputFlags()...),
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, g, err := loadGrid(ctx, cmd)
			if err != nil {
				return err
			}
			report := newInspectReport(path, g)
			w := outWriter(cmd)
			if jsonOut {
				return printJSON(w, report, jsonIndent)
			}
			return printInspect(w, report)
		},
	}
}

func printInspect(w io.Writer, r inspectReport) error {
	ax := r.MapAxes
	l := r.Limits
	_, err := fmt.Fprintf(w, `file:          %s
dimensions:    %d x %d x %d (%d cells)
grid type:     %d
dual porosity: %d
format flag:   %d
map units:     %s
map axes:      y-end (%g, %g) origin (%g, %g) x-end (%g, %g)
coord:         %d values
zcorn:         %d values
limits x:      [%g, %g]
limits y:      [%g, %g]
limits z:      [%g, %g]
`,
		r.Path,
		r.NX, r.NY, r.NZ, r.NumCells,
		r.GridType,
		r.DualPorosity,
		r.FormatFlag,
		r.MapUnits,
		ax[0], ax[1], ax[2], ax[3], ax[4], ax[5],
		r.CoordLen,
		r.ZCornLen,
		l.XMin, l.XMax,
		l.YMin, l.YMax,
		l.ZMin, l.ZMax,
	)
	return err
}
