package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samcharles93/eclgrid/pkg/egrid"
)

var cornerNames = [8]string{"TNW", "TNE", "TSW", "TSE", "BNW", "BNE", "BSW", "BSE"}

type cellReport struct {
	I       int              `json:"i"`
	J       int              `json:"j"`
	K       int              `json:"k"`
	Corners map[string]point `json:"corners"`
	Center  point            `json:"center"`
}

func newCellReport(i, j, k int, c egrid.Cell) cellReport {
	r := cellReport{I: i, J: j, K: k, Corners: make(map[string]point, 8)}
	for n, p := range c.Corners() {
		r.Corners[cornerNames[n]] = toPoint(p)
	}
	r.Center = toPoint(c.Center())
	return r
}

func toPoint(v r3.Vec) point {
	return point{X: v.X, Y: v.Y, Z: v.Z}
}

func cellCmd() *cli.Command {
	var i, j, k int

	return &cli.Command{
		Name:  "cell",
		Usage: "Print the eight corners of one cell",
		Flags: append(append(gridFlags(), outputFlags()...),
			&cli.IntFlag{
				Name:        "i",
				Usage:       "column index (zero based)",
				Required:    true,
				Destination: &i,
			},
			&cli.IntFlag{
				Name:        "j",
				Usage:       "row index (zero based)",
				Required:    true,
				Destination: &j,
			},
			&cli.IntFlag{
				Name:        "k",
				Usage:       "layer index (zero based)",
				Required:    true,
				Destination: &k,
			},
		),
		Before: setup,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, g, err := loadGrid(ctx, cmd)
			if err != nil {
				return err
			}
			c, err := g.GetCell(i, j, k)
			if err != nil {
				return err
			}
			w := outWriter(cmd)
			if jsonOut {
				return printJSON(w, newCellReport(i, j, k, c), jsonIndent)
			}
			return printCell(w, i, j, k, c)
		},
	}
}

func printCell(w io.Writer, i, j, k int, c egrid.Cell) error {
	if _, err := fmt.Fprintf(w, "cell (%d, %d, %d)\n", i, j, k); err != nil {
		return err
	}
	for n, p := range c.Corners() {
		if _, err := fmt.Fprintf(w, "  %s  %14.4f %14.4f %12.4f\n", cornerNames[n], p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	ctr := c.Center()
	_, err := fmt.Fprintf(w, "  mid  %14.4f %14.4f %12.4f\n", ctr.X, ctr.Y, ctr.Z)
	return err
}
