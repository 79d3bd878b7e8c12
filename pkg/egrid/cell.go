package egrid

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cell holds the eight corners of one grid cell. The first letter is the
// face (Top, Bottom), then North/South, then West/East.
type Cell struct {
	TNW, TNE, TSW, TSE r3.Vec
	BNW, BNE, BSW, BSE r3.Vec
}

// Corners returns the corners in the order TNW, TNE, TSW, TSE, BNW, BNE,
// BSW, BSE.
func (c Cell) Corners() [8]r3.Vec {
	return [8]r3.Vec{c.TNW, c.TNE, c.TSW, c.TSE, c.BNW, c.BNE, c.BSW, c.BSE}
}

// Center returns the mean of the eight corners.
func (c Cell) Center() r3.Vec {
	var sum r3.Vec
	for _, p := range c.Corners() {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1.0/8, sum)
}

// GetCell rebuilds cell (i, j, k), zero based, column/row/layer.
//
// Depths come straight from ZCORN. The horizontal position of every corner
// is found on the pillar it sits on: a pillar whose ends have identical
// depth contributes its end points unchanged, any other pillar is
// interpolated linearly at the corner depth.
func (g *Grid) GetCell(i, j, k int) (Cell, error) {
	if i < 0 || i >= g.nx || j < 0 || j >= g.ny || k < 0 || k >= g.nz {
		return Cell{}, fmt.Errorf("%w: (%d, %d, %d) outside %dx%dx%d", ErrCellOutOfRange, i, j, k, g.nx, g.ny, g.nz)
	}

	nx, ny := uint64(g.nx), uint64(g.ny)
	top := uint64(k)*nx*ny*8 + uint64(j)*nx*4 + 2*uint64(i)
	bottom := top + nx*ny*4

	// NW, NE, SW, SE.
	offsets := [4]uint64{0, 1, nx * 2, nx*2 + 1}
	pillars := [4][2]int{{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1}}

	var tops, bottoms [4]r3.Vec
	for n := range 4 {
		zt, err := g.zcorn.At(top + offsets[n])
		if err != nil {
			return Cell{}, err
		}
		zb, err := g.zcorn.At(bottom + offsets[n])
		if err != nil {
			return Cell{}, err
		}
		pt, pb := g.pillar(pillars[n][0], pillars[n][1])
		tops[n], bottoms[n] = project(pt, pb, float64(zt), float64(zb))
	}

	return Cell{
		TNW: tops[0], TNE: tops[1], TSW: tops[2], TSE: tops[3],
		BNW: bottoms[0], BNE: bottoms[1], BSW: bottoms[2], BSE: bottoms[3],
	}, nil
}

// Pillar returns the top and bottom end points of pillar (c, r), with c in
// [0, NX] and r in [0, NY].
func (g *Grid) Pillar(c, r int) (top, bottom r3.Vec, err error) {
	if c < 0 || c > g.nx || r < 0 || r > g.ny {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrPillarOutOfRange, c, r, g.nx+1, g.ny+1)
	}
	top, bottom = g.pillar(c, r)
	return top, bottom, nil
}

func (g *Grid) pillar(c, r int) (top, bottom r3.Vec) {
	p := g.coord[(c+(g.nx+1)*r)*coordPerPillar:][:coordPerPillar]
	top = r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
	bottom = r3.Vec{X: float64(p[3]), Y: float64(p[4]), Z: float64(p[5])}
	return top, bottom
}

// project places the top-face and bottom-face corners that share a pillar.
// The equality test is exact on purpose: only a pillar with identical end
// depths has no usable slope.
func project(pillarTop, pillarBottom r3.Vec, zTop, zBottom float64) (r3.Vec, r3.Vec) {
	if pillarBottom.Z == pillarTop.Z {
		return r3.Vec{X: pillarTop.X, Y: pillarTop.Y, Z: zTop},
			r3.Vec{X: pillarBottom.X, Y: pillarBottom.Y, Z: zBottom}
	}
	return onPillar(pillarTop, pillarBottom, zTop), onPillar(pillarTop, pillarBottom, zBottom)
}

func onPillar(top, bottom r3.Vec, z float64) r3.Vec {
	frac := (z - top.Z) / (bottom.Z - top.Z)
	p := r3.Add(top, r3.Scale(frac, r3.Sub(bottom, top)))
	p.Z = z
	return p
}
