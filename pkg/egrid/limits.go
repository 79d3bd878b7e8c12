package egrid

import "gonum.org/v1/gonum/floats"

// Limits is the bounding box estimated from the grid's corner pillars.
type Limits struct {
	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
	ZMin float64 `json:"zmin"`
	ZMax float64 `json:"zmax"`
}

// CalcGridLimits estimates the grid extent from the four pillars at the
// lattice corners (0,0), (NX,0), (0,NY) and (NX,NY). X and Y come from the
// pillar tops, Z from both ends. Interior pillars are ignored, so a faulted
// or strongly curved grid may extend past the result.
//
// The result is computed once and cached.
func (g *Grid) CalcGridLimits() Limits {
	g.limitsOnce.Do(func() {
		g.limits = g.calcLimits()
	})
	return g.limits
}

func (g *Grid) calcLimits() Limits {
	corners := [4][2]int{{0, 0}, {g.nx, 0}, {0, g.ny}, {g.nx, g.ny}}

	xs := make([]float64, 0, 4)
	ys := make([]float64, 0, 4)
	zs := make([]float64, 0, 8)
	for _, c := range corners {
		top, bottom := g.pillar(c[0], c[1])
		xs = append(xs, top.X)
		ys = append(ys, top.Y)
		zs = append(zs, top.Z, bottom.Z)
	}

	return Limits{
		XMin: floats.Min(xs), XMax: floats.Max(xs),
		YMin: floats.Min(ys), YMax: floats.Max(ys),
		ZMin: floats.Min(zs), ZMax: floats.Max(zs),
	}
}
