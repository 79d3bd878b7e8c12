package api

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samcharles93/eclgrid/pkg/egrid"
)

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func pointFrom(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

type Dimensions struct {
	NX int `json:"nx"`
	NY int `json:"ny"`
	NZ int `json:"nz"`
}

type MapAxes struct {
	YAxisEnd [2]float32 `json:"y_axis_end"`
	Origin   [2]float32 `json:"origin"`
	XAxisEnd [2]float32 `json:"x_axis_end"`
}

// GridResponse summarises the loaded grid.
type GridResponse struct {
	Object       string     `json:"object"`
	Dimensions   Dimensions `json:"dimensions"`
	NumCells     int        `json:"num_cells"`
	GridType     int32      `json:"grid_type"`
	DualPorosity int32      `json:"dual_porosity"`
	FormatFlag   int32      `json:"format_flag"`
	MapUnits     string     `json:"map_units,omitempty"`
	MapAxes      MapAxes    `json:"map_axes"`
	CoordLen     int        `json:"coord_len"`
	ZCornLen     uint64     `json:"zcorn_len"`
}

type LimitsResponse struct {
	Object string  `json:"object"`
	XMin   float64 `json:"xmin"`
	XMax   float64 `json:"xmax"`
	YMin   float64 `json:"ymin"`
	YMax   float64 `json:"ymax"`
	ZMin   float64 `json:"zmin"`
	ZMax   float64 `json:"zmax"`
}

type CellCorners struct {
	TNW Point `json:"tnw"`
	TNE Point `json:"tne"`
	TSW Point `json:"tsw"`
	TSE Point `json:"tse"`
	BNW Point `json:"bnw"`
	BNE Point `json:"bne"`
	BSW Point `json:"bsw"`
	BSE Point `json:"bse"`
}

type CellResponse struct {
	Object  string      `json:"object"`
	I       int         `json:"i"`
	J       int         `json:"j"`
	K       int         `json:"k"`
	Corners CellCorners `json:"corners"`
	Center  Point       `json:"center"`
}

type PillarResponse struct {
	Object string `json:"object"`
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Top    Point  `json:"top"`
	Bottom Point  `json:"bottom"`
}

func newGridResponse(g *egrid.Grid) GridResponse {
	nx, ny, nz := g.Dims()
	ax := g.MapAxes()
	return GridResponse{
		Object:       "grid",
		Dimensions:   Dimensions{NX: nx, NY: ny, NZ: nz},
		NumCells:     g.NumCells(),
		GridType:     g.GridType(),
		DualPorosity: g.DualPorosity(),
		FormatFlag:   g.FormatFlag(),
		MapUnits:     g.MapUnits(),
		MapAxes: MapAxes{
			YAxisEnd: [2]float32{ax.YAxisEndX, ax.YAxisEndY},
			Origin:   [2]float32{ax.OriginX, ax.OriginY},
			XAxisEnd: [2]float32{ax.XAxisEndX, ax.XAxisEndY},
		},
		CoordLen: g.CoordLen(),
		ZCornLen: g.ZCornLen(),
	}
}

func newLimitsResponse(l egrid.Limits) LimitsResponse {
	return LimitsResponse{
		Object: "grid.limits",
		XMin:   l.XMin,
		XMax:   l.XMax,
		YMin:   l.YMin,
		YMax:   l.YMax,
		ZMin:   l.ZMin,
		ZMax:   l.ZMax,
	}
}

func newCellResponse(i, j, k int, c egrid.Cell) CellResponse {
	return CellResponse{
		Object: "grid.cell",
		I:      i,
		J:      j,
		K:      k,
		Corners: CellCorners{
			TNW: pointFrom(c.TNW), TNE: pointFrom(c.TNE),
			TSW: pointFrom(c.TSW), TSE: pointFrom(c.TSE),
			BNW: pointFrom(c.BNW), BNE: pointFrom(c.BNE),
			BSW: pointFrom(c.BSW), BSE: pointFrom(c.BSE),
		},
		Center: pointFrom(c.Center()),
	}
}
