// Package egrid loads corner-point grid geometry from EGRID files and
// rebuilds per-cell corner coordinates from the pillar (COORD) and corner
// depth (ZCORN) fields.
//
// A Grid is immutable once Open or Decode returns, so its methods may be
// called from multiple goroutines.
package egrid

import (
	"slices"
	"sync"

	"github.com/samcharles93/eclgrid/internal/bigarray"
	"github.com/samcharles93/eclgrid/internal/logger"
)

// MapAxes holds the MAPAXES record in file order: the end point of the Y
// axis, the origin, then the end point of the X axis.
type MapAxes struct {
	YAxisEndX float32
	YAxisEndY float32
	OriginX   float32
	OriginY   float32
	XAxisEndX float32
	XAxisEndY float32
}

// Header collects the scalar header fields of a grid file.
type Header struct {
	GridType     int32
	DualPorosity int32
	FormatFlag   int32
	MapUnits     string
	MapAxes      MapAxes
}

// Grid is a decoded corner-point grid.
type Grid struct {
	header   Header
	fileHead []int32
	gridHead []int32

	nx, ny, nz int

	coord []float32
	zcorn *bigarray.Array[float32]

	limitsOnce sync.Once
	limits     Limits
}

func (g *Grid) Header() Header { return g.header }

func (g *Grid) NX() int { return g.nx }
func (g *Grid) NY() int { return g.ny }
func (g *Grid) NZ() int { return g.nz }

// Dims returns NX, NY and NZ.
func (g *Grid) Dims() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// NumCells returns NX*NY*NZ.
func (g *Grid) NumCells() int { return g.nx * g.ny * g.nz }

func (g *Grid) GridType() int32     { return g.header.GridType }
func (g *Grid) DualPorosity() int32 { return g.header.DualPorosity }
func (g *Grid) FormatFlag() int32   { return g.header.FormatFlag }
func (g *Grid) MapUnits() string    { return g.header.MapUnits }
func (g *Grid) MapAxes() MapAxes    { return g.header.MapAxes }

// FileHead returns a copy of the raw FILEHEAD integers, or nil if the file
// had none.
func (g *Grid) FileHead() []int32 { return slices.Clone(g.fileHead) }

// GridHead returns a copy of the raw GRIDHEAD integers.
func (g *Grid) GridHead() []int32 { return slices.Clone(g.gridHead) }

// CoordLen returns the number of values in the pillar field.
func (g *Grid) CoordLen() int { return len(g.coord) }

// ZCornLen returns the number of values in the corner depth field.
func (g *Grid) ZCornLen() uint64 { return g.zcorn.Len() }

func resolveOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures loading.
type Option func(*options)

type options struct {
	log        logger.Logger
	blockShift uint
}

func defaultOptions() *options {
	return &options{
		log:        logger.Discard(),
		blockShift: bigarray.DefaultBlockShift,
	}
}

// WithLogger sets the logger used while decoding. Records are logged at
// debug level.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithBlockShift sets the ZCORN segment size to 1<<shift elements.
func WithBlockShift(shift uint) Option {
	return func(o *options) {
		if shift > 0 {
			o.blockShift = shift
		}
	}
}
