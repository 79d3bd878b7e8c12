package egrid

import (
	"fmt"
	"io"
	"math"

	"github.com/samcharles93/eclgrid/internal/bigarray"
	"github.com/samcharles93/eclgrid/internal/eclbin"
	"github.com/samcharles93/eclgrid/internal/logger"
)

const (
	kwFileHead = "FILEHEAD"
	kwMapUnits = "MAPUNITS"
	kwMapAxes  = "MAPAXES"
	kwGridHead = "GRIDHEAD"
	kwCoord    = "COORD"
	kwZCorn    = "ZCORN"
	kwEndGrid  = "ENDGRID"
)

// FILEHEAD item positions.
const (
	fileHeadGridType     = 4
	fileHeadDualPorosity = 5
	fileHeadFormat       = 6
)

// GRIDHEAD item positions.
const (
	gridHeadNX = 1
	gridHeadNY = 2
	gridHeadNZ = 3
)

const (
	mapUnitsLen    = 8
	mapAxesCount   = 6
	coordPerPillar = 6
	zcornPerCell   = 8
)

type handlerFunc func(l *loader, r *eclbin.Reader, h eclbin.Header) error

// handlers maps grid keywords to their decoders. Each may appear once before
// ENDGRID. Keywords not listed here are skipped by (*loader).skip.
var handlers = map[string]handlerFunc{
	kwFileHead: (*loader).fileHead,
	kwMapUnits: (*loader).mapUnits,
	kwMapAxes:  (*loader).mapAxes,
	kwGridHead: (*loader).gridHead,
	kwCoord:    (*loader).coord,
	kwZCorn:    (*loader).zcorn,
	kwEndGrid:  (*loader).endGrid,
}

type loader struct {
	g       *Grid
	opts    *options
	log     logger.Logger
	seen    map[string]bool
	dimsSet bool
	done    bool
}

// Decode reads a grid from the first size bytes of r. It either returns a
// complete grid or an error; partial grids are never returned.
func Decode(r io.ReaderAt, size int64, opts ...Option) (*Grid, error) {
	return decode(r, size, resolveOptions(opts))
}

func decode(r io.ReaderAt, size int64, o *options) (*Grid, error) {
	l := &loader{g: &Grid{}, opts: o, log: o.log, seen: make(map[string]bool)}
	if err := l.run(eclbin.NewReader(r, size)); err != nil {
		return nil, err
	}
	return l.g, nil
}

func (l *loader) run(r *eclbin.Reader) error {
	for r.Remaining() >= eclbin.HeaderSize {
		at := r.Pos()
		h, err := r.ReadHeader()
		if err != nil {
			return fmt.Errorf("record header at offset %d: %w", at, err)
		}
		l.log.Debug("record", "keyword", h.Keyword, "count", h.Count, "type", string(h.Type), "offset", at)

		handle, ok := handlers[h.Keyword]
		if !ok || l.done {
			handle = (*loader).skip
		} else if l.seen[h.Keyword] {
			return fmt.Errorf("%s at offset %d: %w: repeated", h.Keyword, at, ErrRecordOrder)
		}
		l.seen[h.Keyword] = true
		if err := handle(l, r, h); err != nil {
			return fmt.Errorf("%s at offset %d: %w", h.Keyword, at, err)
		}
	}

	switch {
	case !l.dimsSet:
		return fmt.Errorf("%w: %s", ErrMissingKeyword, kwGridHead)
	case l.g.coord == nil:
		return fmt.Errorf("%w: %s", ErrMissingKeyword, kwCoord)
	case l.g.zcorn == nil:
		return fmt.Errorf("%w: %s", ErrMissingKeyword, kwZCorn)
	}
	l.log.Info("grid loaded", "nx", l.g.nx, "ny", l.g.ny, "nz", l.g.nz, "map_units", l.g.header.MapUnits)
	return nil
}

func (l *loader) skip(r *eclbin.Reader, h eclbin.Header) error {
	return r.SkipData(h)
}

func (l *loader) fileHead(r *eclbin.Reader, h eclbin.Header) error {
	if err := checkShape(h, eclbin.TypeInt, fileHeadFormat+1, false); err != nil {
		return err
	}
	v, err := r.ReadInts(h)
	if err != nil {
		return err
	}
	l.g.fileHead = v
	l.g.header.GridType = v[fileHeadGridType]
	l.g.header.DualPorosity = v[fileHeadDualPorosity]
	l.g.header.FormatFlag = v[fileHeadFormat]
	return nil
}

// mapUnits reads the single CHAR element directly: block marker, the
// 8-character unit name, block marker.
func (l *loader) mapUnits(r *eclbin.Reader, h eclbin.Header) error {
	if err := checkShape(h, eclbin.TypeChar, 1, true); err != nil {
		return err
	}
	if err := expectMarker(r, mapUnitsLen); err != nil {
		return err
	}
	s, err := r.ReadString(mapUnitsLen)
	if err != nil {
		return err
	}
	if err := expectMarker(r, mapUnitsLen); err != nil {
		return err
	}
	l.g.header.MapUnits = s
	return nil
}

// mapAxes reads the six floats in their fixed file order.
func (l *loader) mapAxes(r *eclbin.Reader, h eclbin.Header) error {
	if err := checkShape(h, eclbin.TypeReal, mapAxesCount, true); err != nil {
		return err
	}
	if err := expectMarker(r, mapAxesCount*4); err != nil {
		return err
	}
	ax := &l.g.header.MapAxes
	for _, dst := range []*float32{
		&ax.YAxisEndX, &ax.YAxisEndY,
		&ax.OriginX, &ax.OriginY,
		&ax.XAxisEndX, &ax.XAxisEndY,
	} {
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		*dst = v
	}
	return expectMarker(r, mapAxesCount*4)
}

func (l *loader) gridHead(r *eclbin.Reader, h eclbin.Header) error {
	if err := checkShape(h, eclbin.TypeInt, gridHeadNZ+1, false); err != nil {
		return err
	}
	v, err := r.ReadInts(h)
	if err != nil {
		return err
	}
	nx, ny, nz := v[gridHeadNX], v[gridHeadNY], v[gridHeadNZ]
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return fmt.Errorf("%w: dimensions %dx%dx%d", ErrRecordShape, nx, ny, nz)
	}
	l.g.gridHead = v
	l.g.nx, l.g.ny, l.g.nz = int(nx), int(ny), int(nz)
	l.dimsSet = true
	return nil
}

func (l *loader) coord(r *eclbin.Reader, h eclbin.Header) error {
	if !l.dimsSet {
		return fmt.Errorf("%w: %s before %s", ErrRecordOrder, kwCoord, kwGridHead)
	}
	want, err := fieldLen(coordPerPillar, l.g.nx+1, l.g.ny+1)
	if err != nil {
		return err
	}
	if err := checkShapeU(h, eclbin.TypeReal, want); err != nil {
		return err
	}
	v, err := r.ReadFloats(h)
	if err != nil {
		return err
	}
	l.g.coord = v
	return nil
}

func (l *loader) zcorn(r *eclbin.Reader, h eclbin.Header) error {
	if !l.dimsSet {
		return fmt.Errorf("%w: %s before %s", ErrRecordOrder, kwZCorn, kwGridHead)
	}
	want, err := fieldLen(zcornPerCell, l.g.nx, l.g.ny, l.g.nz)
	if err != nil {
		return err
	}
	if err := checkShapeU(h, eclbin.TypeReal, want); err != nil {
		return err
	}
	if err := r.CheckPayload(h); err != nil {
		return err
	}
	dst := bigarray.NewWithBlockShift[float32](want, l.opts.blockShift)
	if err := r.ReadFloatsInto(h, dst); err != nil {
		return err
	}
	l.g.zcorn = dst
	return nil
}

// endGrid closes the global grid. Local grid refinements and NNC data
// that follow are skipped.
func (l *loader) endGrid(r *eclbin.Reader, h eclbin.Header) error {
	l.done = true
	return r.SkipData(h)
}

// checkShape verifies the type tag and count. With exact unset the record
// may carry more than count elements.
func checkShape(h eclbin.Header, typ eclbin.Type, count int, exact bool) error {
	if h.Type != typ {
		return fmt.Errorf("%w: type %s, want %s", ErrRecordShape, h.Type, typ)
	}
	if (exact && h.Count != count) || h.Count < count {
		return fmt.Errorf("%w: %d elements, want %d", ErrRecordShape, h.Count, count)
	}
	return nil
}

// fieldLen multiplies per by dims, failing once the product passes the
// largest count a record header can carry. Every factor is below 2^31, so
// no intermediate product overflows.
func fieldLen(per int, dims ...int) (uint64, error) {
	n := uint64(per)
	for _, d := range dims {
		n *= uint64(d)
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d values per item over %v exceed a record's capacity", ErrRecordShape, per, dims)
		}
	}
	return n, nil
}

func checkShapeU(h eclbin.Header, typ eclbin.Type, count uint64) error {
	if h.Type != typ {
		return fmt.Errorf("%w: type %s, want %s", ErrRecordShape, h.Type, typ)
	}
	if uint64(h.Count) != count {
		return fmt.Errorf("%w: %d elements, want %d", ErrRecordShape, h.Count, count)
	}
	return nil
}

func expectMarker(r *eclbin.Reader, want int32) error {
	at := r.Pos()
	m, err := r.ReadInt32()
	if err != nil {
		return err
	}
	if m != want {
		return fmt.Errorf("%w: block marker %d at offset %d, want %d", eclbin.ErrCorruptRecord, m, at, want)
	}
	return nil
}
