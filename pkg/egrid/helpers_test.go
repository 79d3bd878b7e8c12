package egrid

import (
	"bytes"
	"testing"

	"github.com/samcharles93/eclgrid/internal/eclbin"
)

// encodeRecords runs fn against a fresh record writer and returns the bytes
// as a ReaderAt.
func encodeRecords(t *testing.T, fn func(w *eclbin.Writer) error) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	w := eclbin.NewWriter(&buf)
	if err := fn(w); err != nil {
		t.Fatalf("encode records: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func encodeBox(t *testing.T, b Box) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteBox(&buf, b); err != nil {
		t.Fatalf("WriteBox: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func gridHeadInts(nx, ny, nz int) []int32 {
	v := make([]int32, headLen)
	v[0] = cornerPointGrid
	v[gridHeadNX], v[gridHeadNY], v[gridHeadNZ] = int32(nx), int32(ny), int32(nz)
	return v
}

// encodeGrid writes the minimum record set for a loadable grid.
func encodeGrid(t *testing.T, nx, ny, nz int, coord, zcorn []float32) *bytes.Reader {
	t.Helper()
	return encodeRecords(t, func(w *eclbin.Writer) error {
		if err := w.WriteInts(kwGridHead, gridHeadInts(nx, ny, nz)); err != nil {
			return err
		}
		if err := w.WriteFloats(kwCoord, coord); err != nil {
			return err
		}
		return w.WriteFloats(kwZCorn, zcorn)
	})
}

func decodeReader(r *bytes.Reader, opts ...Option) (*Grid, error) {
	return Decode(r, r.Size(), opts...)
}

func mustDecode(t *testing.T, r *bytes.Reader, opts ...Option) *Grid {
	t.Helper()
	g, err := decodeReader(r, opts...)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return g
}

func verticalCoord(nx, ny int, dx, dy, top, bottom float32) []float32 {
	out := make([]float32, 0, coordPerPillar*(nx+1)*(ny+1))
	for r := range ny + 1 {
		for c := range nx + 1 {
			x, y := float32(c)*dx, float32(r)*dy
			out = append(out, x, y, top, x, y, bottom)
		}
	}
	return out
}
