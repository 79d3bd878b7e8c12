package egrid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestVerticalPillarsHaveNoDrift(t *testing.T) {
	t.Parallel()

	b := Box{NX: 4, NY: 3, NZ: 3, DX: 37.5, DY: 12.3, DZ: 4.1, OriginX: 1234.56, OriginY: 789.01, Top: 2011.7}
	g := mustDecode(t, encodeBox(t, b))

	for k := range b.NZ {
		for j := range b.NY {
			for i := range b.NX {
				c, err := g.GetCell(i, j, k)
				require.NoError(t, err)

				corners := c.Corners()
				pillarOf := [8][2]int{
					{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1},
					{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1},
				}
				for n, p := range corners {
					top, _, err := g.Pillar(pillarOf[n][0], pillarOf[n][1])
					require.NoError(t, err)
					if p.X != top.X || p.Y != top.Y {
						t.Fatalf("cell (%d,%d,%d) corner %d at (%v,%v), pillar at (%v,%v)", i, j, k, n, p.X, p.Y, top.X, top.Y)
					}
				}
			}
		}
	}
}

func TestDepthIndexing(t *testing.T) {
	t.Parallel()

	const nx, ny, nz = 2, 2, 2
	zcorn := make([]float32, 8*nx*ny*nz)
	for i := range zcorn {
		zcorn[i] = float32(i)
	}
	g := mustDecode(t, encodeGrid(t, nx, ny, nz, verticalCoord(nx, ny, 1, 1, -10, 100), zcorn), WithBlockShift(3))

	tests := []struct {
		i, j, k int
		want    [8]float64
	}{
		// base = k*nx*ny*8 + j*nx*4 + 2*i; south rows add 2*nx, bottom face adds 4*nx*ny.
		{0, 0, 0, [8]float64{0, 1, 4, 5, 16, 17, 20, 21}},
		{1, 0, 0, [8]float64{2, 3, 6, 7, 18, 19, 22, 23}},
		{0, 1, 0, [8]float64{8, 9, 12, 13, 24, 25, 28, 29}},
		{1, 1, 1, [8]float64{42, 43, 46, 47, 58, 59, 62, 63}},
	}
	for _, tc := range tests {
		c, err := g.GetCell(tc.i, tc.j, tc.k)
		require.NoError(t, err)
		var got [8]float64
		for n, p := range c.Corners() {
			got[n] = p.Z
		}
		assert.Equal(t, tc.want, got, "cell (%d,%d,%d)", tc.i, tc.j, tc.k)
	}
}

func TestSlopedPillarIsCollinear(t *testing.T) {
	t.Parallel()

	coord := verticalCoord(1, 1, 100, 100, 1000, 2000)
	// Pillar (0,0) runs from (0,0,1000) to (100,40,2000).
	copy(coord[0:6], []float32{0, 0, 1000, 100, 40, 2000})

	zcorn := []float32{
		1250, 1250, 1250, 1250, // top face
		1750, 1750, 1750, 1750, // bottom face
	}
	g := mustDecode(t, encodeGrid(t, 1, 1, 1, coord, zcorn))

	c, err := g.GetCell(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 25, Y: 10, Z: 1250}, c.TNW)
	assert.Equal(t, r3.Vec{X: 75, Y: 30, Z: 1750}, c.BNW)

	top, bottom, err := g.Pillar(0, 0)
	require.NoError(t, err)
	axis := r3.Sub(bottom, top)
	for _, p := range []r3.Vec{c.TNW, c.BNW} {
		rel := r3.Sub(p, top)
		assert.Equal(t, r3.Vec{}, r3.Cross(rel, axis), "corner %v off the pillar", p)
		param := r3.Dot(rel, axis) / r3.Dot(axis, axis)
		assert.GreaterOrEqual(t, param, 0.0)
		assert.LessOrEqual(t, param, 1.0)
	}

	// The other pillars are vertical.
	assert.Equal(t, r3.Vec{X: 100, Y: 0, Z: 1250}, c.TNE)
	assert.Equal(t, r3.Vec{X: 100, Y: 100, Z: 1750}, c.BSE)
}

func TestFlatPillarUsesEndPoints(t *testing.T) {
	t.Parallel()

	coord := verticalCoord(1, 1, 10, 10, 500, 600)
	// Degenerate pillar (1,0): both ends at depth 500.
	copy(coord[6:12], []float32{10, 0, 500, 12, 3, 500})
	zcorn := []float32{520, 520, 520, 520, 580, 580, 580, 580}
	g := mustDecode(t, encodeGrid(t, 1, 1, 1, coord, zcorn))

	c, err := g.GetCell(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 10, Y: 0, Z: 520}, c.TNE)
	assert.Equal(t, r3.Vec{X: 12, Y: 3, Z: 580}, c.BNE)
}

func TestTiltedBox(t *testing.T) {
	t.Parallel()

	b := Box{NX: 2, NY: 1, NZ: 2, DX: 100, DY: 100, DZ: 50, Top: 1000, Tilt: 0.5}
	g := mustDecode(t, encodeBox(t, b))

	// Pillars span depth 1000..1100 and shift 50 in X over that span.
	c, err := g.GetCell(1, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 125, Y: 0, Z: 1050}, c.TNW)
	assert.Equal(t, r3.Vec{X: 250, Y: 100, Z: 1100}, c.BSE)
	assert.Equal(t, r3.Vec{X: 187.5, Y: 50, Z: 1075}, c.Center())
}

func TestGetCellOutOfRange(t *testing.T) {
	t.Parallel()

	g := mustDecode(t, encodeBox(t, Box{NX: 2, NY: 3, NZ: 4, DX: 1, DY: 1, DZ: 1}))
	for _, idx := range [][3]int{{-1, 0, 0}, {2, 0, 0}, {0, 3, 0}, {0, 0, 4}, {0, -1, 0}, {0, 0, -1}} {
		_, err := g.GetCell(idx[0], idx[1], idx[2])
		assert.ErrorIs(t, err, ErrCellOutOfRange, "index %v", idx)
	}
	_, err := g.GetCell(1, 2, 3)
	assert.NoError(t, err)

	_, _, err = g.Pillar(3, 0)
	assert.ErrorIs(t, err, ErrPillarOutOfRange)
	_, _, err = g.Pillar(2, 3)
	assert.NoError(t, err)
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	b := Box{NX: 6, NY: 5, NZ: 4, DX: 10, DY: 10, DZ: 1, Top: 100, Tilt: 0.25}
	g := mustDecode(t, encodeBox(t, b))
	want, err := g.GetCell(3, 2, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c, err := g.GetCell(3, 2, 1)
				if err != nil {
					errs <- err
					return
				}
				if c != want {
					errs <- assert.AnError
					return
				}
				_ = g.CalcGridLimits()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent read: %v", err)
	}
}
