package egrid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcGridLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		box  Box
		want Limits
	}{
		{
			name: "axis aligned",
			box:  Box{NX: 4, NY: 3, NZ: 2, DX: 10, DY: 20, DZ: 5, OriginX: 100, OriginY: 200, Top: 1500},
			want: Limits{XMin: 100, XMax: 140, YMin: 200, YMax: 260, ZMin: 1500, ZMax: 1510},
		},
		{
			name: "single cell",
			box:  Box{NX: 1, NY: 1, NZ: 1, DX: 1, DY: 1, DZ: 1},
			want: Limits{XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1},
		},
		{
			// X comes from the pillar tops only.
			name: "tilted",
			box:  Box{NX: 2, NY: 2, NZ: 4, DX: 50, DY: 50, DZ: 25, Top: 2000, Tilt: 1},
			want: Limits{XMin: 0, XMax: 100, YMin: 0, YMax: 100, ZMin: 2000, ZMax: 2100},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g := mustDecode(t, encodeBox(t, tc.box))
			if diff := cmp.Diff(tc.want, g.CalcGridLimits()); diff != "" {
				t.Fatalf("limits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLimitsIgnoreInteriorPillars(t *testing.T) {
	t.Parallel()

	const nx, ny = 2, 2
	coord := verticalCoord(nx, ny, 10, 10, 0, 50)
	// Move the centre pillar (1,1) far outside the corner pillars.
	centre := (1 + (nx+1)*1) * coordPerPillar
	copy(coord[centre:centre+coordPerPillar], []float32{1e6, -1e6, -500, 1e6, -1e6, 9000})

	g := mustDecode(t, encodeGrid(t, nx, ny, 1, coord, make([]float32, 8*nx*ny)))
	got := g.CalcGridLimits()
	assert.Equal(t, Limits{XMin: 0, XMax: 20, YMin: 0, YMax: 20, ZMin: 0, ZMax: 50}, got)

	// Cached value is stable.
	assert.Equal(t, got, g.CalcGridLimits())
}

func TestSegmentedDepthsAcrossBlocks(t *testing.T) {
	t.Parallel()

	b := Box{NX: 3, NY: 3, NZ: 5, DX: 10, DY: 10, DZ: 2, Top: 1000}
	whole := mustDecode(t, encodeBox(t, b))
	// 2^4 values per block splits ZCORN (360 values) over many blocks.
	split := mustDecode(t, encodeBox(t, b), WithBlockShift(4))

	for k := range b.NZ {
		for j := range b.NY {
			for i := range b.NX {
				want, err := whole.GetCell(i, j, k)
				require.NoError(t, err)
				got, err := split.GetCell(i, j, k)
				require.NoError(t, err)
				if want != got {
					t.Fatalf("cell (%d,%d,%d): %+v != %+v", i, j, k, got, want)
				}
				assert.Equal(t, 1000+float64(k)*2, got.TNW.Z)
				assert.Equal(t, 1000+float64(k+1)*2, got.BSE.Z)
			}
		}
	}
}
