package egrid

import (
	"errors"
	"fmt"
	"io"

	"github.com/samcharles93/eclgrid/internal/eclbin"
)

// Box describes a regular corner-point grid: NX*NY*NZ cells of DX*DY*DZ
// whose top face sits at depth Top. Tilt shifts every pillar's bottom end
// by Tilt metres in X per metre of depth; zero gives vertical pillars.
type Box struct {
	NX, NY, NZ       int
	DX, DY, DZ       float64
	OriginX, OriginY float64
	Top              float64
	Tilt             float64
	MapUnits         string
	DualPorosity     int32
}

// headLen is the length real simulators use for FILEHEAD and GRIDHEAD.
const headLen = 100

const cornerPointGrid = 1

func (b Box) validate() error {
	if b.NX <= 0 || b.NY <= 0 || b.NZ <= 0 {
		return fmt.Errorf("dimensions %dx%dx%d must be positive", b.NX, b.NY, b.NZ)
	}
	if b.DX <= 0 || b.DY <= 0 || b.DZ <= 0 {
		return errors.New("cell sizes must be positive")
	}
	return nil
}

// Coord returns the COORD field for the box.
func (b Box) Coord() []float32 {
	height := float64(b.NZ) * b.DZ
	out := make([]float32, 0, coordPerPillar*(b.NX+1)*(b.NY+1))
	for r := range b.NY + 1 {
		for c := range b.NX + 1 {
			x := b.OriginX + float64(c)*b.DX
			y := b.OriginY + float64(r)*b.DY
			out = append(out,
				float32(x), float32(y), float32(b.Top),
				float32(x+b.Tilt*height), float32(y), float32(b.Top+height),
			)
		}
	}
	return out
}

// ZCorn returns the ZCORN field for the box, layer by layer: top face then
// bottom face, each row north then south, each cell west then east.
func (b Box) ZCorn() []float32 {
	out := make([]float32, 0, zcornPerCell*b.NX*b.NY*b.NZ)
	for k := range b.NZ {
		for face := range 2 {
			z := float32(b.Top + float64(k+face)*b.DZ)
			for range b.NY * 2 * b.NX * 2 {
				out = append(out, z)
			}
		}
	}
	return out
}

// WriteBox writes b as a complete EGRID stream.
func WriteBox(w io.Writer, b Box) error {
	if err := b.validate(); err != nil {
		return err
	}
	ew := eclbin.NewWriter(w)

	fileHead := make([]int32, headLen)
	fileHead[0] = 3
	fileHead[fileHeadDualPorosity] = b.DualPorosity
	if err := ew.WriteInts(kwFileHead, fileHead); err != nil {
		return err
	}

	units := b.MapUnits
	if units == "" {
		units = "METRES"
	}
	if err := ew.WriteChars(kwMapUnits, []string{units}); err != nil {
		return err
	}

	ox, oy := float32(b.OriginX), float32(b.OriginY)
	if err := ew.WriteFloats(kwMapAxes, []float32{ox, oy + 1, ox, oy, ox + 1, oy}); err != nil {
		return err
	}

	gridHead := make([]int32, headLen)
	gridHead[0] = cornerPointGrid
	gridHead[gridHeadNX] = int32(b.NX)
	gridHead[gridHeadNY] = int32(b.NY)
	gridHead[gridHeadNZ] = int32(b.NZ)
	if err := ew.WriteInts(kwGridHead, gridHead); err != nil {
		return err
	}
	if err := ew.WriteFloats(kwCoord, b.Coord()); err != nil {
		return err
	}
	if err := ew.WriteFloats(kwZCorn, b.ZCorn()); err != nil {
		return err
	}
	if err := ew.WriteMessage(kwEndGrid); err != nil {
		return err
	}
	return ew.Flush()
}
