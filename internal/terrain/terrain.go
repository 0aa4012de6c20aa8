package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

// FlatAspect marks cells too flat to carry a compass bearing. It is distinct
// from nodata: the elevation there is valid, the bearing undefined.
const FlatAspect = -1.0

// flatSlopeDeg is the slope below which a cell counts as flat.
const flatSlopeDeg = 1.0

var ErrInsufficientExtent = errors.New("terrain: grid smaller than the 3x3 kernel")

// Derive computes slope and aspect grids from an elevation grid using Horn's
// 8-neighbor method. Slope is in degrees from horizontal, clamped to [0, 90].
// Aspect is in compass degrees clockwise from north in [0, 360), or
// FlatAspect where slope is under 1 degree. Border cells, and cells whose
// 3x3 neighborhood contains any invalid sample, are nodata in both outputs.
func Derive(elev *grid.Grid) (*grid.Grid, *grid.Grid, error) {
	w, h := elev.Width(), elev.Height()
	if w < 3 || h < 3 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrInsufficientExtent, w, h)
	}

	vals := elev.Values()
	nodata := elev.NoData()
	denom := 8 * elev.CellSize()

	slopeVals := make([]float64, len(vals))
	aspectVals := make([]float64, len(vals))
	for i := range slopeVals {
		slopeVals[i] = nodata
		aspectVals[i] = nodata
	}

	err := grid.ApplyRows(h, func(y int) error {
		if y == 0 || y == h-1 {
			return nil
		}
		for x := 1; x < w-1; x++ {
			i := y*w + x
			zNW, zN, zNE := vals[i-w-1], vals[i-w], vals[i-w+1]
			zW, zE := vals[i-1], vals[i+1]
			zSW, zS, zSE := vals[i+w-1], vals[i+w], vals[i+w+1]

			if !validAll(elev, zNW, zN, zNE, zW, vals[i], zE, zSW, zS, zSE) {
				continue
			}

			dzdx := ((zNE + 2*zE + zSE) - (zNW + 2*zW + zSW)) / denom
			dzdy := ((zNW + 2*zN + zNE) - (zSW + 2*zS + zSE)) / denom

			slope := toDegrees(math.Atan(math.Hypot(dzdx, dzdy)))
			if slope < 0 {
				slope = 0
			} else if slope > 90 {
				slope = 90
			}
			slopeVals[i] = slope

			if slope < flatSlopeDeg {
				aspectVals[i] = FlatAspect
				continue
			}
			bearing := 90 - toDegrees(math.Atan2(dzdy, -dzdx))
			if bearing < 0 {
				bearing += 360
			}
			aspectVals[i] = bearing
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	slopeGrid, err := grid.New(w, h, elev.CellSize(), elev.Origin(), nodata, slopeVals)
	if err != nil {
		return nil, nil, err
	}
	aspectGrid, err := grid.New(w, h, elev.CellSize(), elev.Origin(), nodata, aspectVals)
	if err != nil {
		return nil, nil, err
	}
	return slopeGrid, aspectGrid, nil
}

func validAll(g *grid.Grid, vs ...float64) bool {
	for _, v := range vs {
		if !g.ValidValue(v) {
			return false
		}
	}
	return true
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
