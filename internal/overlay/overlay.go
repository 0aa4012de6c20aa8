package overlay

import (
	"errors"
	"fmt"
	"math"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

// WeightTolerance bounds how far a weight sum may drift from 1.
const WeightTolerance = 1e-6

var (
	ErrInvalidWeights = errors.New("overlay: weights must be non-negative and sum to 1")
	ErrNoLayers       = errors.New("overlay: no layers to compose")
)

// Layer pairs a risk-class grid with its share of the composite.
type Layer struct {
	Name   string
	Grid   *grid.Grid
	Weight float64
}

// Compose blends risk-class layers into one continuous surface on the 1..5
// scale. A cell invalid in any layer is nodata in the composite; a partial
// sum would understate risk there. Weights must already sum to 1, the
// composer never normalizes on the caller's behalf.
func Compose(layers []Layer) (*grid.Grid, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	sum := 0.0
	for _, l := range layers {
		if l.Weight < 0 || math.IsNaN(l.Weight) {
			return nil, fmt.Errorf("%w: layer %q weight %g", ErrInvalidWeights, l.Name, l.Weight)
		}
		sum += l.Weight
	}
	if math.Abs(sum-1) > WeightTolerance {
		return nil, fmt.Errorf("%w: sum %g", ErrInvalidWeights, sum)
	}

	base := layers[0].Grid
	for _, l := range layers[1:] {
		if err := base.SameShape(l.Grid); err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
	}

	w, h := base.Width(), base.Height()
	nodata := base.NoData()
	layerVals := make([][]float64, len(layers))
	for i, l := range layers {
		layerVals[i] = l.Grid.Values()
	}
	out := make([]float64, w*h)

	err := grid.ApplyRows(h, func(y int) error {
		for x := 0; x < w; x++ {
			i := y*w + x
			acc := 0.0
			valid := true
			for li, l := range layers {
				v := layerVals[li][i]
				if !l.Grid.ValidValue(v) {
					valid = false
					break
				}
				acc += l.Weight * v
			}
			if valid {
				out[i] = acc
			} else {
				out[i] = nodata
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grid.New(w, h, base.CellSize(), base.Origin(), nodata, out)
}
