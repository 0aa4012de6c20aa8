package grid

import (
	"errors"
	"fmt"
	"math"
)

// DefaultNoData is the sentinel the project rasters use for missing cells.
const DefaultNoData = -9999.0

var (
	ErrBadDimensions = errors.New("grid: dimensions and cell size must be positive")
	ErrValueCount    = errors.New("grid: value count does not match width*height")
	ErrOutOfBounds   = errors.New("grid: cell index out of bounds")
	ErrShapeMismatch = errors.New("grid: grids disagree on shape or cell size")
)

// Origin is the map coordinate of a grid's top-left corner. It is carried
// through for georeferencing and never used in computation.
type Origin struct {
	X float64
	Y float64
}

// Grid is an immutable row-major raster of float64 samples. Every pipeline
// stage returns a newly allocated Grid; nothing mutates one in place.
type Grid struct {
	width    int
	height   int
	cellSize float64
	origin   Origin
	nodata   float64
	values   []float64
}

// New copies values into a fresh Grid. values must hold width*height
// samples in row-major order.
func New(width, height int, cellSize float64, origin Origin, nodata float64, values []float64) (*Grid, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cell %g", ErrBadDimensions, width, height, cellSize)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrValueCount, len(values), width, height)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		origin:   origin,
		nodata:   nodata,
		values:   vals,
	}, nil
}

// NewConstant builds a Grid with every cell holding the same value.
func NewConstant(width, height int, cellSize float64, origin Origin, nodata, value float64) (*Grid, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cell %g", ErrBadDimensions, width, height, cellSize)
	}
	vals := make([]float64, width*height)
	for i := range vals {
		vals[i] = value
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		origin:   origin,
		nodata:   nodata,
		values:   vals,
	}, nil
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) Origin() Origin    { return g.origin }
func (g *Grid) NoData() float64   { return g.nodata }

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) (float64, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.values[y*g.width+x], nil
}

// Valid reports whether the cell at column x, row y holds a usable sample.
// Out-of-range coordinates are never valid.
func (g *Grid) Valid(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.ValidValue(g.values[y*g.width+x])
}

// ValidValue reports whether v is a usable sample: not the nodata sentinel,
// not NaN and not infinite.
func (g *Grid) ValidValue(v float64) bool {
	return v != g.nodata && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Values returns a copy of the row-major samples.
func (g *Grid) Values() []float64 {
	vals := make([]float64, len(g.values))
	copy(vals, g.values)
	return vals
}

// Map returns a new Grid with fn applied to every valid cell. Invalid cells
// keep their original value so nodata is never silently replaced.
func (g *Grid) Map(fn func(v float64) float64) *Grid {
	vals := make([]float64, len(g.values))
	for i, v := range g.values {
		if g.ValidValue(v) {
			vals[i] = fn(v)
		} else {
			vals[i] = v
		}
	}
	return &Grid{
		width:    g.width,
		height:   g.height,
		cellSize: g.cellSize,
		origin:   g.origin,
		nodata:   g.nodata,
		values:   vals,
	}
}

// SameShape errors unless g and other agree on width, height and cell size.
func (g *Grid) SameShape(other *Grid) error {
	if g.width != other.width || g.height != other.height || g.cellSize != other.cellSize {
		return fmt.Errorf("%w: %dx%d cell %g vs %dx%d cell %g",
			ErrShapeMismatch, g.width, g.height, g.cellSize, other.width, other.height, other.cellSize)
	}
	return nil
}
