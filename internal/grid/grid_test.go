package grid

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, width, height int, values []float64) *Grid {
	t.Helper()
	g, err := New(width, height, 10, Origin{}, DefaultNoData, values)
	require.NoError(t, err)
	return g
}

func TestNew_CopiesValues(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	g := mustGrid(t, 2, 2, values)

	values[0] = 99
	v, err := g.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestNew_RejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		cellSize float64
	}{
		{"zero width", 0, 2, 10},
		{"negative height", 2, -1, 10},
		{"zero cell size", 2, 2, 0},
		{"negative cell size", 2, 2, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, tt.cellSize, Origin{}, DefaultNoData, nil)
			assert.ErrorIs(t, err, ErrBadDimensions)
		})
	}
}

func TestNew_RejectsWrongValueCount(t *testing.T) {
	_, err := New(3, 3, 10, Origin{}, DefaultNoData, make([]float64, 8))
	assert.ErrorIs(t, err, ErrValueCount)
}

func TestNewConstant_FillsEveryCell(t *testing.T) {
	g, err := NewConstant(4, 3, 10, Origin{X: 100, Y: 200}, DefaultNoData, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, Origin{X: 100, Y: 200}, g.Origin())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v, err := g.At(x, y)
			require.NoError(t, err)
			assert.Equal(t, 3.0, v)
		}
	}
}

func TestAt_OutOfBounds(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := g.At(c[0], c[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, fmt.Sprintf("coords %v", c))
	}
}

func TestAt_RowMajorOrder(t *testing.T) {
	g := mustGrid(t, 3, 2, []float64{1, 2, 3, 4, 5, 6})

	v, err := g.At(2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = g.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestValid_InvalidSamples(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, DefaultNoData, math.NaN(), math.Inf(1)})

	assert.True(t, g.Valid(0, 0))
	assert.False(t, g.Valid(1, 0), "nodata sentinel")
	assert.False(t, g.Valid(0, 1), "NaN")
	assert.False(t, g.Valid(1, 1), "+Inf")
	assert.False(t, g.Valid(5, 5), "out of bounds")
}

func TestMap_SkipsInvalidCells(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, DefaultNoData, 3, math.NaN()})

	doubled := g.Map(func(v float64) float64 { return v * 2 })

	v, err := doubled.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = doubled.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultNoData, v, "nodata untouched")

	v, err = doubled.At(1, 1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v), "NaN untouched")

	// source is unchanged
	v, err = g.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestSameShape(t *testing.T) {
	base := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})

	same := mustGrid(t, 2, 2, []float64{5, 6, 7, 8})
	assert.NoError(t, base.SameShape(same))

	wider := mustGrid(t, 4, 1, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, base.SameShape(wider), ErrShapeMismatch)

	otherCell, err := New(2, 2, 30, Origin{}, DefaultNoData, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.ErrorIs(t, base.SameShape(otherCell), ErrShapeMismatch)
}

func TestValues_ReturnsCopy(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})

	vals := g.Values()
	vals[0] = 99

	v, err := g.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestApplyRows_VisitsEveryRowOnce(t *testing.T) {
	const height = 37
	counts := make([]int, height)

	err := ApplyRows(height, func(y int) error {
		counts[y]++
		return nil
	})
	require.NoError(t, err)

	for y, n := range counts {
		assert.Equal(t, 1, n, "row %d", y)
	}
}

func TestApplyRows_PropagatesFirstError(t *testing.T) {
	boom := fmt.Errorf("row exploded")

	err := ApplyRows(16, func(y int) error {
		if y == 7 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestApplyRows_ZeroRows(t *testing.T) {
	err := ApplyRows(0, func(y int) error { return fmt.Errorf("should not run") })
	assert.NoError(t, err)
}
