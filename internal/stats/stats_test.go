package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

func TestClassDistribution_RoundsAndSkipsInvalid(t *testing.T) {
	vals := []float64{
		1, 2, 2,
		3, grid.DefaultNoData, math.NaN(),
		4.4, 4.6, 5,
	}
	g, err := grid.New(3, 3, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	d := ClassDistribution(g)

	assert.Equal(t, 9, d.Total)
	assert.Equal(t, 7, d.Valid)
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 1, 4: 1, 5: 2}, d.Counts)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, d.Classes())
	assert.InDelta(t, 100.0*2/7, d.Share(2), 1e-9)
	assert.Zero(t, d.Share(0))
}

func TestClassDistribution_ClampsOutOfRange(t *testing.T) {
	g, err := grid.New(2, 1, 10, grid.Origin{}, grid.DefaultNoData, []float64{0.2, 5.8})
	require.NoError(t, err)

	d := ClassDistribution(g)

	assert.Equal(t, map[int]int{1: 1, 5: 1}, d.Counts)
}

func TestSummarize_KnownValues(t *testing.T) {
	g, err := grid.New(5, 1, 10, grid.Origin{}, grid.DefaultNoData, []float64{5, 3, 1, 4, 2})
	require.NoError(t, err)

	s, err := Summarize(g)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-12)
	assert.InDelta(t, 1.0, s.Min, 1e-12)
	assert.InDelta(t, 5.0, s.Max, 1e-12)
	assert.InDelta(t, 3.0, s.Median, 1e-12)
	assert.InDelta(t, 5.0, s.P90, 1e-12)
	assert.Equal(t, 5, s.Valid)
	assert.Equal(t, 5, s.Total)
}

func TestSummarize_IgnoresInvalidCells(t *testing.T) {
	vals := []float64{2, grid.DefaultNoData, math.Inf(1), 4}
	g, err := grid.New(2, 2, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	s, err := Summarize(g)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, s.Mean, 1e-12)
	assert.Equal(t, 2, s.Valid)
	assert.Equal(t, 4, s.Total)
}

func TestSummarize_NoValidCells(t *testing.T) {
	g, err := grid.NewConstant(2, 2, 10, grid.Origin{}, grid.DefaultNoData, grid.DefaultNoData)
	require.NoError(t, err)

	_, err = Summarize(g)
	assert.ErrorIs(t, err, ErrNoValidCells)
}

func TestSummarize_SingleCell(t *testing.T) {
	g, err := grid.NewConstant(1, 1, 10, grid.Origin{}, grid.DefaultNoData, 3.5)
	require.NoError(t, err)

	s, err := Summarize(g)
	require.NoError(t, err)

	assert.InDelta(t, 3.5, s.Mean, 1e-12)
	assert.Zero(t, s.StdDev)
}
