package demgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/emberwatch-risk-poc/internal/terrain"
)

func TestGenerate_NormalizedElevationRange(t *testing.T) {
	dem, err := Generate(DefaultParams(40, 30))
	require.NoError(t, err)

	assert.Equal(t, 40, dem.Width())
	assert.Equal(t, 30, dem.Height())
	assert.Equal(t, 10.0, dem.CellSize())

	lo, hi := 1e18, -1e18
	for _, v := range dem.Values() {
		require.True(t, dem.ValidValue(v))
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	assert.InDelta(t, 300, lo, 1e-9, "floor pinned to base elevation")
	assert.InDelta(t, 400, hi, 1e-9, "ceiling pinned to base plus variation")
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a, err := Generate(DefaultParams(25, 25))
	require.NoError(t, err)
	b, err := Generate(DefaultParams(25, 25))
	require.NoError(t, err)

	assert.Equal(t, a.Values(), b.Values())

	p := DefaultParams(25, 25)
	p.Seed = 7
	c, err := Generate(p)
	require.NoError(t, err)
	assert.NotEqual(t, a.Values(), c.Values())
}

func TestGenerate_TooSmall(t *testing.T) {
	_, err := Generate(DefaultParams(1, 50))
	assert.Error(t, err)
}

func TestGenerate_FeedsTheDeriver(t *testing.T) {
	dem, err := Generate(DefaultParams(20, 20))
	require.NoError(t, err)

	slope, aspect, err := terrain.Derive(dem)
	require.NoError(t, err)

	// synthetic relief is far from flat, interior cells must carry bearings
	valid := 0
	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			if slope.Valid(x, y) && aspect.Valid(x, y) {
				valid++
			}
		}
	}
	assert.Equal(t, 18*18, valid)
}
