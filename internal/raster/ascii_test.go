package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.asc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestASCII_RoundTrip(t *testing.T) {
	vals := []float64{
		300, 310, 320,
		330, grid.DefaultNoData, 350,
		360, 370, 380,
	}
	src, err := grid.New(3, 3, 10, grid.Origin{X: 100, Y: 500}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dem.asc")
	require.NoError(t, WriteASCII(path, src))

	got, err := ReadASCII(path)
	require.NoError(t, err)

	assert.Equal(t, 3, got.Width())
	assert.Equal(t, 3, got.Height())
	assert.Equal(t, 10.0, got.CellSize())
	assert.Equal(t, grid.Origin{X: 100, Y: 500}, got.Origin())
	assert.Equal(t, grid.DefaultNoData, got.NoData())
	assert.Equal(t, vals, got.Values())
	assert.False(t, got.Valid(1, 1))
}

func TestReadASCII_CornerFixture(t *testing.T) {
	path := writeFixture(t, `ncols 2
nrows 2
xllcorner 0
yllcorner 0
cellsize 5
NODATA_value -9999
1 2
-9999 4
`)
	g, err := ReadASCII(path)
	require.NoError(t, err)

	assert.Equal(t, grid.Origin{X: 0, Y: 10}, g.Origin(), "origin lifted to the top-left corner")
	v, err := g.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.False(t, g.Valid(0, 1))
}

func TestReadASCII_CenterVariant(t *testing.T) {
	path := writeFixture(t, `ncols 2
nrows 1
xllcenter 12.5
yllcenter 2.5
cellsize 5
7 8
`)
	g, err := ReadASCII(path)
	require.NoError(t, err)

	assert.Equal(t, grid.Origin{X: 10, Y: 5}, g.Origin())
	assert.Equal(t, grid.DefaultNoData, g.NoData(), "default sentinel when header is absent")
}

func TestWriteASCII_NormalizesNaN(t *testing.T) {
	vals := []float64{1, math.NaN(), math.Inf(1), 4}
	src, err := grid.New(2, 2, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nan.asc")
	require.NoError(t, WriteASCII(path, src))

	got, err := ReadASCII(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, grid.DefaultNoData, grid.DefaultNoData, 4}, got.Values())
}

func TestReadASCII_MissingHeader(t *testing.T) {
	path := writeFixture(t, `ncols 2
xllcorner 0
yllcorner 0
cellsize 5
1 2
`)
	_, err := ReadASCII(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nrows")
}

func TestReadASCII_SampleCountMismatch(t *testing.T) {
	path := writeFixture(t, `ncols 3
nrows 2
xllcorner 0
yllcorner 0
cellsize 5
1 2 3 4
`)
	_, err := ReadASCII(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 samples")
}

func TestReadASCII_GarbageSample(t *testing.T) {
	path := writeFixture(t, `ncols 1
nrows 1
xllcorner 0
yllcorner 0
cellsize 5
pancake
`)
	_, err := ReadASCII(path)
	assert.Error(t, err)
}

func TestRead_DispatchesOnExtension(t *testing.T) {
	path := writeFixture(t, `ncols 2
nrows 1
xllcorner 0
yllcorner 0
cellsize 5
7 8
`)
	g, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, []float64{7, 8}, g.Values())
}
