package reclass

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/terrain"
)

func TestSlopeTable_BoundariesResolveUpward(t *testing.T) {
	table := SlopeTable()
	require.NoError(t, table.Validate())

	tests := []struct {
		value float64
		class int
	}{
		{0, ClassVeryLow},
		{4.999, ClassVeryLow},
		{5, ClassLow},
		{15, ClassModerate},
		{25, ClassHigh},
		{35, ClassVeryHigh},
		{89.999, ClassVeryHigh},
		{90, ClassVeryHigh}, // clamp ceiling is part of the top range
	}
	for _, tt := range tests {
		class, err := table.ClassOf(tt.value)
		require.NoError(t, err, "value %g", tt.value)
		assert.Equal(t, tt.class, class, "value %g", tt.value)
	}
}

func TestAspectTable_CompassSectors(t *testing.T) {
	table := AspectTable()
	require.NoError(t, table.Validate())

	tests := []struct {
		value float64
		class int
	}{
		{terrain.FlatAspect, ClassLow},
		{0, ClassLow},
		{44.9, ClassLow},
		{45, ClassModerate},
		{134.9, ClassModerate},
		{135, ClassVeryHigh},
		{180, ClassVeryHigh},
		{224.9, ClassVeryHigh},
		{225, ClassHigh},
		{314.9, ClassHigh},
		{315, ClassLow},
		{359.9, ClassLow},
	}
	for _, tt := range tests {
		class, err := table.ClassOf(tt.value)
		require.NoError(t, err, "value %g", tt.value)
		assert.Equal(t, tt.class, class, "value %g", tt.value)
	}
}

func TestClassOf_GapFails(t *testing.T) {
	table := Table{
		Name: "gappy",
		Ranges: []Range{
			{Lower: 0, Upper: 5, Class: 1},
			{Lower: 10, Upper: 20, Class: 3},
		},
	}
	require.NoError(t, table.Validate())

	_, err := table.ClassOf(7)
	assert.ErrorIs(t, err, ErrUnclassifiable)

	_, err = table.ClassOf(-2)
	assert.ErrorIs(t, err, ErrUnclassifiable)

	_, err = table.ClassOf(20)
	assert.ErrorIs(t, err, ErrUnclassifiable, "open upper bound without CloseLast")
}

func TestValidate_RejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"no ranges", Table{Name: "empty"}},
		{"empty range", Table{Name: "t", Ranges: []Range{{Lower: 5, Upper: 5, Class: 1}}}},
		{"inverted range", Table{Name: "t", Ranges: []Range{{Lower: 9, Upper: 3, Class: 1}}}},
		{"overlap", Table{Name: "t", Ranges: []Range{
			{Lower: 0, Upper: 10, Class: 1},
			{Lower: 5, Upper: 20, Class: 2},
		}}},
		{"class too big", Table{Name: "t", Ranges: []Range{{Lower: 0, Upper: 1, Class: 6}}}},
		{"class too small", Table{Name: "t", Ranges: []Range{{Lower: 0, Upper: 1, Class: 0}}}},
		{"bad flat class", Table{Name: "t", FlatClass: 9, Ranges: []Range{{Lower: 0, Upper: 1, Class: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.table.Validate(), ErrBadTable)
		})
	}
}

func TestClassify_PreservesInvalidCells(t *testing.T) {
	vals := []float64{3, grid.DefaultNoData, 17, math.NaN(), 40, 88}
	g, err := grid.New(3, 2, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	classed, err := Classify(g, SlopeTable())
	require.NoError(t, err)

	expect := []float64{1, grid.DefaultNoData, 3, math.NaN(), 5, 5}
	got := classed.Values()
	for i := range expect {
		if math.IsNaN(expect[i]) {
			assert.True(t, math.IsNaN(got[i]), "cell %d", i)
			continue
		}
		assert.Equal(t, expect[i], got[i], "cell %d", i)
	}
}

func TestClassify_UnclassifiableReportsCell(t *testing.T) {
	vals := []float64{1, 2, 3, 999}
	g, err := grid.New(2, 2, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	table := Table{Name: "narrow", Ranges: []Range{{Lower: 0, Upper: 10, Class: 1}}}
	_, err = Classify(g, table)
	require.ErrorIs(t, err, ErrUnclassifiable)
	assert.Contains(t, err.Error(), "(1,1)")
}

func TestClassify_Deterministic(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i%90) + 0.5
	}
	g, err := grid.New(10, 10, 10, grid.Origin{}, grid.DefaultNoData, vals)
	require.NoError(t, err)

	first, err := Classify(g, SlopeTable())
	require.NoError(t, err)
	second, err := Classify(g, SlopeTable())
	require.NoError(t, err)

	assert.Equal(t, first.Values(), second.Values())
}

func TestRangesCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slope.csv")
	require.NoError(t, SaveRangesCSV(path, SlopeTable()))

	ranges, err := LoadRangesCSV(path)
	require.NoError(t, err)
	assert.Equal(t, SlopeTable().Ranges, ranges)

	table := Table{Name: "slope", Ranges: ranges, CloseLast: true}
	require.NoError(t, table.Validate())
	class, err := table.ClassOf(30)
	require.NoError(t, err)
	assert.Equal(t, ClassHigh, class)
}
