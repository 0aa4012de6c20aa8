package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/utils"
)

var ErrNoValidCells = errors.New("stats: grid has no valid cells")

// Distribution reports how many cells of a risk surface fall into each class.
type Distribution struct {
	Counts map[int]int
	Valid  int
	Total  int
}

// ClassDistribution buckets every valid cell into classes 1 through 5.
// Continuous composite values round to the nearest class, matching how the
// blended score is presented to readers.
func ClassDistribution(g *grid.Grid) Distribution {
	d := Distribution{
		Counts: make(map[int]int),
		Total:  g.Width() * g.Height(),
	}
	for _, v := range g.Values() {
		if !g.ValidValue(v) {
			continue
		}
		d.Valid++
		class := int(math.Round(v))
		if class < reclass.ClassVeryLow {
			class = reclass.ClassVeryLow
		}
		if class > reclass.ClassVeryHigh {
			class = reclass.ClassVeryHigh
		}
		d.Counts[class]++
	}
	return d
}

// Share returns the percentage of valid cells holding the given class.
func (d Distribution) Share(class int) float64 {
	if d.Valid == 0 {
		return 0
	}
	return float64(d.Counts[class]) / float64(d.Valid) * 100
}

// Classes returns the classes present in the distribution, lowest risk first.
func (d Distribution) Classes() []int {
	return utils.SortedKeys(d.Counts)
}

// Summary describes the continuous composite surface over its valid cells.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P90    float64
	Valid  int
	Total  int
}

// Summarize computes moments and quantiles over the valid cells of g.
func Summarize(g *grid.Grid) (Summary, error) {
	all := g.Values()
	vals := make([]float64, 0, len(all))
	for _, v := range all {
		if g.ValidValue(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return Summary{}, ErrNoValidCells
	}
	sort.Float64s(vals)

	s := Summary{
		Mean:   stat.Mean(vals, nil),
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, vals, nil),
		Valid:  len(vals),
		Total:  len(all),
	}
	if len(vals) > 1 {
		s.StdDev = stat.StdDev(vals, nil)
	}
	return s, nil
}
