package reclass

import (
	"errors"
	"fmt"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/terrain"
)

// Ordinal risk classes shared by every layer of the model.
const (
	ClassVeryLow  = 1
	ClassLow      = 2
	ClassModerate = 3
	ClassHigh     = 4
	ClassVeryHigh = 5
)

var (
	ErrBadTable       = errors.New("reclass: malformed breakpoint table")
	ErrUnclassifiable = errors.New("reclass: value not covered by any range")
)

// ClassLabel names a risk class for legends and reports.
func ClassLabel(class int) string {
	switch class {
	case ClassVeryLow:
		return "Very Low"
	case ClassLow:
		return "Low"
	case ClassModerate:
		return "Moderate"
	case ClassHigh:
		return "High"
	case ClassVeryHigh:
		return "Very High"
	default:
		return fmt.Sprintf("Class %d", class)
	}
}

// Range maps the half-open interval [Lower, Upper) to a risk class.
type Range struct {
	Lower float64
	Upper float64
	Class int
}

// Table is an ordered set of non-overlapping ranges covering the value
// domain of one input layer. FlatClass, when positive, classifies the
// aspect flat sentinel instead of running it through the numeric ranges.
// CloseLast widens the final range to include its upper bound, for domains
// clamped to a hard ceiling such as slope at 90 degrees.
type Table struct {
	Name      string
	Ranges    []Range
	FlatClass int
	CloseLast bool
}

// Validate checks ordering, coverage and class bounds. Gaps between ranges
// are legal here and surface later as ErrUnclassifiable for values that
// land in one.
func (t Table) Validate() error {
	if len(t.Ranges) == 0 {
		return fmt.Errorf("%w: table %q has no ranges", ErrBadTable, t.Name)
	}
	prev := t.Ranges[0]
	if err := checkRange(t.Name, prev); err != nil {
		return err
	}
	for _, r := range t.Ranges[1:] {
		if err := checkRange(t.Name, r); err != nil {
			return err
		}
		if r.Lower < prev.Upper {
			return fmt.Errorf("%w: table %q ranges overlap at %g", ErrBadTable, t.Name, r.Lower)
		}
		prev = r
	}
	if t.FlatClass != 0 && (t.FlatClass < ClassVeryLow || t.FlatClass > ClassVeryHigh) {
		return fmt.Errorf("%w: table %q flat class %d outside 1..5", ErrBadTable, t.Name, t.FlatClass)
	}
	return nil
}

func checkRange(name string, r Range) error {
	if r.Lower >= r.Upper {
		return fmt.Errorf("%w: table %q range [%g,%g) is empty", ErrBadTable, name, r.Lower, r.Upper)
	}
	if r.Class < ClassVeryLow || r.Class > ClassVeryHigh {
		return fmt.Errorf("%w: table %q class %d outside 1..5", ErrBadTable, name, r.Class)
	}
	return nil
}

// ClassOf resolves a single value against the table.
func (t Table) ClassOf(v float64) (int, error) {
	if t.FlatClass > 0 && v == terrain.FlatAspect {
		return t.FlatClass, nil
	}
	for i, r := range t.Ranges {
		if v < r.Lower {
			break
		}
		if v < r.Upper {
			return r.Class, nil
		}
		if t.CloseLast && i == len(t.Ranges)-1 && v == r.Upper {
			return r.Class, nil
		}
	}
	return 0, fmt.Errorf("%w: %g in table %q", ErrUnclassifiable, v, t.Name)
}

// Classify maps every valid cell of g through the table, producing an
// integer-valued risk grid on the same shape. Invalid cells carry over
// unchanged so nodata survives the stage.
func Classify(g *grid.Grid, table Table) (*grid.Grid, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	w, h := g.Width(), g.Height()
	vals := g.Values()
	out := make([]float64, len(vals))

	err := grid.ApplyRows(h, func(y int) error {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := vals[i]
			if !g.ValidValue(v) {
				out[i] = v
				continue
			}
			class, err := table.ClassOf(v)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", x, y, err)
			}
			out[i] = float64(class)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grid.New(w, h, g.CellSize(), g.Origin(), g.NoData(), out)
}
