package pipeline

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/overlay"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/terrain"
)

var ErrNoElevation = errors.New("pipeline: elevation grid is required")

// Weights splits the composite between the three contributing layers.
// They must sum to 1; the composer enforces it rather than normalizing.
type Weights struct {
	Slope      float64
	Aspect     float64
	Vegetation float64
}

// DefaultWeights carries the standard model parameters: slope drives fire
// spread hardest, fuel load next, exposure last.
func DefaultWeights() Weights {
	return Weights{Slope: 0.45, Aspect: 0.25, Vegetation: 0.30}
}

// Config bundles the tables and weights for one run. Tables are taken as
// given; build one by hand, load it from CSV or start from DefaultConfig.
type Config struct {
	Weights         Weights
	SlopeTable      reclass.Table
	AspectTable     reclass.Table
	VegetationTable reclass.Table

	// Progress, when set, is called as each stage starts.
	Progress func(stage string)
}

// DefaultConfig returns a Config loaded with the preset tables and weights.
func DefaultConfig() Config {
	return Config{
		Weights:         DefaultWeights(),
		SlopeTable:      reclass.SlopeTable(),
		AspectTable:     reclass.AspectTable(),
		VegetationTable: reclass.VegetationTable(),
	}
}

// Result keeps every intermediate surface so callers can export or chart a
// single stage without re-running the model.
type Result struct {
	Slope          *grid.Grid
	Aspect         *grid.Grid
	SlopeRisk      *grid.Grid
	AspectRisk     *grid.Grid
	VegetationRisk *grid.Grid
	Composite      *grid.Grid
}

// Run executes derive, reclassify and compose over one elevation grid.
// vegetation may be nil: the run then substitutes a constant moderate-risk
// layer over the full extent, the single sanctioned fallback in the model.
func Run(elevation, vegetation *grid.Grid, cfg Config) (*Result, error) {
	if elevation == nil {
		return nil, ErrNoElevation
	}
	if vegetation != nil {
		if err := elevation.SameShape(vegetation); err != nil {
			return nil, fmt.Errorf("vegetation: %w", err)
		}
	}

	cfg.stage("deriving terrain")
	slope, aspect, err := terrain.Derive(elevation)
	if err != nil {
		return nil, fmt.Errorf("derive terrain: %w", err)
	}
	res := &Result{Slope: slope, Aspect: aspect}

	cfg.stage("reclassifying layers")
	var eg errgroup.Group
	eg.Go(func() error {
		var err error
		if res.SlopeRisk, err = reclass.Classify(slope, cfg.SlopeTable); err != nil {
			return fmt.Errorf("reclassify slope: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if res.AspectRisk, err = reclass.Classify(aspect, cfg.AspectTable); err != nil {
			return fmt.Errorf("reclassify aspect: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if vegetation == nil {
			res.VegetationRisk, err = grid.NewConstant(
				elevation.Width(), elevation.Height(), elevation.CellSize(),
				elevation.Origin(), elevation.NoData(), reclass.ClassModerate)
			if err != nil {
				return fmt.Errorf("vegetation fallback: %w", err)
			}
			return nil
		}
		if res.VegetationRisk, err = reclass.Classify(vegetation, cfg.VegetationTable); err != nil {
			return fmt.Errorf("reclassify vegetation: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cfg.stage("composing overlay")
	res.Composite, err = overlay.Compose([]overlay.Layer{
		{Name: "slope", Grid: res.SlopeRisk, Weight: cfg.Weights.Slope},
		{Name: "aspect", Grid: res.AspectRisk, Weight: cfg.Weights.Aspect},
		{Name: "vegetation", Grid: res.VegetationRisk, Weight: cfg.Weights.Vegetation},
	})
	if err != nil {
		return nil, fmt.Errorf("compose overlay: %w", err)
	}
	return res, nil
}

func (c Config) stage(name string) {
	if c.Progress != nil {
		c.Progress(name)
	}
}
