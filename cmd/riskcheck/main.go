package main

import (
	"fmt"
	"log"

	"github.com/emberwatch/emberwatch-risk-poc/internal/demgen"
	"github.com/emberwatch/emberwatch-risk-poc/internal/pipeline"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

func main() {
	// Hardcoded smoke parameters - modify these to test different scenarios
	width, height := 120, 120
	seed := int64(42)

	fmt.Println("=== EmberWatch Risk Smoke Check ===")
	fmt.Printf("Grid: %dx%d cells, seed %d\n", width, height, seed)
	fmt.Println()

	params := demgen.DefaultParams(width, height)
	params.Seed = seed
	elevation, err := demgen.Generate(params)
	if err != nil {
		log.Fatalf("Failed to generate terrain: %v", err)
	}
	fmt.Println("✓ Synthetic terrain generated")

	cfg := pipeline.DefaultConfig()
	cfg.Progress = func(stage string) {
		fmt.Printf("  %s...\n", stage)
	}

	result, err := pipeline.Run(elevation, nil, cfg)
	if err != nil {
		log.Fatalf("Failed to run risk model: %v", err)
	}
	fmt.Println("✓ Risk model complete")
	fmt.Println()

	dist := stats.ClassDistribution(result.Composite)
	sum, err := stats.Summarize(result.Composite)
	if err != nil {
		log.Fatalf("Failed to summarize composite: %v", err)
	}

	for class := reclass.ClassVeryLow; class <= reclass.ClassVeryHigh; class++ {
		fmt.Printf("%-9s %6d cells (%.1f%%)\n", reclass.ClassLabel(class), dist.Counts[class], dist.Share(class))
	}
	fmt.Printf("\nmean %.2f | median %.2f | p90 %.2f | valid %d/%d\n", sum.Mean, sum.Median, sum.P90, sum.Valid, sum.Total)
}
