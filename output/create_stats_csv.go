package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

type riskStatsRow struct {
	Class    int     `csv:"class"`
	Label    string  `csv:"label"`
	Cells    int     `csv:"cells"`
	SharePct float64 `csv:"share_pct"`
}

// CreateStatsCSV writes the class distribution of a risk surface, one row per
// class including empty ones, so downstream sheets always see five rows.
func CreateStatsCSV(g *grid.Grid, outputPath string) error {
	if !strings.Contains(outputPath, ".csv") {
		outputPath += ".csv"
	}

	dist := stats.ClassDistribution(g)
	rows := make([]riskStatsRow, 0, reclass.ClassVeryHigh)
	for class := reclass.ClassVeryLow; class <= reclass.ClassVeryHigh; class++ {
		rows = append(rows, riskStatsRow{
			Class:    class,
			Label:    reclass.ClassLabel(class),
			Cells:    dist.Counts[class],
			SharePct: dist.Share(class),
		})
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create stats file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}

	fmt.Printf("Risk stats saved to: %s\n", outputPath)
	return nil
}
