package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/emberwatch/emberwatch-risk-poc/internal/pipeline"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
)

// ShowModelTables prints the breakpoint tables and layer weights behind the
// risk model, with an optional CSV export for editing.
func ShowModelTables() {
	weights := pipeline.DefaultWeights()
	fmt.Printf("%s\nLayer weights:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%sslope %.2f | aspect %.2f | vegetation %.2f%s\n", ColorGreen, weights.Slope, weights.Aspect, weights.Vegetation, ColorReset)

	tables := []reclass.Table{reclass.SlopeTable(), reclass.AspectTable(), reclass.VegetationTable()}
	for _, table := range tables {
		printTable(table)
	}

	if !ReadYesNo("Export tables as CSV for editing? (y/N): ") {
		return
	}

	tableDir := filepath.Join(properties.DataPath(), "tables")
	if err := os.MkdirAll(tableDir, os.ModePerm); err != nil {
		PrintError(fmt.Sprintf("failed to create tables folder: %v", err))
		return
	}
	for _, table := range tables {
		path := filepath.Join(tableDir, table.Name+".csv")
		if err := reclass.SaveRangesCSV(path, table); err != nil {
			PrintError(fmt.Sprintf("Error exporting %s table: %s", table.Name, err.Error()))
			return
		}
		fmt.Printf("%s- %s%s\n", ColorGreen, path, ColorReset)
	}
	PrintSuccess("Tables exported.")
}

func printTable(table reclass.Table) {
	fmt.Printf("%s\n%s ranges:%s\n", ColorGreen, table.Name, ColorReset)
	for i, r := range table.Ranges {
		bracket := ")"
		if table.CloseLast && i == len(table.Ranges)-1 {
			bracket = "]"
		}
		fmt.Printf("%s[%g, %g%s -> %d %s%s\n", ColorGreen, r.Lower, r.Upper, bracket, r.Class, reclass.ClassLabel(r.Class), ColorReset)
	}
	if table.FlatClass > 0 {
		fmt.Printf("%sflat -> %d %s%s\n", ColorGreen, table.FlatClass, reclass.ClassLabel(table.FlatClass), ColorReset)
	}
}
