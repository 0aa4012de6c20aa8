package reclass

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

type rangeRow struct {
	Lower float64 `csv:"lower"`
	Upper float64 `csv:"upper"`
	Class int     `csv:"class"`
}

// LoadRangesCSV reads breakpoint ranges from a CSV file with lower, upper
// and class columns, ordered ascending. The caller assembles the Table so
// flat handling and ceiling closure stay explicit at the call site.
func LoadRangesCSV(path string) ([]Range, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open breakpoint file: %w", err)
	}
	defer file.Close()

	var rows []rangeRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("failed to read breakpoint file %s: %w", path, err)
	}

	ranges := make([]Range, 0, len(rows))
	for _, row := range rows {
		ranges = append(ranges, Range{Lower: row.Lower, Upper: row.Upper, Class: row.Class})
	}
	return ranges, nil
}

// SaveRangesCSV writes a table's ranges out in the same layout LoadRangesCSV
// reads, so presets can be dumped, edited and fed back in.
func SaveRangesCSV(path string, table Table) error {
	rows := make([]rangeRow, 0, len(table.Ranges))
	for _, r := range table.Ranges {
		rows = append(rows, rangeRow{Lower: r.Lower, Upper: r.Upper, Class: r.Class})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create breakpoint file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("failed to write breakpoint file %s: %w", path, err)
	}
	return nil
}
