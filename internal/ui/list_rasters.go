package ui

import (
	"fmt"
	"os"
	"strings"
)

// ListRasters prints the elevation rasters available under data/dem
func ListRasters() {
	files, err := os.ReadDir(DemDirectory())
	if err != nil {
		PrintError(fmt.Sprintf("Error reading dem folder: %s", err.Error()))
		return
	}

	fmt.Printf("%s\nAvailable rasters:%s\n", ColorGreen, ColorReset)
	found := false
	for _, file := range files {
		name := file.Name()
		if strings.HasSuffix(name, ".tiff") || strings.HasSuffix(name, ".tif") || strings.HasSuffix(name, ".asc") {
			fmt.Printf("%s- %s%s\n", ColorGreen, name, ColorReset)
			found = true
		}
	}
	if !found {
		PrintWarning("No rasters found. Generate a synthetic grid or download an area first.")
	}
}
