package raster

import (
	"path/filepath"
	"strings"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

// Read loads a raster by extension: ESRI ASCII grids through the pure Go
// codec, everything else through GDAL.
func Read(path string) (*grid.Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".asc") {
		return ReadASCII(path)
	}
	return ReadGeoTIFF(path)
}
