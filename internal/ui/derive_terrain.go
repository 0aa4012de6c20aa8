package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/raster"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
	"github.com/emberwatch/emberwatch-risk-poc/internal/terrain"
)

// DeriveTerrainOnly handles the UI for deriving slope and aspect surfaces
// from an elevation raster without running the full risk model, for checking
// inputs before a long run.
func DeriveTerrainOnly() {
	elevation, name, err := rasterElevation()
	if err != nil {
		PrintError(err.Error())
		return
	}

	slope, aspect, err := terrain.Derive(elevation)
	if err != nil {
		PrintError(fmt.Sprintf("Error deriving terrain: %s", err.Error()))
		return
	}

	if sum, err := stats.Summarize(slope); err == nil {
		fmt.Printf("%sSlope: %.1f to %.1f degrees, mean %.1f, %d/%d valid cells%s\n",
			ColorGreen, sum.Min, sum.Max, sum.Mean, sum.Valid, sum.Total, ColorReset)
	}
	flat := 0
	for _, v := range aspect.Values() {
		if v == terrain.FlatAspect {
			flat++
		}
	}
	fmt.Printf("%sFlat cells (no bearing): %d%s\n", ColorGreen, flat, ColorReset)

	resultPath, err := CreateResultDirectory(name)
	if err != nil {
		PrintError(err.Error())
		return
	}
	base := filepath.Join(resultPath, fmt.Sprintf("%s_%s", name, time.Now().Format("2006-01-02")))

	if err := raster.WriteASCII(base+"_slope.asc", slope); err != nil {
		PrintError(fmt.Sprintf("Error writing slope grid: %s", err.Error()))
		return
	}
	if err := raster.WriteASCII(base+"_aspect.asc", aspect); err != nil {
		PrintError(fmt.Sprintf("Error writing aspect grid: %s", err.Error()))
		return
	}

	message := fmt.Sprintf("Terrain surfaces saved to:\n%s_slope.asc\n%s_aspect.asc", base, base)
	if ReadYesNo("Also save as GeoTIFF? Needs GDAL on this machine (y/N): ") {
		if err := raster.WriteGeoTIFF(base+"_slope.tiff", slope, properties.OutputEPSG()); err != nil {
			PrintError(fmt.Sprintf("Error writing slope GeoTIFF: %s", err.Error()))
		} else if err := raster.WriteGeoTIFF(base+"_aspect.tiff", aspect, properties.OutputEPSG()); err != nil {
			PrintError(fmt.Sprintf("Error writing aspect GeoTIFF: %s", err.Error()))
		} else {
			message += fmt.Sprintf("\n%s_slope.tiff\n%s_aspect.tiff", base, base)
		}
	}

	PrintSuccess(message)
}
