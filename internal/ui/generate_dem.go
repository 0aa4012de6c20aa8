package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emberwatch/emberwatch-risk-poc/internal/demgen"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/raster"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

// GenerateSyntheticDEM handles the UI for building a synthetic elevation grid
// and saving it under data/dem for later runs.
func GenerateSyntheticDEM() {
	PrintWarning("Synthetic terrain is layered sine waves plus seeded noise, normalized to a 300-400m elevation band. Useful for trying the model without real data.")

	width, err := ReadPositiveInt("Enter grid width in cells: ")
	if err != nil {
		PrintError(err.Error())
		return
	}
	height, err := ReadPositiveInt("Enter grid height in cells: ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	params := demgen.DefaultParams(width, height)
	if seed := ReadString("Enter a seed (empty for default): "); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			PrintError(fmt.Sprintf("invalid seed: %s", seed))
			return
		}
		params.Seed = parsed
	}

	elevation, err := demgen.Generate(params)
	if err != nil {
		PrintError(err.Error())
		return
	}

	sum, err := stats.Summarize(elevation)
	if err != nil {
		PrintError(err.Error())
		return
	}
	fmt.Printf("Elevation range: %.1f to %.1f m, mean %.1f m\n", sum.Min, sum.Max, sum.Mean)

	name := fmt.Sprintf("synthetic_%dx%d_seed%d", width, height, params.Seed)
	if err := os.MkdirAll(DemDirectory(), os.ModePerm); err != nil {
		PrintError(fmt.Sprintf("failed to create dem folder: %v", err))
		return
	}
	ascPath := filepath.Join(DemDirectory(), name+".asc")
	if err := raster.WriteASCII(ascPath, elevation); err != nil {
		PrintError(fmt.Sprintf("Error writing ASCII grid: %s", err.Error()))
		return
	}

	message := fmt.Sprintf("Synthetic DEM saved to: %s", ascPath)
	if ReadYesNo("Also save as GeoTIFF? Needs GDAL on this machine (y/N): ") {
		tiffPath := filepath.Join(DemDirectory(), name+".tiff")
		if err := raster.WriteGeoTIFF(tiffPath, elevation, properties.OutputEPSG()); err != nil {
			PrintError(fmt.Sprintf("Error writing GeoTIFF: %s", err.Error()))
		} else {
			message += fmt.Sprintf("\nGeoTIFF saved to: %s", tiffPath)
		}
	}

	PrintSuccess(message)
}
