package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/emberwatch/emberwatch-risk-poc/internal/demgen"
	"github.com/emberwatch/emberwatch-risk-poc/internal/fetch"
	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/notification"
	"github.com/emberwatch/emberwatch-risk-poc/internal/pipeline"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/raster"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

// RunRiskAssessment handles the UI for the full workflow: load or build an
// elevation grid, run the risk model and export the result artifacts.
func RunRiskAssessment() {
	PrintWarning("- Elevation rasters are looked up under data/dem.\n- GeoTIFF inputs need GDAL available; ESRI ASCII grids (.asc) work everywhere.")

	choice, err := ReadInt("Elevation source:\n1. Synthetic terrain\n2. Raster file\n3. Copernicus GLO-30 download\nEnter your choice: ", 1, 3)
	if err != nil {
		PrintError(err.Error())
		return
	}

	var elevation *grid.Grid
	var name string
	switch choice {
	case 1:
		elevation, name, err = syntheticElevation()
	case 2:
		elevation, name, err = rasterElevation()
	case 3:
		elevation, name, err = copernicusElevation()
	}
	if err != nil {
		PrintError(err.Error())
		return
	}

	var vegetation *grid.Grid
	if vegPath := ReadString("Enter a vegetation fuel raster path (empty to assume moderate fuel): "); vegPath != "" {
		vegetation, err = raster.Read(vegPath)
		if err != nil {
			PrintError(fmt.Sprintf("Error reading vegetation raster: %s", err.Error()))
			return
		}
	}

	cfg := pipeline.DefaultConfig()
	bar := progressbar.Default(3, "Running risk model")
	cfg.Progress = func(stage string) {
		bar.Describe(stage)
		bar.Add(1)
	}

	result, err := pipeline.Run(elevation, vegetation, cfg)
	if err != nil {
		PrintError(fmt.Sprintf("Error running risk model: %s", err.Error()))
		return
	}
	bar.Finish()

	printDistribution(result.Composite)

	base, err := exportArtifacts(result.Composite, name)
	if err != nil {
		PrintError(err.Error())
		return
	}
	if ReadYesNo("Also export the composite as GeoTIFF? Needs GDAL on this machine (y/N): ") {
		if err := raster.WriteGeoTIFF(base+".tiff", result.Composite, properties.OutputEPSG()); err != nil {
			PrintError(fmt.Sprintf("Error writing GeoTIFF: %s", err.Error()))
		}
	}

	message := fmt.Sprintf("Risk assessment complete!\nImage: %s.jpeg\nGeoJSON: %s.geojson\nReport: %s.html", base, base, base)
	if properties.DiscordSuccessNotificationUrl() != "" {
		if err := notification.SendDiscordSuccessNotification("EmberWatch\n\n" + message); err != nil {
			PrintError(fmt.Sprintf("Failed to send notification: %s", err.Error()))
		}
	}
	PrintSuccess(message)
}

func syntheticElevation() (*grid.Grid, string, error) {
	width, err := ReadPositiveInt("Enter grid width in cells: ")
	if err != nil {
		return nil, "", err
	}
	height, err := ReadPositiveInt("Enter grid height in cells: ")
	if err != nil {
		return nil, "", err
	}

	params := demgen.DefaultParams(width, height)
	if seed := ReadString("Enter a seed (empty for default): "); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("invalid seed: %s", seed)
		}
		params.Seed = parsed
	}

	elevation, err := demgen.Generate(params)
	if err != nil {
		return nil, "", err
	}
	return elevation, fmt.Sprintf("synthetic_%dx%d", width, height), nil
}

func rasterElevation() (*grid.Grid, string, error) {
	path := ReadString("Enter the elevation raster path: ")
	if path == "" {
		return nil, "", fmt.Errorf("raster path cannot be empty")
	}
	elevation, err := raster.Read(path)
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return elevation, name, nil
}

func copernicusElevation() (*grid.Grid, string, error) {
	box, err := readBBox()
	if err != nil {
		return nil, "", err
	}
	name := ReadString("Name this area: ")
	if name == "" {
		name = "copernicus"
	}

	tilePath := filepath.Join(DemDirectory(), name+".tiff")
	elevation, err := fetch.DEMToFile(context.Background(), box, tilePath)
	if err != nil {
		return nil, "", err
	}
	fmt.Printf("Elevation tile saved to: %s\n", tilePath)
	return elevation, name, nil
}

func readBBox() (fetch.BBox, error) {
	if regionPath := ReadString("Enter a region GeoJSON path (empty to type a bounding box): "); regionPath != "" {
		return fetch.RegionBBox(regionPath)
	}

	west, err := ReadFloat("West longitude: ")
	if err != nil {
		return fetch.BBox{}, err
	}
	south, err := ReadFloat("South latitude: ")
	if err != nil {
		return fetch.BBox{}, err
	}
	east, err := ReadFloat("East longitude: ")
	if err != nil {
		return fetch.BBox{}, err
	}
	north, err := ReadFloat("North latitude: ")
	if err != nil {
		return fetch.BBox{}, err
	}
	return fetch.BBox{West: west, South: south, East: east, North: north}, nil
}

func printDistribution(composite *grid.Grid) {
	sum, err := stats.Summarize(composite)
	if err != nil {
		PrintError(err.Error())
		return
	}
	dist := stats.ClassDistribution(composite)

	fmt.Printf("%s\nRisk distribution:%s\n", ColorGreen, ColorReset)
	for class := reclass.ClassVeryLow; class <= reclass.ClassVeryHigh; class++ {
		fmt.Printf("%s%-9s %6d cells (%.1f%%)%s\n", ColorGreen, reclass.ClassLabel(class), dist.Counts[class], dist.Share(class), ColorReset)
	}
	fmt.Printf("%sMean %.2f | Median %.2f | P90 %.2f | Valid %d/%d%s\n", ColorGreen, sum.Mean, sum.Median, sum.P90, sum.Valid, sum.Total, ColorReset)
}
