package ui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/emberwatch/emberwatch-risk-poc/internal/fetch"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

// FetchElevation handles the UI for downloading a Copernicus GLO-30 tile
// without running the risk model, so areas can be staged ahead of time.
func FetchElevation() {
	PrintWarning("- COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET and COPERNICUS_TOKEN_URL must be set.\n- Downloads are cached, so repeating an area is free.")

	box, err := readBBox()
	if err != nil {
		PrintError(err.Error())
		return
	}

	name := ReadString("Name this area: ")
	if name == "" {
		PrintError("area name cannot be empty")
		return
	}

	tilePath := filepath.Join(DemDirectory(), name+".tiff")
	elevation, err := fetch.DEMToFile(context.Background(), box, tilePath)
	if err != nil {
		PrintError(fmt.Sprintf("Error downloading elevation: %s", err.Error()))
		return
	}

	sum, err := stats.Summarize(elevation)
	if err != nil {
		PrintError(err.Error())
		return
	}

	PrintSuccess(fmt.Sprintf("Elevation tile saved to: %s\nGrid: %dx%d cells at %.1fm\nElevation range: %.1f to %.1f m",
		tilePath, elevation.Width(), elevation.Height(), elevation.CellSize(), sum.Min, sum.Max))
}
