package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/raster"
	"github.com/emberwatch/emberwatch-risk-poc/internal/report"
	"github.com/emberwatch/emberwatch-risk-poc/output"
)

// ExportComposite handles the UI for re-exporting map, GeoJSON, CSV and HTML
// artifacts from a composite raster saved by an earlier run, without running
// the model again.
func ExportComposite() {
	path := ReadString("Enter the composite raster path: ")
	if path == "" {
		PrintError("raster path cannot be empty")
		return
	}
	composite, err := raster.Read(path)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading composite raster: %s", err.Error()))
		return
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	printDistribution(composite)

	base, err := exportArtifacts(composite, name)
	if err != nil {
		PrintError(err.Error())
		return
	}
	if ReadYesNo("Also export the composite as GeoTIFF? Needs GDAL on this machine (y/N): ") {
		if err := raster.WriteGeoTIFF(base+".tiff", composite, properties.OutputEPSG()); err != nil {
			PrintError(fmt.Sprintf("Error writing GeoTIFF: %s", err.Error()))
		}
	}

	PrintSuccess(fmt.Sprintf("Artifacts exported.\nImage: %s.jpeg\nGeoJSON: %s.geojson\nReport: %s.html", base, base, base))
}

// exportArtifacts writes the standard result set for a composite surface
// under the result directory and returns the dated base path.
func exportArtifacts(composite *grid.Grid, name string) (string, error) {
	resultPath, err := CreateResultDirectory(name)
	if err != nil {
		return "", err
	}
	base := filepath.Join(resultPath, fmt.Sprintf("%s_%s", name, time.Now().Format("2006-01-02")))

	if err := output.CreateRiskImage(composite, base); err != nil {
		return "", fmt.Errorf("failed to create risk image: %w", err)
	}
	if _, err := output.CreateRiskGeoJson(composite, base); err != nil {
		return "", fmt.Errorf("failed to create GeoJSON: %w", err)
	}
	if err := output.CreateStatsCSV(composite, base+"_stats"); err != nil {
		return "", fmt.Errorf("failed to create stats CSV: %w", err)
	}
	if err := report.WriteHTML(base+".html", composite); err != nil {
		return "", fmt.Errorf("failed to create HTML report: %w", err)
	}
	if err := raster.WriteASCII(base+".asc", composite); err != nil {
		return "", fmt.Errorf("failed to write ASCII grid: %w", err)
	}
	return base, nil
}
