package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
)

// CreateRiskGeoJson exports every valid cell as a polygon feature carrying
// its blended score and display class. Cell corners come straight from the
// grid's georeferencing, so the output drapes over web maps as-is.
func CreateRiskGeoJson(g *grid.Grid, outputPath string) (string, error) {
	if !strings.Contains(outputPath, ".geojson") {
		outputPath += ".geojson"
	}

	w, h := g.Width(), g.Height()
	cell := g.CellSize()
	origin := g.Origin()
	vals := g.Values()

	fc := geojson.NewFeatureCollection()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := vals[y*w+x]
			if !g.ValidValue(v) {
				continue
			}

			minX := origin.X + float64(x)*cell
			maxX := minX + cell
			maxY := origin.Y - float64(y)*cell
			minY := maxY - cell

			ring := orb.Ring{
				{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
			}
			feature := geojson.NewFeature(orb.Polygon{ring})
			class := displayClass(v)
			feature.Properties["risk"] = v
			feature.Properties["class"] = class
			feature.Properties["label"] = reclass.ClassLabel(class)
			fc.Append(feature)
		}
	}

	raw, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if err := os.WriteFile(outputPath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write GeoJSON file: %w", err)
	}

	fmt.Println("GeoJSON file created successfully at", outputPath)
	return outputPath, nil
}
