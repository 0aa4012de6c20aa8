package fetch

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
)

// RegionBBox reads a GeoJSON file and returns the box covering all of its
// features, so a project area sketched in any GIS tool can drive the tile
// download.
func RegionBBox(path string) (BBox, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BBox{}, fmt.Errorf("failed to read region file: %v", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return BBox{}, fmt.Errorf("failed to parse region file: %v", err)
	}
	if len(fc.Features) == 0 {
		return BBox{}, fmt.Errorf("region file %s has no features", path)
	}

	bound := fc.Features[0].Geometry.Bound()
	for _, feature := range fc.Features[1:] {
		bound = bound.Union(feature.Geometry.Bound())
	}

	box := BBox{
		West:  bound.Min.X(),
		South: bound.Min.Y(),
		East:  bound.Max.X(),
		North: bound.Max.Y(),
	}
	if err := box.validate(); err != nil {
		return BBox{}, err
	}
	return box, nil
}
