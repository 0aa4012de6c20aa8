package raster

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/utils"
)

// ReadGeoTIFF loads band 1 of a GeoTIFF into a Grid. The raster must carry
// square cells. When the band declares no nodata value the project default
// sentinel is assumed.
func ReadGeoTIFF(path string) (*grid.Grid, error) {
	var ds *godal.Dataset
	var err error
	utils.ExecuteWithMutex(func() {
		ds, err = godal.Open(path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer ds.Close()

	st := ds.Structure()
	if st.NBands < 1 {
		return nil, fmt.Errorf("raster %s has no bands", path)
	}
	width, height := st.SizeX, st.SizeY

	gt, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("failed to read geotransform of %s: %w", path, err)
	}
	cell := gt[1]
	if cell <= 0 || math.Abs(math.Abs(gt[5])-cell) > 1e-9*cell {
		return nil, fmt.Errorf("raster %s does not have square cells: %g x %g", path, gt[1], gt[5])
	}

	band := ds.Bands()[0]
	nodata, ok := band.NoData()
	if !ok {
		nodata = grid.DefaultNoData
	}

	data := make([]float64, width*height)
	if err := band.Read(0, 0, data, width, height); err != nil {
		return nil, fmt.Errorf("failed to read raster data from %s: %w", path, err)
	}

	return grid.New(width, height, cell, grid.Origin{X: gt[0], Y: gt[3]}, nodata, data)
}

// WriteGeoTIFF stores a grid as a single-band LZW-compressed GeoTIFF.
// A positive epsg stamps the spatial reference on the dataset.
func WriteGeoTIFF(path string, g *grid.Grid, epsg int) error {
	var ds *godal.Dataset
	var err error
	utils.ExecuteWithMutex(func() {
		ds, err = godal.Create(godal.GTiff, path, 1, godal.Float64, g.Width(), g.Height(),
			godal.CreationOption("COMPRESS=LZW"))
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	closed := false
	defer func() {
		if !closed {
			ds.Close()
		}
	}()

	origin := g.Origin()
	gt := [6]float64{origin.X, g.CellSize(), 0, origin.Y, 0, -g.CellSize()}
	if err := ds.SetGeoTransform(gt); err != nil {
		return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
	}

	if epsg > 0 {
		sr, err := godal.NewSpatialRefFromEPSG(epsg)
		if err != nil {
			return fmt.Errorf("failed to build EPSG:%d reference: %w", epsg, err)
		}
		defer sr.Close()
		if err := ds.SetSpatialRef(sr); err != nil {
			return fmt.Errorf("failed to set spatial reference on %s: %w", path, err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(g.NoData()); err != nil {
		return fmt.Errorf("failed to set nodata on %s: %w", path, err)
	}
	if err := band.Write(0, 0, g.Values(), g.Width(), g.Height()); err != nil {
		return fmt.Errorf("failed to write raster data to %s: %w", path, err)
	}

	closed = true
	if err := ds.Close(); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	return nil
}
