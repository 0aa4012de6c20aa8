package raster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
)

// The ESRI ASCII grid codec keeps fixtures and debug dumps readable and
// diffable without GDAL in the loop. GeoTIFF remains the interchange format.

var asciiHeaderKeys = map[string]bool{
	"ncols":        true,
	"nrows":        true,
	"xllcorner":    true,
	"yllcorner":    true,
	"xllcenter":    true,
	"yllcenter":    true,
	"cellsize":     true,
	"nodata_value": true,
}

// ReadASCII loads an ESRI ASCII grid (.asc) file.
func ReadASCII(path string) (*grid.Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64)
	var vals []float64
	for sc.Scan() {
		tok := sc.Text()
		key := strings.ToLower(tok)
		if asciiHeaderKeys[key] && len(vals) == 0 {
			if !sc.Scan() {
				return nil, fmt.Errorf("header %s in %s has no value", tok, path)
			}
			v, err := strconv.ParseFloat(sc.Text(), 64)
			if err != nil {
				return nil, fmt.Errorf("header %s in %s: %w", tok, path, err)
			}
			header[key] = v
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("bad sample %q in %s: %w", tok, path, err)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, required := range []string{"ncols", "nrows", "cellsize"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("missing %s header in %s", required, path)
		}
	}
	width := int(header["ncols"])
	height := int(header["nrows"])
	cell := header["cellsize"]

	nodata := grid.DefaultNoData
	if v, ok := header["nodata_value"]; ok {
		nodata = v
	}

	originX, okCornerX := header["xllcorner"]
	if !okCornerX {
		if c, ok := header["xllcenter"]; ok {
			originX = c - cell/2
		}
	}
	yll, okCornerY := header["yllcorner"]
	if !okCornerY {
		if c, ok := header["yllcenter"]; ok {
			yll = c - cell/2
		}
	}
	originY := yll + float64(height)*cell

	if len(vals) != width*height {
		return nil, fmt.Errorf("%s carries %d samples for a %dx%d grid", path, len(vals), width, height)
	}
	return grid.New(width, height, cell, grid.Origin{X: originX, Y: originY}, nodata, vals)
}

// WriteASCII stores a grid as an ESRI ASCII file. NaN and infinite cells are
// written as the nodata sentinel so the file never carries unparseable
// samples.
func WriteASCII(path string, g *grid.Grid) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "ncols %d\n", g.Width())
	fmt.Fprintf(w, "nrows %d\n", g.Height())
	fmt.Fprintf(w, "xllcorner %g\n", g.Origin().X)
	fmt.Fprintf(w, "yllcorner %g\n", g.Origin().Y-float64(g.Height())*g.CellSize())
	fmt.Fprintf(w, "cellsize %g\n", g.CellSize())
	fmt.Fprintf(w, "NODATA_value %g\n", g.NoData())

	vals := g.Values()
	line := make([]byte, 0, g.Width()*8)
	for y := 0; y < g.Height(); y++ {
		line = line[:0]
		for x := 0; x < g.Width(); x++ {
			if x > 0 {
				line = append(line, ' ')
			}
			v := vals[y*g.Width()+x]
			if !g.ValidValue(v) {
				v = g.NoData()
			}
			line = strconv.AppendFloat(line, v, 'g', -1, 64)
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
