package output

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/properties"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
)

// displayClass rounds a blended score to the class shown on maps and legends.
func displayClass(v float64) int {
	class := int(math.Round(v))
	if class < reclass.ClassVeryLow {
		return reclass.ClassVeryLow
	}
	if class > reclass.ClassVeryHigh {
		return reclass.ClassVeryHigh
	}
	return class
}

// cellScale keeps small rasters readable by drawing each cell as a block of
// pixels instead of a single one.
func cellScale(w, h int) int {
	longest := w
	if h > longest {
		longest = h
	}
	scale := 800 / longest
	if scale < 1 {
		return 1
	}
	if scale > 12 {
		return 12
	}
	return scale
}

func riskColor(g *grid.Grid, v float64) color.RGBA {
	if !g.ValidValue(v) {
		c := properties.NoDataColor
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	c := properties.RiskColorMap[displayClass(v)]
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// CreateRiskImage renders a risk surface as a JPEG with a class legend.
// Continuous composite values round to their nearest class for display.
func CreateRiskImage(g *grid.Grid, outputPath string) error {
	if !strings.Contains(outputPath, ".jpeg") {
		outputPath += ".jpeg"
	}

	w, h := g.Width(), g.Height()
	scale := cellScale(w, h)
	width := w * scale
	height := h * scale

	legendHeight := 150
	totalHeight := height + legendHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	vals := g.Values()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := riskColor(g, vals[y*w+x])
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(x*scale+dx, y*scale+dy, c)
				}
			}
		}
	}

	dc := gg.NewContext(width, totalHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	legendY := height + 10
	legendX := 10
	legendSpacing := 20

	drawSwatch := func(row int, c properties.Color, label string) {
		y := legendY + row*legendSpacing

		dc.SetRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		dc.DrawRectangle(float64(legendX), float64(y), 15, 15)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(float64(legendX), float64(y), 15, 15)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.DrawStringAnchored(label, float64(legendX+20), float64(y+7), 0, 0.5)
	}

	for class := reclass.ClassVeryLow; class <= reclass.ClassVeryHigh; class++ {
		drawSwatch(class-1, properties.RiskColorMap[class], reclass.ClassLabel(class))
	}
	drawSwatch(reclass.ClassVeryHigh, properties.NoDataColor, "No Data")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, dc.Image(), &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	fmt.Printf("Risk image saved to: %s\n", outputPath)
	return nil
}
