package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/emberwatch/emberwatch-risk-poc/internal/grid"
	"github.com/emberwatch/emberwatch-risk-poc/internal/reclass"
	"github.com/emberwatch/emberwatch-risk-poc/internal/stats"
)

// maxScatterPoints bounds the embedded payload so reports stay loadable in a
// browser even for large rasters. Cells beyond the budget are strided over.
const maxScatterPoints = 8000

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Render writes a standalone HTML report for a composite risk surface: a
// map-like scatter of cell centers colored by blended score, plus the class
// distribution as a bar chart.
func Render(w io.Writer, composite *grid.Grid) error {
	sum, err := stats.Summarize(composite)
	if err != nil {
		return err
	}
	dist := stats.ClassDistribution(composite)

	page := components.NewPage()
	page.PageTitle = "EmberWatch Risk Report"
	page.AddCharts(riskScatter(composite, sum), classBar(dist))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render risk report: %w", err)
	}
	return nil
}

// WriteHTML renders the report to a file.
func WriteHTML(path string, composite *grid.Grid) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()
	return Render(file, composite)
}

func riskScatter(g *grid.Grid, sum stats.Summary) *charts.Scatter {
	w, h := g.Width(), g.Height()
	cell := g.CellSize()
	origin := g.Origin()
	vals := g.Values()

	stride := 1
	if sum.Valid > maxScatterPoints {
		stride = int(math.Ceil(float64(sum.Valid) / float64(maxScatterPoints)))
	}

	data := make([]opts.ScatterData, 0, sum.Valid/stride+1)
	seen := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := vals[y*w+x]
			if !g.ValidValue(v) {
				continue
			}
			if seen%stride == 0 {
				cx := origin.X + (float64(x)+0.5)*cell
				cy := origin.Y - (float64(y)+0.5)*cell
				data = append(data, opts.ScatterData{Value: []interface{}{cx, cy, v}})
			}
			seen++
		}
	}

	pad := cell
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "EmberWatch Risk Report", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Composite Wildfire Risk",
			Subtitle: fmt.Sprintf("cells=%dx%d valid=%d/%d mean=%.2f p90=%.2f stride=%d", w, h, sum.Valid, sum.Total, sum.Mean, sum.P90, stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: origin.X - pad, Max: origin.X + float64(w)*cell + pad, Name: "Easting", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: origin.Y - float64(h)*cell - pad, Max: origin.Y + pad, Name: "Northing", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(reclass.ClassVeryLow),
			Max:        float32(reclass.ClassVeryHigh),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	scatter.AddSeries("risk", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}

func classBar(dist stats.Distribution) *charts.Bar {
	labels := make([]string, 0, reclass.ClassVeryHigh)
	counts := make([]opts.BarData, 0, reclass.ClassVeryHigh)
	for class := reclass.ClassVeryLow; class <= reclass.ClassVeryHigh; class++ {
		labels = append(labels, reclass.ClassLabel(class))
		counts = append(counts, opts.BarData{Value: dist.Counts[class]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Risk Class Distribution",
			Subtitle: fmt.Sprintf("valid=%d of %d cells", dist.Valid, dist.Total),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("cells", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}
