package s5_report

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/internal/stats"
)

// ErrNoChartData nothing to draw
var ErrNoChartData = errors.New("no data to chart")

// Extreme Fear → Extreme Greed, red to green
var sentimentColors = []color.Color{
	color.RGBA{R: 215, G: 48, B: 39, A: 255},
	color.RGBA{R: 252, G: 141, B: 89, A: 255},
	color.RGBA{R: 254, G: 224, B: 139, A: 255},
	color.RGBA{R: 145, G: 207, B: 96, A: 255},
	color.RGBA{R: 26, G: 152, B: 80, A: 255},
}

// Fear & Greed zone shading, alpha ≈ 0.1
var zoneColors = []color.Color{
	color.NRGBA{R: 255, A: 26},
	color.NRGBA{R: 255, G: 165, A: 26},
	color.NRGBA{R: 255, G: 255, A: 26},
	color.NRGBA{R: 144, G: 238, B: 144, A: 26},
	color.NRGBA{G: 128, A: 26},
}

var (
	red       = color.RGBA{R: 220, A: 255}
	black     = color.RGBA{A: 255}
	green     = color.RGBA{G: 150, A: 255}
	navy      = color.RGBA{B: 128, A: 255}
	orange    = color.RGBA{R: 255, G: 140, A: 255}
	lightBlue = color.RGBA{R: 173, G: 216, B: 230, A: 255}
	coral     = color.RGBA{R: 240, G: 128, B: 128, A: 255}
)

const barWidth = 28

func sentimentLabels() []string {
	labels := make([]string, 0, 5)
	for _, s := range contracts.AllSentiments() {
		labels = append(labels, s.String())
	}
	return labels
}

func newCategoryPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	p.NominalX(sentimentLabels()...)
	p.X.Tick.Label.Rotation = math.Pi / 8
	p.X.Min = -0.5
	p.X.Max = 4.5
	return p
}

func horizontalLine(y float64, c color.Color, dashed bool) *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return y })
	f.Color = c
	f.Width = vg.Points(1.5)
	if dashed {
		f.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	}
	return f
}

// bar draws a single bar at category i with a value label on top
func bar(p *plot.Plot, i int, v float64, c color.Color, label string) error {
	b, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(barWidth))
	if err != nil {
		return err
	}
	b.XMin = float64(i)
	b.Color = c
	b.LineStyle.Width = vg.Points(1)
	p.Add(b)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: float64(i), Y: v}},
		Labels: []string{label},
	})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: -vg.Points(10), Y: vg.Points(3)}
	p.Add(labels)
	return nil
}

// =============================================================================
// 01 Performance Dashboard
// =============================================================================

// DashboardTitle is drawn above the four dashboard panels
const DashboardTitle = "Trader Performance by Market Sentiment"

// DashboardChart 2×2 panel: PnL box plot, win rate, average PnL, trade count
func DashboardChart(path string, r *s4_analysis.Report) error {
	if r.Overall.TotalTrades == 0 {
		return ErrNoChartData
	}

	box, err := boxPlot(r)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	winRate, err := winRatePlot(r)
	if err != nil {
		return fmt.Errorf("win rate: %w", err)
	}
	avg, err := avgPnLPlot(r)
	if err != nil {
		return fmt.Errorf("average pnl: %w", err)
	}
	count, err := tradeCountPlot(r)
	if err != nil {
		return fmt.Errorf("trade count: %w", err)
	}

	return saveGrid(path, DashboardTitle, [][]*plot.Plot{{box, winRate}, {avg, count}}, 16*vg.Inch, 12*vg.Inch)
}

func boxPlot(r *s4_analysis.Report) (*plot.Plot, error) {
	p := newCategoryPlot("PnL Distribution by Sentiment", "Sentiment Classification", "PnL ($)")
	for i, s := range contracts.AllSentiments() {
		values := r.Distributions[s]
		switch len(values) {
		case 0:
			continue
		case 1:
			// 한 건뿐이면 상자 대신 점으로 표시
			pt, err := plotter.NewScatter(plotter.XYs{{X: float64(i), Y: values[0]}})
			if err != nil {
				return nil, err
			}
			pt.Color = sentimentColors[i]
			p.Add(pt)
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(barWidth), float64(i), plotter.Values(values))
		if err != nil {
			return nil, err
		}
		b.FillColor = sentimentColors[i]
		p.Add(b)
	}
	p.Add(horizontalLine(0, red, true))
	return p, nil
}

func winRatePlot(r *s4_analysis.Report) (*plot.Plot, error) {
	p := newCategoryPlot("Win Rate by Sentiment", "", "Win Rate (%)")
	for i, s := range contracts.AllSentiments() {
		g, ok := r.Group(s)
		if !ok {
			continue
		}
		if err := bar(p, i, g.WinRate, sentimentColors[i], fmt.Sprintf("%.1f%%", g.WinRate)); err != nil {
			return nil, err
		}
	}
	breakeven := horizontalLine(50, red, true)
	p.Add(breakeven)
	p.Legend.Add("50% (Breakeven)", breakeven)
	p.Legend.Top = true
	p.Y.Min = 0
	return p, nil
}

func avgPnLPlot(r *s4_analysis.Report) (*plot.Plot, error) {
	p := newCategoryPlot("Average PnL by Sentiment", "", "Average PnL ($)")
	for i, s := range contracts.AllSentiments() {
		g, ok := r.Group(s)
		if !ok {
			continue
		}
		c := color.Color(green)
		if g.AvgPnL < 0 {
			c = red
		}
		if err := bar(p, i, g.AvgPnL, c, money(g.AvgPnL)); err != nil {
			return nil, err
		}
	}
	p.Add(horizontalLine(0, black, false))
	return p, nil
}

func tradeCountPlot(r *s4_analysis.Report) (*plot.Plot, error) {
	p := newCategoryPlot("Trading Activity by Sentiment", "", "Number of Trades")
	for i, s := range contracts.AllSentiments() {
		g, ok := r.Group(s)
		if !ok {
			continue
		}
		if err := bar(p, i, float64(g.Trades), sentimentColors[i], humanize.Comma(int64(g.Trades))); err != nil {
			return nil, err
		}
	}
	p.Y.Min = 0
	return p, nil
}

// =============================================================================
// 02 Buy vs Sell
// =============================================================================

// BuySellChart grouped bars of average PnL per side
func BuySellChart(path string, r *s4_analysis.Report) error {
	if !r.BuySell.Available {
		return ErrNoChartData
	}

	buys := make(plotter.Values, len(r.BuySell.Rows))
	sells := make(plotter.Values, len(r.BuySell.Rows))
	for i, row := range r.BuySell.Rows {
		buys[i] = row.BuyAvgPnL
		sells[i] = row.SellAvgPnL
	}

	p := newCategoryPlot("Buy vs Sell Performance by Sentiment", "Sentiment Classification", "Average PnL ($)")
	w := vg.Points(barWidth)

	buyBars, err := plotter.NewBarChart(buys, w)
	if err != nil {
		return err
	}
	buyBars.Color = lightBlue
	buyBars.Offset = -w / 2

	sellBars, err := plotter.NewBarChart(sells, w)
	if err != nil {
		return err
	}
	sellBars.Color = coral
	sellBars.Offset = w / 2

	p.Add(buyBars, sellBars, horizontalLine(0, red, true))
	p.Legend.Add("BUY", buyBars)
	p.Legend.Add("SELL", sellBars)
	p.Legend.Top = true

	return p.Save(14*vg.Inch, 7*vg.Inch, path)
}

// =============================================================================
// 03 Time Series
// =============================================================================

// TimeSeriesChart cumulative PnL above the mean daily index value with zone bands
func TimeSeriesChart(path string, r *s4_analysis.Report) error {
	if len(r.CumulativePnL) == 0 {
		return ErrNoChartData
	}

	cumulative := plot.New()
	cumulative.Title.Text = "Cumulative PnL Over Time"
	cumulative.Y.Label.Text = "Cumulative PnL ($)"
	cumulative.X.Tick.Marker = plot.TimeTicks{Format: contracts.DateLayout}
	cumulative.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(seriesXYs(r.CumulativePnL))
	if err != nil {
		return err
	}
	line.Color = navy
	line.Width = vg.Points(2)
	line.FillColor = color.NRGBA{B: 128, A: 77}
	points.Color = navy
	points.Radius = vg.Points(1)
	cumulative.Add(line, points, horizontalLine(0, red, true))

	index := plot.New()
	index.Title.Text = "Fear & Greed Index Over Time"
	index.Y.Label.Text = "Index Value (0-100)"
	index.X.Label.Text = "Date"
	index.X.Tick.Marker = plot.TimeTicks{Format: contracts.DateLayout}
	index.Y.Min = 0
	index.Y.Max = 100

	xMin, xMax := seriesSpan(r.SentimentValue)
	for i, zone := range contracts.SentimentZones() {
		band, err := plotter.NewPolygon(plotter.XYs{
			{X: xMin, Y: zone.Low}, {X: xMax, Y: zone.Low},
			{X: xMax, Y: zone.High}, {X: xMin, Y: zone.High},
		})
		if err != nil {
			return err
		}
		band.Color = zoneColors[i]
		band.LineStyle.Width = 0
		index.Add(band)
		index.Legend.Add(zone.Sentiment.String(), band)
	}
	index.Add(plotter.NewGrid())

	sentimentLine, sentimentPoints, err := plotter.NewLinePoints(seriesXYs(r.SentimentValue))
	if err != nil {
		return err
	}
	sentimentLine.Color = orange
	sentimentLine.Width = vg.Points(2)
	sentimentPoints.Color = orange
	sentimentPoints.Radius = vg.Points(1)
	index.Add(sentimentLine, sentimentPoints)
	index.Legend.Top = true

	return saveGrid(path, "", [][]*plot.Plot{{cumulative}, {index}}, 16*vg.Inch, 10*vg.Inch)
}

func seriesXYs(series []s4_analysis.SeriesPoint) plotter.XYs {
	xys := make(plotter.XYs, len(series))
	for i, pt := range series {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Value
	}
	return xys
}

// seriesSpan is the x extent of a series, widened so a single day still has width
func seriesSpan(series []s4_analysis.SeriesPoint) (float64, float64) {
	halfDay := float64(12 * time.Hour / time.Second)
	first := float64(series[0].Date.Unix())
	last := float64(series[len(series)-1].Date.Unix())
	return first - halfDay, last + halfDay
}

// =============================================================================
// 04 Correlation Heatmap
// =============================================================================

// correlationGrid puts the first matrix row at the top
type correlationGrid struct {
	m stats.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) {
	n := len(g.m.Values)
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	row := len(g.m.Values) - 1 - r
	if !g.m.Defined[row][c] {
		return math.NaN()
	}
	return g.m.Values[row][c]
}

func (g correlationGrid) X(c int) float64 { return float64(c) }

func (g correlationGrid) Y(r int) float64 { return float64(r) }

// HeatmapChart annotated correlation matrix on a diverging blue-red scale
func HeatmapChart(path string, m stats.CorrelationMatrix) error {
	n := len(m.Values)
	if n == 0 {
		return ErrNoChartData
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	grid := correlationGrid{m: m}
	hm := plotter.NewHeatMap(grid, colors.Palette(255))
	hm.Min = -1
	hm.Max = 1
	hm.NaN = color.Gray{Y: 200}

	var (
		xys    plotter.XYs
		labels []string
	)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			z := grid.Z(c, r)
			if math.IsNaN(z) {
				labels = append(labels, "n/a")
			} else {
				labels = append(labels, fmt.Sprintf("%.3f", z))
			}
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	annotations.Offset = vg.Point{X: -vg.Points(12), Y: -vg.Points(4)}

	yLabels := make([]string, n)
	for i, l := range m.Labels {
		yLabels[n-1-i] = l
	}

	p := plot.New()
	p.Title.Text = "Correlation: Sentiment, PnL, and Profitability"
	p.Add(hm, annotations)
	p.NominalX(m.Labels...)
	p.NominalY(yLabels...)

	return p.Save(10*vg.Inch, 8*vg.Inch, path)
}

// titleBand is the space reserved above the tiles for a figure title
const titleBand = vg.Millimeter * 16

// saveGrid draws plots as aligned tiles into one PNG.
// A non-empty title is centered above the tiles.
func saveGrid(path, title string, plots [][]*plot.Plot, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}

	if title != "" {
		tiles.PadTop = titleBand
		sty := plot.New().Title.TextStyle
		sty.Font.Size = vg.Points(18)
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		dc.FillText(sty, vg.Point{X: width / 2, Y: height - vg.Millimeter*4}, title)
	}

	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(file); err != nil {
		return err
	}
	return file.Close()
}
