package s5_report

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/internal/stats"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	assert.Equal(t, pngMagic, data[:4])
}

func TestCharts(t *testing.T) {
	in := richScenario(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		draw func(path string) error
	}{
		{"dashboard", func(p string) error { return DashboardChart(p, in.Report) }},
		{"buy sell", func(p string) error { return BuySellChart(p, in.Report) }},
		{"time series", func(p string) error { return TimeSeriesChart(p, in.Report) }},
		{"heatmap", func(p string) error { return HeatmapChart(p, in.Report.Correlation) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			require.NoError(t, tt.draw(path))
			assertPNG(t, path)
		})
	}
}

// darkRowsAbove counts dark pixels in the top band of a PNG, band given as a fraction of its height
func darkRowsAbove(t *testing.T, path string, fraction float64) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	b := img.Bounds()
	limit := b.Min.Y + int(float64(b.Dy())*fraction)
	dark := 0
	for y := b.Min.Y; y < limit; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && bl < 0x8000 {
				dark++
			}
		}
	}
	return dark
}

func TestSaveGrid_Title(t *testing.T) {
	dir := t.TempDir()
	height := 3 * vg.Inch
	// 제목 영역(상단 12mm)에는 타일이 그려지지 않음
	band := float64(vg.Millimeter * 12 / height)

	titled := filepath.Join(dir, "titled.png")
	require.NoError(t, saveGrid(titled, DashboardTitle, [][]*plot.Plot{{plot.New()}}, 4*vg.Inch, height))
	assert.Greater(t, darkRowsAbove(t, titled, band), 0)

	plain := filepath.Join(dir, "plain.png")
	require.NoError(t, saveGrid(plain, "", [][]*plot.Plot{{plot.New()}}, 4*vg.Inch, height))
	assert.Zero(t, darkRowsAbove(t, plain, float64(vg.Millimeter*3/height)))
}

func TestCharts_SingleDay(t *testing.T) {
	in := fearScenario(t)
	path := filepath.Join(t.TempDir(), "ts.png")
	require.NoError(t, TimeSeriesChart(path, in.Report))
	assertPNG(t, path)
}

func TestCharts_NoData(t *testing.T) {
	dir := t.TempDir()
	empty := &s4_analysis.Report{}

	assert.True(t, errors.Is(DashboardChart(filepath.Join(dir, "a.png"), empty), ErrNoChartData))
	assert.True(t, errors.Is(BuySellChart(filepath.Join(dir, "b.png"), empty), ErrNoChartData))
	assert.True(t, errors.Is(TimeSeriesChart(filepath.Join(dir, "c.png"), empty), ErrNoChartData))
	assert.True(t, errors.Is(HeatmapChart(filepath.Join(dir, "d.png"), stats.CorrelationMatrix{}), ErrNoChartData))

	_, err := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestHeatmapChart_UndefinedCells(t *testing.T) {
	m := stats.NewCorrelationMatrix(
		[]string{"pnl", "sentiment_numeric", "profitable"},
		[][]float64{{1, 2, 3}, {4, 4, 4}, {0, 1, 1}},
	)
	path := filepath.Join(t.TempDir(), "heat.png")
	require.NoError(t, HeatmapChart(path, m))
	assertPNG(t, path)
}

func TestCorrelationGrid(t *testing.T) {
	m := stats.NewCorrelationMatrix(
		[]string{"a", "b"},
		[][]float64{{1, 2, 3}, {3, 3, 3}},
	)
	g := correlationGrid{m: m}

	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	// 첫 행이 위쪽(r=1)에 그려짐
	assert.Equal(t, 1.0, g.Z(0, 1))
	assert.True(t, g.Z(1, 0) != g.Z(1, 0), "undefined cell is NaN")
}
