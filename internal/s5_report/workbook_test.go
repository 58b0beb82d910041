package s5_report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	in := richScenario(t)
	path := filepath.Join(t.TempDir(), "sentiment_report.xlsx")

	require.NoError(t, WriteWorkbook(path, in.Report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetBySentiment, SheetBuySell, SheetDaily}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Equal(t, []string{"Total Trades", "9"}, summary[1])

	bySentiment, err := f.GetRows(SheetBySentiment)
	require.NoError(t, err)
	require.Len(t, bySentiment, 6)
	assert.Equal(t, "Extreme Fear", bySentiment[1][0])
	assert.Equal(t, "Extreme Greed", bySentiment[5][0])

	buySell, err := f.GetRows(SheetBuySell)
	require.NoError(t, err)
	assert.Len(t, buySell, 6)

	daily, err := f.GetRows(SheetDaily)
	require.NoError(t, err)
	assert.Len(t, daily, len(in.Report.Daily)+1)
	assert.Equal(t, "2024-01-01", daily[1][0])
}
