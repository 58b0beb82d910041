package s5_report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sentilens/pkg/config"
	"github.com/wonny/sentilens/pkg/logger"
)

func TestReporter_WriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	r := NewReporter(Options{OutputDir: dir, Charts: true, Workbook: true}, logger.Nop())

	out, err := r.Write(context.Background(), richScenario(t))
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)

	for _, name := range []string{
		config.DailyStatsFile, config.MergedDataFile,
		config.DashboardChart, config.BuySellChart, config.TimeSeriesChart, config.HeatmapChart,
		config.WorkbookFile, config.ManifestFile,
	} {
		path := filepath.Join(dir, name)
		assert.Contains(t, out.Files, path)
		_, err := os.Stat(path)
		assert.NoError(t, err, name)
	}

	m, err := LoadManifest(filepath.Join(dir, config.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, out.Files, m.Outputs)
}

func TestReporter_OptionalOutputsDisabled(t *testing.T) {
	dir := t.TempDir()
	r := NewReporter(Options{OutputDir: dir}, logger.Nop())

	out, err := r.Write(context.Background(), fearScenario(t))
	require.NoError(t, err)

	assert.Len(t, out.Files, 3)
	_, err = os.Stat(filepath.Join(dir, config.DashboardChart))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, config.WorkbookFile))
	assert.True(t, os.IsNotExist(err))
}

func TestReporter_BuySellUnavailableWarns(t *testing.T) {
	dir := t.TempDir()
	in := buildInput(t, false,
		fixtureTrade{"2024-01-01", 1, 10, 3, ""},
		fixtureTrade{"2024-01-02", 5, 90, -1, ""},
	)
	r := NewReporter(Options{OutputDir: dir, Charts: true}, logger.Nop())

	out, err := r.Write(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], config.BuySellChart)
	assert.NotContains(t, out.Files, filepath.Join(dir, config.BuySellChart))
	assert.Contains(t, out.Files, filepath.Join(dir, config.DashboardChart))
}

func TestReporter_CSVFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	// 출력 경로에 디렉터리를 만들어 파일 쓰기를 실패시킴
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.DailyStatsFile), 0755))

	r := NewReporter(Options{OutputDir: dir}, logger.Nop())
	_, err := r.Write(context.Background(), fearScenario(t))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, config.DailyStatsFile+tempSuffix))
	assert.NoFileExists(t, filepath.Join(dir, config.MergedDataFile+tempSuffix))
}

func TestReporter_TablesWrittenTogether(t *testing.T) {
	dir := t.TempDir()
	// merged_data.csv 쓰기만 실패시킴
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.MergedDataFile+tempSuffix), 0755))

	r := NewReporter(Options{OutputDir: dir}, logger.Nop())
	_, err := r.Write(context.Background(), fearScenario(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.MergedDataFile)

	assert.NoFileExists(t, filepath.Join(dir, config.DailyStatsFile))
	assert.NoFileExists(t, filepath.Join(dir, config.DailyStatsFile+tempSuffix))
	assert.NoFileExists(t, filepath.Join(dir, config.ManifestFile))
}
