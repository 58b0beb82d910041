package s5_report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s0_load"
	"github.com/wonny/sentilens/internal/s1_clean"
	"github.com/wonny/sentilens/internal/s2_merge"
	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/pkg/config"
	"github.com/wonny/sentilens/pkg/logger"
)

// Input is everything the earlier stages produced
type Input struct {
	RunID     string
	StartedAt time.Time
	Load      *s0_load.LoadResult
	Clean     *s1_clean.CleanResult
	Merge     *s2_merge.MergeResult
	Trades    []contracts.EnrichedTrade
	Report    *s4_analysis.Report
	Stages    []contracts.PipelineResult
}

// Output lists the files written and the degraded steps
type Output struct {
	Files    []string
	Warnings []string
}

// Options toggles the optional outputs
type Options struct {
	OutputDir string
	Charts    bool
	Workbook  bool
}

// tempSuffix marks tables that are still being written
const tempSuffix = ".tmp"

// tableWriter writes one required table to the given path
type tableWriter struct {
	name  string
	write func(path string) error
}

// Reporter implements S5: writes every output file
// ⭐ SSOT: 출력 파일 쓰기는 여기서만
type Reporter struct {
	opts   Options
	logger *logger.Logger
}

// NewReporter creates a new reporter
func NewReporter(opts Options, log *logger.Logger) *Reporter {
	return &Reporter{opts: opts, logger: log}
}

// Write emits CSVs, charts, workbook and manifest.
// CSV and manifest failures are fatal; charts and workbook only warn.
func (r *Reporter) Write(ctx context.Context, in *Input) (*Output, error) {
	if err := os.MkdirAll(r.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	out := &Output{}

	tables := []tableWriter{
		{config.DailyStatsFile, func(p string) error { return WriteDailyStats(p, in.Report.Daily) }},
		{config.MergedDataFile, func(p string) error { return WriteMergedData(p, in.Load.TradeTable.Header, in.Trades) }},
	}
	paths, err := r.writeTables(tables)
	if err != nil {
		return nil, err
	}
	out.Files = append(out.Files, paths...)

	r.logger.WithFields(map[string]interface{}{
		"daily_rows":  len(in.Report.Daily),
		"merged_rows": len(in.Trades),
	}).Info("Saved tables")

	if r.opts.Charts {
		charts := []struct {
			name string
			draw func(path string) error
		}{
			{config.DashboardChart, func(p string) error { return DashboardChart(p, in.Report) }},
			{config.BuySellChart, func(p string) error { return BuySellChart(p, in.Report) }},
			{config.TimeSeriesChart, func(p string) error { return TimeSeriesChart(p, in.Report) }},
			{config.HeatmapChart, func(p string) error { return HeatmapChart(p, in.Report.Correlation) }},
		}
		for _, c := range charts {
			path := r.path(c.name)
			if err := c.draw(path); err != nil {
				r.warn(out, c.name, err)
				continue
			}
			out.Files = append(out.Files, path)
			r.logger.WithField("file", path).Info("Saved chart")
		}
	}

	if r.opts.Workbook {
		path := r.path(config.WorkbookFile)
		if err := WriteWorkbook(path, in.Report); err != nil {
			r.warn(out, config.WorkbookFile, err)
		} else {
			out.Files = append(out.Files, path)
			r.logger.WithField("file", path).Info("Saved workbook")
		}
	}

	manifestPath := r.path(config.ManifestFile)
	files := append(append([]string{}, out.Files...), manifestPath)
	manifest := NewRunManifest(in, files, out.Warnings)
	if err := WriteManifest(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write %s: %w", config.ManifestFile, err)
	}
	out.Files = files

	return out, nil
}

// writeTables writes every table to a temporary name and renames them only
// once all succeeded, so a failed run leaves no partial table set behind.
func (r *Reporter) writeTables(tables []tableWriter) ([]string, error) {
	temps := make([]string, 0, len(tables))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for _, t := range tables {
		tmp := r.path(t.name) + tempSuffix
		temps = append(temps, tmp)
		if err := t.write(tmp); err != nil {
			cleanup()
			return nil, fmt.Errorf("write %s: %w", t.name, err)
		}
	}

	paths := make([]string, 0, len(tables))
	for i, t := range tables {
		final := r.path(t.name)
		if err := os.Rename(temps[i], final); err != nil {
			cleanup()
			for _, done := range paths {
				_ = os.Remove(done)
			}
			return nil, fmt.Errorf("write %s: %w", t.name, err)
		}
		paths = append(paths, final)
	}
	return paths, nil
}

func (r *Reporter) path(name string) string {
	return filepath.Join(r.opts.OutputDir, name)
}

func (r *Reporter) warn(out *Output, name string, err error) {
	msg := fmt.Sprintf("%s: %v", name, err)
	if errors.Is(err, ErrNoChartData) {
		msg = fmt.Sprintf("%s skipped: %v", name, err)
	}
	out.Warnings = append(out.Warnings, msg)
	r.logger.WithError(err).WithField("file", name).Warn("Output not written")
}
