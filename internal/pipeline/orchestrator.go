package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s0_load"
	"github.com/wonny/sentilens/internal/s1_clean"
	"github.com/wonny/sentilens/internal/s2_merge"
	"github.com/wonny/sentilens/internal/s3_features"
	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/internal/s5_report"
	"github.com/wonny/sentilens/pkg/config"
	"github.com/wonny/sentilens/pkg/logger"
)

// Orchestrator coordinates the 6-stage pipeline
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Orchestrator struct {
	loader   *s0_load.Loader
	cleaner  *s1_clean.Cleaner
	merger   *s2_merge.Merger
	engine   *s3_features.Engine
	analyzer *s4_analysis.Analyzer
	reporter *s5_report.Reporter

	logger *logger.Logger
}

// RunConfig holds configuration for a pipeline run
type RunConfig struct {
	RunID  string // generated when empty
	DryRun bool   // if true, skip S5 (no files written)
}

// RunResult holds the results of a complete pipeline run
type RunResult struct {
	RunID           string
	StartedAt       time.Time
	Success         bool
	Error           error
	CompletedStages []string
	Stages          []contracts.PipelineResult
	Load            *s0_load.LoadResult
	Clean           *s1_clean.CleanResult
	Merge           *s2_merge.MergeResult
	Trades          []contracts.EnrichedTrade
	Report          *s4_analysis.Report
	Output          *s5_report.Output
	Duration        time.Duration
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	loader *s0_load.Loader,
	cleaner *s1_clean.Cleaner,
	merger *s2_merge.Merger,
	engine *s3_features.Engine,
	analyzer *s4_analysis.Analyzer,
	reporter *s5_report.Reporter,
	logger *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		loader:   loader,
		cleaner:  cleaner,
		merger:   merger,
		engine:   engine,
		analyzer: analyzer,
		reporter: reporter,
		logger:   logger,
	}
}

// New wires every stage from configuration
func New(cfg *config.Config, log *logger.Logger) *Orchestrator {
	return NewOrchestrator(
		s0_load.NewLoader(cfg.SentimentPath(), cfg.TradesPath(), log.WithStage(contracts.StageLoad.String())),
		s1_clean.NewCleaner(log.WithStage(contracts.StageClean.String())),
		s2_merge.NewMerger(log.WithStage(contracts.StageMerge.String())),
		s3_features.NewEngine(log.WithStage(contracts.StageFeatures.String())),
		s4_analysis.NewAnalyzer(log.WithStage(contracts.StageAnalysis.String())),
		s5_report.NewReporter(s5_report.Options{
			OutputDir: cfg.OutputDir,
			Charts:    cfg.ChartsEnabled,
			Workbook:  cfg.WorkbookEnabled,
		}, log.WithStage(contracts.StageReport.String())),
		log,
	)
}

// Run executes the complete pipeline
// S0 → S1 → S2 → S3 → S4 → S5
func (o *Orchestrator) Run(ctx context.Context, runConfig RunConfig) (*RunResult, error) {
	startTime := time.Now()

	if runConfig.RunID == "" {
		runConfig.RunID = uuid.NewString()
	}

	result := &RunResult{
		RunID:           runConfig.RunID,
		StartedAt:       startTime.UTC(),
		CompletedStages: make([]string, 0, len(contracts.AllStages())),
	}

	o.logger.WithFields(map[string]interface{}{
		"run_id":  runConfig.RunID,
		"dry_run": runConfig.DryRun,
	}).Info("Starting pipeline run")

	// S0: Load
	if err := o.stage(ctx, result, contracts.StageLoad, func() (int, int, error) {
		loaded, err := o.loader.Load(ctx)
		if err != nil {
			return 0, 0, err
		}
		result.Load = loaded
		return loaded.SentimentTable.NumRows() + loaded.TradeTable.NumRows(), loaded.TradeTable.NumRows(), nil
	}); err != nil {
		return result, err
	}

	// S1: Clean
	if err := o.stage(ctx, result, contracts.StageClean, func() (int, int, error) {
		cleaned, err := o.cleaner.Clean(ctx, result.Load.TradeTable, result.Load.TradeSchema)
		if err != nil {
			return 0, 0, err
		}
		result.Clean = cleaned
		return cleaned.Stats.InputRows, cleaned.Stats.OutputRows, nil
	}); err != nil {
		return result, err
	}

	// S2: Merge
	if err := o.stage(ctx, result, contracts.StageMerge, func() (int, int, error) {
		merged, err := o.merger.Merge(ctx, result.Clean.Trades, result.Load.Sentiment)
		if err != nil {
			return 0, 0, err
		}
		result.Merge = merged
		return merged.Before, merged.After, nil
	}); err != nil {
		return result, err
	}

	// S3: Features
	if err := o.stage(ctx, result, contracts.StageFeatures, func() (int, int, error) {
		trades, err := o.engine.Build(ctx, result.Merge.Trades, result.Load.TradeSchema.HasDirection())
		if err != nil {
			return 0, 0, err
		}
		result.Trades = trades
		return len(result.Merge.Trades), len(trades), nil
	}); err != nil {
		return result, err
	}

	// S4: Analysis
	if err := o.stage(ctx, result, contracts.StageAnalysis, func() (int, int, error) {
		report, err := o.analyzer.Analyze(ctx, result.Trades)
		if err != nil {
			return 0, 0, err
		}
		result.Report = report
		return len(result.Trades), len(report.Daily), nil
	}); err != nil {
		return result, err
	}

	// S5: Report (skip if dry run)
	if !runConfig.DryRun {
		if err := o.stage(ctx, result, contracts.StageReport, func() (int, int, error) {
			output, err := o.reporter.Write(ctx, result.ReportInput())
			if err != nil {
				return 0, 0, err
			}
			result.Output = output
			return len(result.Trades), len(output.Files), nil
		}); err != nil {
			return result, err
		}
	} else {
		o.logger.Info("Skipping S5:Report (dry run mode)")
	}

	// Mark success
	result.Success = true
	result.Duration = time.Since(startTime)

	o.logger.WithFields(map[string]interface{}{
		"run_id":   runConfig.RunID,
		"duration": result.Duration.Seconds(),
		"stages":   len(result.CompletedStages),
	}).Info("Pipeline run completed successfully")

	return result, nil
}

// stage runs one step, recording its PipelineResult.
// A cancelled context stops the run before the step starts.
func (o *Orchestrator) stage(ctx context.Context, result *RunResult, stage contracts.Stage, run func() (int, int, error)) error {
	if err := ctx.Err(); err != nil {
		result.Error = fmt.Errorf("%s cancelled: %w", stage.ShortName(), err)
		return result.Error
	}

	start := time.Now()
	in, out, err := run()
	record := contracts.PipelineResult{
		Stage:       stage,
		Success:     err == nil,
		InputCount:  in,
		OutputCount: out,
		Duration:    time.Since(start).Milliseconds(),
	}
	if err != nil {
		record.Error = err.Error()
		result.Stages = append(result.Stages, record)
		result.Error = fmt.Errorf("%s failed: %w", stage.ShortName(), err)
		o.logger.WithError(err).WithField("stage", stage.String()).Error("Pipeline stage failed")
		return result.Error
	}

	result.Stages = append(result.Stages, record)
	result.CompletedStages = append(result.CompletedStages, stage.ShortName()+":"+stage.Description())
	o.logger.WithFields(map[string]interface{}{
		"stage":       stage.String(),
		"input":       in,
		"output":      out,
		"duration_ms": record.Duration,
	}).Debug("Stage completed")
	return nil
}

// ReportInput bundles the stage outputs for the reporter and text summary
func (r *RunResult) ReportInput() *s5_report.Input {
	return &s5_report.Input{
		RunID:     r.RunID,
		StartedAt: r.StartedAt,
		Load:      r.Load,
		Clean:     r.Clean,
		Merge:     r.Merge,
		Trades:    r.Trades,
		Report:    r.Report,
		Stages:    r.Stages,
	}
}

// OutputFiles lists written files, empty for dry runs
func (r *RunResult) OutputFiles() []string {
	if r.Output == nil {
		return nil
	}
	return r.Output.Files
}
