package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wonny/sentilens/internal/pipeline"
	"github.com/wonny/sentilens/internal/s5_report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "전체 파이프라인 실행",
	Long: `6단계 파이프라인을 순차적으로 실행하고 결과를 출력합니다.

각 단계:
- S0: Load (CSV 로드, 스키마 확정)
- S1: Clean (타임스탬프, 중복, 결측, 이상치)
- S2: Merge (날짜 기준 심리지수 결합)
- S3: Features (파생 피처)
- S4: Analysis (통계, 유의성 검정)
- S5: Report (CSV, 차트, 워크북, 매니페스트)

Flags:
  --dry-run    분석만 수행 (파일 출력 X)

Example:
  go run ./cmd/sentilens analyze
  go run ./cmd/sentilens analyze --dry-run`,
	RunE: runAnalyze,
}

var (
	analyzeDryRun bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Flags
	analyzeCmd.Flags().BoolVar(&analyzeDryRun, "dry-run", false, "분석만 수행 (파일 출력 X)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"data_dir":   cfg.DataDir,
		"output_dir": cfg.OutputDir,
		"dry_run":    analyzeDryRun,
	}).Info("Starting analysis")

	orchestrator := pipeline.New(cfg, log)
	result, err := orchestrator.Run(cmd.Context(), pipeline.RunConfig{DryRun: analyzeDryRun})
	if err != nil {
		log.WithError(err).Error("Pipeline run failed")
		return fmt.Errorf("pipeline run failed: %w", err)
	}

	out := cmd.OutOrStdout()
	s5_report.WriteText(out, result.ReportInput(), result.OutputFiles())

	p := s5_report.NewPrinter(out)
	if result.Output != nil {
		for _, w := range result.Output.Warnings {
			p.Warning(w)
		}
	}
	p.Success(fmt.Sprintf("Run %s completed in %s (%s trades analyzed)",
		result.RunID,
		result.Duration.Round(time.Millisecond),
		humanize.Comma(int64(len(result.Trades)))))

	return nil
}
