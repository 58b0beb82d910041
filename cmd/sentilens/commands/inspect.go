package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s0_load"
	"github.com/wonny/sentilens/internal/s5_report"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "입력 파일 구조 확인",
	Long: `입력 CSV의 행/열 수, 컬럼 목록, 미리보기와
확정된 trade 스키마를 출력합니다. 파이프라인은 실행하지 않습니다.

Example:
  go run ./cmd/sentilens inspect`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	loader := s0_load.NewLoader(cfg.SentimentPath(), cfg.TradesPath(), log)
	report, err := loader.Inspect(cmd.Context())
	if err != nil {
		return fmt.Errorf("inspect inputs: %w", err)
	}

	printInspect(cmd.OutOrStdout(), report)
	return nil
}

func printInspect(w io.Writer, report *s0_load.InspectReport) {
	p := s5_report.NewPrinter(w)
	p.Banner("INPUT INSPECTION")

	printTable(p, "[SENTIMENT]", report.Sentiment)
	printCoverage(p, report)
	printTable(p, "[TRADES]", report.Trades)

	p.Section("[TRADE SCHEMA]")
	if report.SchemaErr != nil {
		p.Warning(report.SchemaErr.Error())
		return
	}
	printSchema(p, report.TradeSchema)
	p.Println()
}

func printTable(p *s5_report.Printer, title string, t s0_load.TableSummary) {
	const width = 10

	p.Section(title)
	p.KeyValue("File", t.Path, width)
	p.KeyValue("SHA256", t.SHA256, width)
	p.KeyValue("Shape", fmt.Sprintf("%s rows x %d columns", humanize.Comma(int64(t.Rows)), len(t.Columns)), width)
	p.KeyValue("Columns", strings.Join(t.Columns, ", "), width)

	if len(t.Preview) == 0 {
		return
	}
	p.Println()
	for _, row := range t.Preview {
		p.Printf("  %s\n", strings.Join(row, " | "))
	}
}

func printCoverage(p *s5_report.Printer, report *s0_load.InspectReport) {
	const width = 10

	p.Println()
	if report.CoverageErr != nil {
		p.Warning(report.CoverageErr.Error())
		return
	}
	c := report.Coverage
	if c == nil {
		return
	}
	span := "no valid rows"
	if c.Days > 0 {
		span = fmt.Sprintf("%s .. %s", c.First.Format(contracts.DateLayout), c.Last.Format(contracts.DateLayout))
	}
	p.KeyValue("Days", humanize.Comma(int64(c.Days)), width)
	p.KeyValue("Range", span, width)
	if c.Dropped > 0 || c.Duplicates > 0 {
		p.Warning(fmt.Sprintf("%d unparseable rows dropped, %d duplicate dates ignored", c.Dropped, c.Duplicates))
	}
}

func printSchema(p *s5_report.Printer, s *contracts.TradeSchema) {
	const width = 12

	column := func(name string, idx int, note string) string {
		v := fmt.Sprintf("%q (col %d)", name, idx)
		if note != "" {
			v += " " + note
		}
		return v
	}

	p.KeyValue("Hash", column(s.HashColumn, s.HashIndex, ""), width)

	note := ""
	if s.TimestampFallback {
		note = "[fallback: last column]"
	}
	p.KeyValue("Timestamp", column(s.TimestampColumn, s.TimestampIndex, note), width)

	note = ""
	if s.PnLRemapped {
		note = "[remapped]"
	}
	p.KeyValue("PnL", column(s.PnLColumn, s.PnLIndex, note), width)

	if s.HasDirection() {
		p.KeyValue("Direction", column(s.DirectionColumn, s.DirectionIndex, ""), width)
	} else {
		p.KeyValue("Direction", "not available (buy/sell analysis skipped)", width)
	}
}
