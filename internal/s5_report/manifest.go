package s5_report

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s1_clean"
	"github.com/wonny/sentilens/internal/s4_analysis"
)

// RunManifest 실행 스냅샷 (재현성용)
// 입력 해시와 단계별 결과로 같은 입력의 재실행 여부를 판단
type RunManifest struct {
	RunID      string                     `yaml:"run_id"`
	StartedAt  time.Time                  `yaml:"started_at"`
	FinishedAt time.Time                  `yaml:"finished_at"`
	Inputs     []InputFile                `yaml:"inputs"`
	Schema     SchemaSummary              `yaml:"trade_schema"`
	Stages     []contracts.PipelineResult `yaml:"stages"`
	Clean      s1_clean.CleanStats        `yaml:"clean"`
	Merge      MergeSummary               `yaml:"merge"`
	Overall    s4_analysis.OverallStats   `yaml:"overall"`
	Warnings   []string                   `yaml:"warnings,omitempty"`
	Outputs    []string                   `yaml:"outputs"`
}

// InputFile identifies an input by path and content hash
type InputFile struct {
	Path   string `yaml:"path"`
	SHA256 string `yaml:"sha256"`
	Rows   int    `yaml:"rows"`
}

// SchemaSummary is the resolved trade column mapping
type SchemaSummary struct {
	Hash              string `yaml:"hash"`
	Timestamp         string `yaml:"timestamp"`
	TimestampFallback bool   `yaml:"timestamp_fallback"`
	PnL               string `yaml:"pnl"`
	PnLRemapped       bool   `yaml:"pnl_remapped"`
	Direction         string `yaml:"direction,omitempty"`
}

// MergeSummary join counts
type MergeSummary struct {
	Before    int `yaml:"before"`
	After     int `yaml:"after"`
	Unmatched int `yaml:"unmatched"`
}

// NewRunManifest collects the reproducibility data of a run
func NewRunManifest(in *Input, outputs, warnings []string) *RunManifest {
	m := &RunManifest{
		RunID:      in.RunID,
		StartedAt:  in.StartedAt,
		FinishedAt: time.Now().UTC(),
		Stages:     in.Stages,
		Warnings:   warnings,
		Outputs:    outputs,
	}
	if in.Load != nil {
		for _, t := range []*contracts.Table{in.Load.SentimentTable, in.Load.TradeTable} {
			if t == nil {
				continue
			}
			m.Inputs = append(m.Inputs, InputFile{Path: t.Source, SHA256: t.SHA256, Rows: t.NumRows()})
		}
		if s := in.Load.TradeSchema; s != nil {
			m.Schema = SchemaSummary{
				Hash:              s.HashColumn,
				Timestamp:         s.TimestampColumn,
				TimestampFallback: s.TimestampFallback,
				PnL:               s.PnLColumn,
				PnLRemapped:       s.PnLRemapped,
				Direction:         s.DirectionColumn,
			}
		}
	}
	if in.Clean != nil {
		m.Clean = in.Clean.Stats
	}
	if in.Merge != nil {
		m.Merge = MergeSummary{Before: in.Merge.Before, After: in.Merge.After, Unmatched: in.Merge.Unmatched}
	}
	if in.Report != nil {
		m.Overall = in.Report.Overall
	}
	return m
}

// WriteManifest writes the manifest as YAML
func WriteManifest(path string, m *RunManifest) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadManifest reads a manifest back; unknown fields and stage names are an error
func LoadManifest(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m RunManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	for _, st := range m.Stages {
		if !contracts.IsValidStage(st.Stage.String()) {
			return nil, fmt.Errorf("manifest %s: unknown stage %q", path, st.Stage)
		}
	}
	return &m, nil
}
