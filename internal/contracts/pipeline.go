package contracts

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 매니페스트에서 이 상수를 사용해야 함
//
// 파이프라인 흐름:
//   S0 → S1 → S2 → S3 → S4 → S5
//   Load  Clean  Merge  Features  Analysis  Report

// Stage represents a pipeline stage
type Stage string

const (
	// StageLoad S0: 입력 CSV 로드 및 스키마 확정
	// 위치: internal/s0_load/
	StageLoad Stage = "S0_LOAD"

	// StageClean S1: 타임스탬프 정규화, 중복 제거, PnL 결측/이상치 제거
	// 위치: internal/s1_clean/
	StageClean Stage = "S1_CLEAN"

	// StageMerge S2: 날짜 기준 심리지수 결합
	// 위치: internal/s2_merge/
	StageMerge Stage = "S2_MERGE"

	// StageFeatures S3: 파생 피처 계산
	// 위치: internal/s3_features/
	StageFeatures Stage = "S3_FEATURES"

	// StageAnalysis S4: 통계 분석 및 유의성 검정
	// 위치: internal/s4_analysis/
	StageAnalysis Stage = "S4_ANALYSIS"

	// StageReport S5: CSV, 차트, 워크북, 매니페스트 출력
	// 위치: internal/s5_report/
	StageReport Stage = "S5_REPORT"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageLoad:
		return "S0"
	case StageClean:
		return "S1"
	case StageMerge:
		return "S2"
	case StageFeatures:
		return "S3"
	case StageAnalysis:
		return "S4"
	case StageReport:
		return "S5"
	default:
		return "UNKNOWN"
	}
}

// Description returns a human-readable description of the stage
func (s Stage) Description() string {
	switch s {
	case StageLoad:
		return "Load inputs"
	case StageClean:
		return "Clean trades"
	case StageMerge:
		return "Merge sentiment"
	case StageFeatures:
		return "Engineer features"
	case StageAnalysis:
		return "Analyze"
	case StageReport:
		return "Write reports"
	default:
		return "Unknown"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageLoad,
		StageClean,
		StageMerge,
		StageFeatures,
		StageAnalysis,
		StageReport,
	}
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	for _, stage := range AllStages() {
		if string(stage) == s {
			return true
		}
	}
	return false
}

// PipelineResult represents the result of a pipeline stage execution
type PipelineResult struct {
	Stage       Stage                  `json:"stage" yaml:"stage"`
	Success     bool                   `json:"success" yaml:"success"`
	InputCount  int                    `json:"input_count" yaml:"input_count"`
	OutputCount int                    `json:"output_count" yaml:"output_count"`
	Duration    int64                  `json:"duration_ms" yaml:"duration_ms"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
