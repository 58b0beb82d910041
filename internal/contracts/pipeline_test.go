package contracts

import "testing"

func TestStage_ShortName(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageLoad, "S0"},
		{StageClean, "S1"},
		{StageMerge, "S2"},
		{StageFeatures, "S3"},
		{StageAnalysis, "S4"},
		{StageReport, "S5"},
		{Stage("S9_NOPE"), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.stage.ShortName(); got != tt.want {
			t.Errorf("%s.ShortName() = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestAllStages_Order(t *testing.T) {
	stages := AllStages()
	if len(stages) != 6 {
		t.Fatalf("AllStages() len = %d, want 6", len(stages))
	}
	if stages[0] != StageLoad || stages[5] != StageReport {
		t.Errorf("unexpected stage order: %v", stages)
	}
}

func TestIsValidStage(t *testing.T) {
	if !IsValidStage("S2_MERGE") {
		t.Error("S2_MERGE should be valid")
	}
	if IsValidStage("S2_SIGNALS") {
		t.Error("S2_SIGNALS should not be valid")
	}
}
