package model

import (
	"encoding/json"
	"testing"
)

func TestRiskRecordJSONFieldNames(t *testing.T) {
	r := RiskRecord{
		ID:               7,
		Work:             "足場組立",
		MeasureType:      MeasureEngineering,
		Severity:         9,
		Probability:      5,
		Exposure:         4,
		RiskScore:        18,
		RiskLevel:        LevelIV,
		SeverityAfter:    2,
		ProbabilityAfter: 2,
		ExposureAfter:    2,
		RiskScoreAfter:   6,
		RiskLevelAfter:   LevelI,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "workElement", "riskScoreAfter", "riskLevelAfter", "measureType"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if _, ok := raw["createdAt"]; ok {
		t.Errorf("createdAt should be omitted when empty")
	}
	if raw["riskLevel"] != "IV" {
		t.Errorf("riskLevel: got %v, want IV", raw["riskLevel"])
	}
}

func TestRiskRecordValue(t *testing.T) {
	r := RiskRecord{
		Severity: 9, Probability: 5, Exposure: 4, RiskScore: 18,
		SeverityAfter: 2, ProbabilityAfter: 3, ExposureAfter: 1, RiskScoreAfter: 6,
	}

	tests := []struct {
		field RankField
		p     Perspective
		want  int
	}{
		{FieldRiskScore, PerspectiveBefore, 18},
		{FieldRiskScore, PerspectiveAfter, 6},
		{FieldSeverity, PerspectiveBefore, 9},
		{FieldSeverity, PerspectiveAfter, 2},
		{FieldProbability, PerspectiveBefore, 5},
		{FieldProbability, PerspectiveAfter, 3},
		{FieldExposure, PerspectiveBefore, 4},
		{FieldExposure, PerspectiveAfter, 1},
	}
	for _, tt := range tests {
		got, ok := r.Value(tt.field, tt.p)
		if !ok {
			t.Fatalf("%s/%s: not ok", tt.field, tt.p)
		}
		if got != tt.want {
			t.Errorf("%s/%s: got %d, want %d", tt.field, tt.p, got, tt.want)
		}
	}

	if _, ok := r.Value("id", PerspectiveBefore); ok {
		t.Error("unknown field should not be ok")
	}
}

func TestLevelRank(t *testing.T) {
	if !LevelIII.IsHigh() || !LevelIV.IsHigh() {
		t.Error("III and IV must be high")
	}
	if LevelII.IsHigh() || LevelI.IsHigh() {
		t.Error("I and II must not be high")
	}
	if Level("V").Valid() {
		t.Error("V is not a level")
	}
	for i, l := range Levels {
		if l.Rank() != i+1 {
			t.Errorf("%s rank: got %d, want %d", l, l.Rank(), i+1)
		}
	}
}

func TestParsers(t *testing.T) {
	if p, err := ParsePerspective(""); err != nil || p != PerspectiveBefore {
		t.Errorf("empty perspective: got %q, %v", p, err)
	}
	if _, err := ParsePerspective("during"); err == nil {
		t.Error("expected error for unknown perspective")
	}
	if f, err := ParseRankField("exposure"); err != nil || f != FieldExposure {
		t.Errorf("exposure: got %q, %v", f, err)
	}
	if _, err := ParseRankField("riskLevel"); err == nil {
		t.Error("riskLevel is not a ranking field")
	}
}

func TestRankingsGetSet(t *testing.T) {
	var r Rankings
	recs := []RiskRecord{{ID: 1}}
	for _, f := range RankFields {
		for _, p := range []Perspective{PerspectiveBefore, PerspectiveAfter} {
			r.Set(f, p, recs)
			if got := r.Get(f, p); len(got) != 1 {
				t.Errorf("%s/%s: got %d records", f, p, len(got))
			}
		}
	}
}

func TestNewBundle(t *testing.T) {
	b := NewBundle()
	if b.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion: got %q, want %q", b.SchemaVersion, SchemaVersion)
	}
}
