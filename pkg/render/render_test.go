package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/marek-kar/riskdash/pkg/model"
)

func testReport() *model.Bundle {
	b := model.NewBundle()
	b.BasicStats = model.BasicStats{TotalRisks: 2, HighRisks: 1, HighRisksAfter: 0, ImprovementRate: 100, RiskReductionRate: 58.33}
	b.Metrics = model.Metrics{
		TotalRisks: 2, HighRisks: 1, MediumRisks: 0, LowRisks: 1,
		AverageRiskScore: 12, AverageRiskScoreAfter: 5,
		ImprovementRate: 100, RiskReductionRate: 58.33,
	}
	b.ComparisonData = []model.ComparisonRow{
		{Level: model.LevelIV, Label: "レベル IV", Before: 1, After: 0},
		{Level: model.LevelIII, Label: "レベル III", Before: 0, After: 0},
		{Level: model.LevelII, Label: "レベル II", Before: 0, After: 0},
		{Level: model.LevelI, Label: "レベル I", Before: 1, After: 2},
	}
	b.MeasureTypeData = []model.MeasureTypeCount{
		{Name: model.MeasureEngineering, Value: 2, Color: "#3b82f6"},
	}
	high := model.RiskRecord{
		ID: 7, Work: "Scaffolding", Hazard: "Falling parts",
		Severity: 9, Probability: 5, Exposure: 4, RiskScore: 18, RiskLevel: model.LevelIV,
		SeverityAfter: 2, ProbabilityAfter: 2, ExposureAfter: 2, RiskScoreAfter: 6, RiskLevelAfter: model.LevelI,
	}
	b.Rankings.RiskScoreBefore = []model.RiskRecord{high}
	return b
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "table": FormatTable, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatTable).Render(&buf, testReport()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total risks:       2",
		"High (III/IV):     1 -> 0",
		"Average score:     12.00 -> 5.00",
		"Score reduction:   58.33%",
		"--- Risk levels ---",
		"--- Measure types ---",
		model.MeasureEngineering,
		"Falling parts",
		"--- Top risk scores (after) ---\n(none)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q\n%s", want, out)
		}
	}

	var levelLines int
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) == 3 && (f[0] == "I" || f[0] == "II" || f[0] == "III" || f[0] == "IV") {
			levelLines++
		}
	}
	if levelLines != 4 {
		t.Errorf("expected 4 level rows, got %d", levelLines)
	}

	var found bool
	for _, line := range strings.Split(out, "\n") {
		f := strings.Fields(line)
		if len(f) >= 3 && f[0] == "7" && f[1] == "18" && f[2] == "IV" {
			found = true
		}
	}
	if !found {
		t.Errorf("ranking row for record 7 not found\n%s", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatJSON).Render(&buf, testReport()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"schemaVersion", "basicStats", "metrics", "comparisonData", "measureTypeData", "rankings"} {
		if _, ok := got[key]; !ok {
			t.Errorf("json missing key %q", key)
		}
	}
	rankings := got["rankings"].(map[string]any)
	if _, ok := rankings["riskScoreRankingBefore"]; !ok {
		t.Error("rankings missing riskScoreRankingBefore")
	}
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := New(FormatYAML).Render(&buf, testReport()); err != nil {
		t.Fatalf("render: %v", err)
	}

	var got model.Bundle
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got.Metrics.RiskReductionRate != 58.33 {
		t.Errorf("riskReductionRate = %v, want 58.33", got.Metrics.RiskReductionRate)
	}
	if len(got.Rankings.RiskScoreBefore) != 1 || got.Rankings.RiskScoreBefore[0].ID != 7 {
		t.Errorf("unexpected rankings: %+v", got.Rankings.RiskScoreBefore)
	}
}
