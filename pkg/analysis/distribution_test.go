package analysis

import (
	"testing"

	"github.com/marek-kar/riskdash/pkg/model"
)

func sumCounts(lc []model.LevelCount) int {
	n := 0
	for _, c := range lc {
		n += c.Count
	}
	return n
}

func TestCalculateRiskLevelDistribution_Empty(t *testing.T) {
	for _, p := range []model.Perspective{model.PerspectiveBefore, model.PerspectiveAfter} {
		got := CalculateRiskLevelDistribution(nil, p)
		if len(got) != 4 {
			t.Fatalf("%s: expected 4 entries, got %d", p, len(got))
		}
		for i, c := range got {
			if c.Level != model.Levels[i] {
				t.Errorf("%s: entry %d level %q, want %q", p, i, c.Level, model.Levels[i])
			}
			if c.Count != 0 {
				t.Errorf("%s: entry %d count %d, want 0", p, i, c.Count)
			}
		}
	}
}

func TestCalculateRiskLevelDistribution_Counts(t *testing.T) {
	records := tenRecords(t)

	before := CalculateRiskLevelDistribution(records, model.PerspectiveBefore)
	want := []int{3, 3, 2, 2}
	for i, c := range before {
		if c.Count != want[i] {
			t.Errorf("before %s: got %d, want %d", c.Level, c.Count, want[i])
		}
	}
	if sumCounts(before) != len(records) {
		t.Errorf("before counts sum to %d, want %d", sumCounts(before), len(records))
	}

	after := CalculateRiskLevelDistribution(records, model.PerspectiveAfter)
	wantAfter := []int{8, 2, 0, 0}
	for i, c := range after {
		if c.Count != wantAfter[i] {
			t.Errorf("after %s: got %d, want %d", c.Level, c.Count, wantAfter[i])
		}
	}

	if before[3].Color != "#ef4444" || before[0].Color != "#22c55e" {
		t.Errorf("unexpected colors: %+v", before)
	}
}

func TestCalculateRiskLevelDistribution_IgnoresUnknownLevels(t *testing.T) {
	records := []model.RiskRecord{{RiskLevel: "V"}, {RiskLevel: model.LevelII}}
	got := CalculateRiskLevelDistribution(records, model.PerspectiveBefore)
	if sumCounts(got) != 1 {
		t.Errorf("expected only the valid level counted, got %+v", got)
	}
}

func TestCreateComparisonData(t *testing.T) {
	rows := CreateComparisonData(tenRecords(t))
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Label != "レベル I" || rows[3].Label != "レベル IV" {
		t.Errorf("labels: %q, %q", rows[0].Label, rows[3].Label)
	}
	if rows[0].Before != 3 || rows[0].After != 8 {
		t.Errorf("level I: before=%d after=%d", rows[0].Before, rows[0].After)
	}
	if rows[3].Before != 2 || rows[3].After != 0 {
		t.Errorf("level IV: before=%d after=%d", rows[3].Before, rows[3].After)
	}
}

func TestCalculateMeasureTypeDistribution(t *testing.T) {
	got := CalculateMeasureTypeDistribution(tenRecords(t))

	// "その他" and "" fold into the design-stage bucket.
	want := []model.MeasureTypeCount{
		{Name: model.MeasureDesign, Value: 3, Color: "#3b82f6"},
		{Name: model.MeasureEngineering, Value: 2, Color: "#10b981"},
		{Name: model.MeasureAdmin, Value: 4, Color: "#f59e0b"},
		{Name: model.MeasurePPE, Value: 1, Color: "#ef4444"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCalculateMeasureTypeDistribution_OmitsZeroAndShiftsColors(t *testing.T) {
	records := []model.RiskRecord{
		{MeasureType: model.MeasureAdmin},
		{MeasureType: model.MeasurePPE},
		{MeasureType: model.MeasurePPE},
	}
	got := CalculateMeasureTypeDistribution(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %+v", got)
	}
	if got[0].Name != model.MeasureAdmin || got[0].Color != "#3b82f6" {
		t.Errorf("first entry: %+v", got[0])
	}
	if got[1].Name != model.MeasurePPE || got[1].Value != 2 || got[1].Color != "#10b981" {
		t.Errorf("second entry: %+v", got[1])
	}

	if got := CalculateMeasureTypeDistribution(nil); len(got) != 0 {
		t.Errorf("expected no entries for empty input, got %+v", got)
	}
}
