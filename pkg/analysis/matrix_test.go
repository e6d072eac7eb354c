package analysis

import (
	"testing"

	"github.com/marek-kar/riskdash/pkg/model"
)

func TestCreateRiskMatrix(t *testing.T) {
	records := []model.RiskRecord{
		{ID: 1, Severity: 9, Probability: 5, SeverityAfter: 2, ProbabilityAfter: 2},
		{ID: 2, Severity: 2, Probability: 1, SeverityAfter: 2, ProbabilityAfter: 2},
		{ID: 3, Severity: 9, Probability: 5, SeverityAfter: 1, ProbabilityAfter: 1},
	}

	before := CreateRiskMatrix(records, model.PerspectiveBefore)
	if len(before) != 2 {
		t.Fatalf("expected 2 cells, got %+v", before)
	}
	if before[0].Severity != 2 || before[0].Probability != 1 || before[0].Count != 1 {
		t.Errorf("first cell: %+v", before[0])
	}
	if before[1].Severity != 9 || before[1].Count != 2 || !equalInts(before[1].RecordIDs, []int{1, 3}) {
		t.Errorf("second cell: %+v", before[1])
	}

	after := CreateRiskMatrix(records, model.PerspectiveAfter)
	if len(after) != 2 {
		t.Fatalf("expected 2 after cells, got %+v", after)
	}
	if after[0].Severity != 1 || after[1].Count != 2 {
		t.Errorf("after cells: %+v", after)
	}
}

func TestCreateRiskMatrix_SkipsOutOfDomain(t *testing.T) {
	records := []model.RiskRecord{{ID: 1, Severity: 0, Probability: 9}}
	if got := CreateRiskMatrix(records, model.PerspectiveBefore); len(got) != 0 {
		t.Errorf("expected no cells, got %+v", got)
	}
}
