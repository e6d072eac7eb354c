package analysis

import (
	"testing"

	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

func rec(t *testing.T, id, s, p, e, sa, pa, ea int, measure string) model.RiskRecord {
	t.Helper()
	r, err := scoring.RecomputeRecord(model.RiskRecord{
		ID:               id,
		MeasureType:      measure,
		Severity:         s,
		Probability:      p,
		Exposure:         e,
		SeverityAfter:    sa,
		ProbabilityAfter: pa,
		ExposureAfter:    ea,
	})
	if err != nil {
		t.Fatalf("recompute record %d: %v", id, err)
	}
	return r
}

// tenRecords returns a fixed collection whose before scores are
// 18, 15, 14, 12, 11, 9, 8, 7, 5, 3 and after scores are all lower.
func tenRecords(t *testing.T) []model.RiskRecord {
	t.Helper()
	return []model.RiskRecord{
		rec(t, 1, 9, 5, 4, 2, 2, 2, model.MeasureEngineering),
		rec(t, 2, 7, 4, 4, 4, 3, 3, model.MeasureAdmin),
		rec(t, 3, 8, 3, 3, 5, 2, 2, model.MeasurePPE),
		rec(t, 4, 6, 3, 3, 3, 2, 2, model.MeasureDesign),
		rec(t, 5, 5, 3, 3, 3, 2, 1, model.MeasureAdmin),
		rec(t, 6, 4, 3, 2, 2, 2, 2, "その他"),
		rec(t, 7, 4, 2, 2, 2, 1, 1, model.MeasureAdmin),
		rec(t, 8, 3, 2, 2, 1, 1, 1, model.MeasureEngineering),
		rec(t, 9, 2, 2, 1, 1, 1, 1, ""),
		rec(t, 10, 1, 1, 1, 1, 1, 1, model.MeasureAdmin),
	}
}
