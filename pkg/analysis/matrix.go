package analysis

import (
	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

// CreateRiskMatrix groups records into severity x probability cells. Only
// non-empty cells are returned, severity-major in ascending order.
func CreateRiskMatrix(records []model.RiskRecord, p model.Perspective) []model.MatrixCell {
	type key struct{ s, p int }
	cells := make(map[key][]int)
	for _, r := range records {
		s, _ := r.Value(model.FieldSeverity, p)
		pr, _ := r.Value(model.FieldProbability, p)
		k := key{s, pr}
		cells[k] = append(cells[k], r.ID)
	}

	out := make([]model.MatrixCell, 0, len(cells))
	for s := scoring.MinSeverity; s <= scoring.MaxSeverity; s++ {
		for pr := scoring.MinProbability; pr <= scoring.MaxProbability; pr++ {
			ids, ok := cells[key{s, pr}]
			if !ok {
				continue
			}
			out = append(out, model.MatrixCell{
				Severity:    s,
				Probability: pr,
				Count:       len(ids),
				RecordIDs:   ids,
			})
		}
	}
	return out
}
