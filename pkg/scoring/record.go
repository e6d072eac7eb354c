package scoring

import (
	"errors"

	"github.com/marek-kar/riskdash/pkg/model"
)

// RecomputeRecord returns a copy of r with both scores and levels derived
// from its factors. Nothing is returned on failure, so callers never apply a
// partial update.
func RecomputeRecord(r model.RiskRecord) (model.RiskRecord, error) {
	score, level, err := scoreAndLevel(r.Severity, r.Probability, r.Exposure)
	if err != nil {
		return model.RiskRecord{}, &RecordError{ID: r.ID, Perspective: model.PerspectiveBefore, Err: err}
	}

	scoreAfter, levelAfter, err := scoreAndLevel(r.SeverityAfter, r.ProbabilityAfter, r.ExposureAfter)
	if err != nil {
		var fe *InvalidFactorError
		if errors.As(err, &fe) {
			fe.Factor = fe.Factor.after()
		}
		return model.RiskRecord{}, &RecordError{ID: r.ID, Perspective: model.PerspectiveAfter, Err: err}
	}

	out := r
	out.RiskScore = score
	out.RiskLevel = level
	out.RiskScoreAfter = scoreAfter
	out.RiskLevelAfter = levelAfter
	return out, nil
}

func RecomputeAll(records []model.RiskRecord) ([]model.RiskRecord, error) {
	out := make([]model.RiskRecord, len(records))
	for i, r := range records {
		rec, err := RecomputeRecord(r)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

func scoreAndLevel(s, p, e int) (int, model.Level, error) {
	score, err := CalculateRiskScore(s, p, e)
	if err != nil {
		return 0, "", err
	}
	level, err := LevelForScore(score)
	if err != nil {
		return 0, "", err
	}
	return score, level, nil
}
