package analysis

import (
	"fmt"
	"sort"

	"github.com/marek-kar/riskdash/pkg/model"
)

const DefaultRankingLimit = 5

type UnknownFieldError struct {
	Field model.RankField
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown ranking field %q", e.Field)
}

// CreateRankingData returns up to limit records ordered by field, highest
// first. Records with equal values keep their input order. The caller's
// slice is not reordered. A limit of zero or less means DefaultRankingLimit.
func CreateRankingData(records []model.RiskRecord, field model.RankField, limit int, p model.Perspective) ([]model.RiskRecord, error) {
	if _, ok := (model.RiskRecord{}).Value(field, p); !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	sorted := make([]model.RiskRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, _ := sorted[i].Value(field, p)
		vj, _ := sorted[j].Value(field, p)
		return vi > vj
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}
