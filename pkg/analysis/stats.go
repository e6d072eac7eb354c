package analysis

import (
	"errors"
	"math"

	"github.com/marek-kar/riskdash/pkg/model"
)

var ErrEmptyCollection = errors.New("risk collection is empty")

func CalculateBasicStats(records []model.RiskRecord) model.BasicStats {
	if len(records) == 0 {
		return model.BasicStats{}
	}

	var high, highAfter, sum, sumAfter int
	for _, r := range records {
		if r.RiskLevel.IsHigh() {
			high++
		}
		if r.RiskLevelAfter.IsHigh() {
			highAfter++
		}
		sum += r.RiskScore
		sumAfter += r.RiskScoreAfter
	}

	return model.BasicStats{
		TotalRisks:        len(records),
		HighRisks:         high,
		HighRisksAfter:    highAfter,
		ImprovementRate:   rate(high-highAfter, high),
		RiskReductionRate: rate(sum-sumAfter, sum),
	}
}

// CalculateMetrics extends the basic stats with per-level counts and average
// scores. Averages and rates are rounded to two decimals.
func CalculateMetrics(records []model.RiskRecord) (model.Metrics, error) {
	if len(records) == 0 {
		return model.Metrics{}, ErrEmptyCollection
	}

	basic := CalculateBasicStats(records)
	m := model.Metrics{
		TotalRisks:        basic.TotalRisks,
		HighRisks:         basic.HighRisks,
		ImprovementRate:   round2(basic.ImprovementRate),
		RiskReductionRate: round2(basic.RiskReductionRate),
	}

	var sum, sumAfter int
	for _, r := range records {
		switch r.RiskLevel {
		case model.LevelII:
			m.MediumRisks++
		case model.LevelI:
			m.LowRisks++
		}
		sum += r.RiskScore
		sumAfter += r.RiskScoreAfter
	}
	n := float64(len(records))
	m.AverageRiskScore = round2(float64(sum) / n)
	m.AverageRiskScoreAfter = round2(float64(sumAfter) / n)
	return m, nil
}

func rate(delta, base int) float64 {
	if base <= 0 {
		return 0
	}
	return float64(delta) / float64(base) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
