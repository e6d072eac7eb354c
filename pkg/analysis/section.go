package analysis

import "github.com/marek-kar/riskdash/pkg/model"

// Section fills one part of a report bundle.
type Section interface {
	Name() string
	Apply(records []model.RiskRecord, b *model.Bundle) error
}

type StatsSection struct{}

func (StatsSection) Name() string { return "basic-stats" }

func (StatsSection) Apply(records []model.RiskRecord, b *model.Bundle) error {
	b.BasicStats = CalculateBasicStats(records)
	if len(records) == 0 {
		b.Metrics = model.Metrics{}
		return nil
	}
	m, err := CalculateMetrics(records)
	if err != nil {
		return err
	}
	b.Metrics = m
	return nil
}

type DistributionSection struct{}

func (DistributionSection) Name() string { return "level-distribution" }

func (DistributionSection) Apply(records []model.RiskRecord, b *model.Bundle) error {
	b.RiskLevelsBefore = CalculateRiskLevelDistribution(records, model.PerspectiveBefore)
	b.RiskLevelsAfter = CalculateRiskLevelDistribution(records, model.PerspectiveAfter)
	b.ComparisonData = CreateComparisonData(records)
	return nil
}

type MeasureTypeSection struct{}

func (MeasureTypeSection) Name() string { return "measure-types" }

func (MeasureTypeSection) Apply(records []model.RiskRecord, b *model.Bundle) error {
	b.MeasureTypeData = CalculateMeasureTypeDistribution(records)
	return nil
}

type MatrixSection struct{}

func (MatrixSection) Name() string { return "risk-matrix" }

func (MatrixSection) Apply(records []model.RiskRecord, b *model.Bundle) error {
	b.RiskMatrixBefore = CreateRiskMatrix(records, model.PerspectiveBefore)
	b.RiskMatrixAfter = CreateRiskMatrix(records, model.PerspectiveAfter)
	return nil
}

type RankingSection struct {
	Limit int
}

func (RankingSection) Name() string { return "rankings" }

func (s RankingSection) Apply(records []model.RiskRecord, b *model.Bundle) error {
	for _, p := range []model.Perspective{model.PerspectiveBefore, model.PerspectiveAfter} {
		for _, f := range model.RankFields {
			ranked, err := CreateRankingData(records, f, s.Limit, p)
			if err != nil {
				return err
			}
			b.Rankings.Set(f, p, ranked)
		}
	}
	return nil
}
