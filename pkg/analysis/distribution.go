package analysis

import (
	"fmt"

	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

var measureTypeColors = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444"}

// CalculateRiskLevelDistribution always returns one entry per level, I to IV.
func CalculateRiskLevelDistribution(records []model.RiskRecord, p model.Perspective) []model.LevelCount {
	counts := make(map[model.Level]int, len(model.Levels))
	for _, r := range records {
		counts[r.Level(p)]++
	}

	out := make([]model.LevelCount, 0, len(model.Levels))
	for _, l := range model.Levels {
		out = append(out, model.LevelCount{
			Level: l,
			Count: counts[l],
			Color: scoring.GetRiskLevelColor(l),
		})
	}
	return out
}

func CreateComparisonData(records []model.RiskRecord) []model.ComparisonRow {
	before := CalculateRiskLevelDistribution(records, model.PerspectiveBefore)
	after := CalculateRiskLevelDistribution(records, model.PerspectiveAfter)

	rows := make([]model.ComparisonRow, len(model.Levels))
	for i, l := range model.Levels {
		rows[i] = model.ComparisonRow{
			Level:  l,
			Label:  fmt.Sprintf("レベル %s", l),
			Before: before[i].Count,
			After:  after[i].Count,
		}
	}
	return rows
}

// CalculateMeasureTypeDistribution counts records per measure type. A value
// outside model.MeasureTypes is counted as the first category, and colors
// follow the position in the returned slice rather than the category.
func CalculateMeasureTypeDistribution(records []model.RiskRecord) []model.MeasureTypeCount {
	counts := make(map[string]int, len(model.MeasureTypes))
	for _, r := range records {
		counts[measureBucket(r.MeasureType)]++
	}

	out := make([]model.MeasureTypeCount, 0, len(model.MeasureTypes))
	for _, name := range model.MeasureTypes {
		n := counts[name]
		if n == 0 {
			continue
		}
		out = append(out, model.MeasureTypeCount{
			Name:  name,
			Value: n,
			Color: measureTypeColors[len(out)%len(measureTypeColors)],
		})
	}
	return out
}

func measureBucket(t string) string {
	for _, name := range model.MeasureTypes {
		if t == name {
			return name
		}
	}
	return model.MeasureTypes[0]
}
