// Package scoring computes risk scores and levels from the three risk factors.
package scoring

import (
	"math"

	"github.com/marek-kar/riskdash/pkg/model"
)

const (
	MinSeverity    = 1
	MaxSeverity    = 10
	MinProbability = 1
	MaxProbability = 6
	MinExposure    = 1
	MaxExposure    = 6
)

// Level thresholds, checked highest first.
const (
	ThresholdIV  = 15
	ThresholdIII = 12
	ThresholdII  = 8
)

const DefaultColor = "#6b7280"

var levelColors = map[model.Level]string{
	model.LevelIV:  "#ef4444",
	model.LevelIII: "#f97316",
	model.LevelII:  "#eab308",
	model.LevelI:   "#22c55e",
}

type Factor string

const (
	FactorSeverity         Factor = "severity"
	FactorProbability      Factor = "probability"
	FactorExposure         Factor = "exposure"
	FactorSeverityAfter    Factor = "severityAfter"
	FactorProbabilityAfter Factor = "probabilityAfter"
	FactorExposureAfter    Factor = "exposureAfter"
)

func (f Factor) Domain() (int, int) {
	switch f {
	case FactorSeverity, FactorSeverityAfter:
		return MinSeverity, MaxSeverity
	case FactorProbability, FactorProbabilityAfter:
		return MinProbability, MaxProbability
	case FactorExposure, FactorExposureAfter:
		return MinExposure, MaxExposure
	}
	return 0, 0
}

func (f Factor) after() Factor {
	switch f {
	case FactorSeverity:
		return FactorSeverityAfter
	case FactorProbability:
		return FactorProbabilityAfter
	case FactorExposure:
		return FactorExposureAfter
	}
	return f
}

func checkFactor(f Factor, v int) error {
	lo, hi := f.Domain()
	if v < lo || v > hi {
		return &InvalidFactorError{Factor: f, Value: float64(v)}
	}
	return nil
}

// FactorFromFloat converts a decoded numeric value into a factor, rejecting
// fractional, non-finite and out-of-domain values.
func FactorFromFloat(f Factor, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &InvalidFactorError{Factor: f, Value: v}
	}
	lo, hi := f.Domain()
	if v < float64(lo) || v > float64(hi) {
		return 0, &InvalidFactorError{Factor: f, Value: v}
	}
	return int(v), nil
}

func CalculateRiskScore(severity, probability, exposure int) (int, error) {
	if err := checkFactor(FactorSeverity, severity); err != nil {
		return 0, err
	}
	if err := checkFactor(FactorProbability, probability); err != nil {
		return 0, err
	}
	if err := checkFactor(FactorExposure, exposure); err != nil {
		return 0, err
	}
	return severity + probability + exposure, nil
}

func GetRiskLevel(score float64) (model.Level, error) {
	if math.IsNaN(score) || score < 0 {
		return "", &InvalidScoreError{Score: score}
	}
	switch {
	case score >= ThresholdIV:
		return model.LevelIV, nil
	case score >= ThresholdIII:
		return model.LevelIII, nil
	case score >= ThresholdII:
		return model.LevelII, nil
	default:
		return model.LevelI, nil
	}
}

func LevelForScore(score int) (model.Level, error) {
	return GetRiskLevel(float64(score))
}

func GetRiskLevelColor(level model.Level) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return DefaultColor
}
