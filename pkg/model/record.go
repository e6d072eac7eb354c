package model

import "fmt"

const SchemaVersion = "v1"

type Level string

const (
	LevelI   Level = "I"
	LevelII  Level = "II"
	LevelIII Level = "III"
	LevelIV  Level = "IV"
)

// Levels lists every risk level from least to most severe.
var Levels = []Level{LevelI, LevelII, LevelIII, LevelIV}

func (l Level) Rank() int {
	switch l {
	case LevelI:
		return 1
	case LevelII:
		return 2
	case LevelIII:
		return 3
	case LevelIV:
		return 4
	default:
		return 0
	}
}

// IsHigh reports whether the level counts as a high risk (III or IV).
func (l Level) IsHigh() bool {
	return l == LevelIII || l == LevelIV
}

func (l Level) Valid() bool { return l.Rank() > 0 }

type Perspective string

const (
	PerspectiveBefore Perspective = "before"
	PerspectiveAfter  Perspective = "after"
)

func ParsePerspective(s string) (Perspective, error) {
	switch Perspective(s) {
	case PerspectiveBefore, "":
		return PerspectiveBefore, nil
	case PerspectiveAfter:
		return PerspectiveAfter, nil
	default:
		return "", fmt.Errorf("unknown perspective %q", s)
	}
}

type RankField string

const (
	FieldRiskScore   RankField = "riskScore"
	FieldSeverity    RankField = "severity"
	FieldProbability RankField = "probability"
	FieldExposure    RankField = "exposure"
)

var RankFields = []RankField{FieldRiskScore, FieldSeverity, FieldProbability, FieldExposure}

func ParseRankField(s string) (RankField, error) {
	for _, f := range RankFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown ranking field %q", s)
}

const (
	MeasureDesign      = "設計時対策"
	MeasureEngineering = "工学的対策"
	MeasureAdmin       = "管理的対策"
	MeasurePPE         = "個人用保護具"
)

// MeasureTypes is the recognized measure-type set in palette order.
var MeasureTypes = []string{MeasureDesign, MeasureEngineering, MeasureAdmin, MeasurePPE}

const DefaultImportMeasureType = MeasureAdmin

type RiskRecord struct {
	ID               int    `json:"id" yaml:"id"`
	Work             string `json:"work" yaml:"work"`
	WorkElement      string `json:"workElement" yaml:"workElement"`
	KnowledgeFile    string `json:"knowledgeFile" yaml:"knowledgeFile"`
	Reference        string `json:"reference" yaml:"reference"`
	Hazard           string `json:"hazard" yaml:"hazard"`
	RiskReduction    string `json:"riskReduction" yaml:"riskReduction"`
	MeasureType      string `json:"measureType" yaml:"measureType"`
	Severity         int    `json:"severity" yaml:"severity"`
	Probability      int    `json:"probability" yaml:"probability"`
	Exposure         int    `json:"exposure" yaml:"exposure"`
	RiskScore        int    `json:"riskScore" yaml:"riskScore"`
	RiskLevel        Level  `json:"riskLevel" yaml:"riskLevel"`
	SeverityAfter    int    `json:"severityAfter" yaml:"severityAfter"`
	ProbabilityAfter int    `json:"probabilityAfter" yaml:"probabilityAfter"`
	ExposureAfter    int    `json:"exposureAfter" yaml:"exposureAfter"`
	RiskScoreAfter   int    `json:"riskScoreAfter" yaml:"riskScoreAfter"`
	RiskLevelAfter   Level  `json:"riskLevelAfter" yaml:"riskLevelAfter"`
	CreatedAt        string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Value returns the numeric value of field for the given perspective.
func (r RiskRecord) Value(field RankField, p Perspective) (int, bool) {
	after := p == PerspectiveAfter
	switch field {
	case FieldRiskScore:
		if after {
			return r.RiskScoreAfter, true
		}
		return r.RiskScore, true
	case FieldSeverity:
		if after {
			return r.SeverityAfter, true
		}
		return r.Severity, true
	case FieldProbability:
		if after {
			return r.ProbabilityAfter, true
		}
		return r.Probability, true
	case FieldExposure:
		if after {
			return r.ExposureAfter, true
		}
		return r.Exposure, true
	}
	return 0, false
}

func (r RiskRecord) Level(p Perspective) Level {
	if p == PerspectiveAfter {
		return r.RiskLevelAfter
	}
	return r.RiskLevel
}
