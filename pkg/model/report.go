package model

type LevelCount struct {
	Level Level  `json:"level" yaml:"level"`
	Count int    `json:"count" yaml:"count"`
	Color string `json:"color" yaml:"color"`
}

type ComparisonRow struct {
	Level  Level  `json:"level" yaml:"level"`
	Label  string `json:"label" yaml:"label"`
	Before int    `json:"before" yaml:"before"`
	After  int    `json:"after" yaml:"after"`
}

type MeasureTypeCount struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

type BasicStats struct {
	TotalRisks        int     `json:"totalRisks" yaml:"totalRisks"`
	HighRisks         int     `json:"highRisks" yaml:"highRisks"`
	HighRisksAfter    int     `json:"highRisksAfter" yaml:"highRisksAfter"`
	ImprovementRate   float64 `json:"improvementRate" yaml:"improvementRate"`
	RiskReductionRate float64 `json:"riskReductionRate" yaml:"riskReductionRate"`
}

type Metrics struct {
	TotalRisks            int     `json:"totalRisks" yaml:"totalRisks"`
	HighRisks             int     `json:"highRisks" yaml:"highRisks"`
	MediumRisks           int     `json:"mediumRisks" yaml:"mediumRisks"`
	LowRisks              int     `json:"lowRisks" yaml:"lowRisks"`
	AverageRiskScore      float64 `json:"averageRiskScore" yaml:"averageRiskScore"`
	AverageRiskScoreAfter float64 `json:"averageRiskScoreAfter" yaml:"averageRiskScoreAfter"`
	ImprovementRate       float64 `json:"improvementRate" yaml:"improvementRate"`
	RiskReductionRate     float64 `json:"riskReductionRate" yaml:"riskReductionRate"`
}

type MatrixCell struct {
	Severity    int   `json:"severity" yaml:"severity"`
	Probability int   `json:"probability" yaml:"probability"`
	Count       int   `json:"count" yaml:"count"`
	RecordIDs   []int `json:"recordIds" yaml:"recordIds"`
}

type Rankings struct {
	RiskScoreBefore   []RiskRecord `json:"riskScoreRankingBefore" yaml:"riskScoreRankingBefore"`
	SeverityBefore    []RiskRecord `json:"severityRankingBefore" yaml:"severityRankingBefore"`
	ProbabilityBefore []RiskRecord `json:"probabilityRankingBefore" yaml:"probabilityRankingBefore"`
	ExposureBefore    []RiskRecord `json:"exposureRankingBefore" yaml:"exposureRankingBefore"`
	RiskScoreAfter    []RiskRecord `json:"riskScoreRankingAfter" yaml:"riskScoreRankingAfter"`
	SeverityAfter     []RiskRecord `json:"severityRankingAfter" yaml:"severityRankingAfter"`
	ProbabilityAfter  []RiskRecord `json:"probabilityRankingAfter" yaml:"probabilityRankingAfter"`
	ExposureAfter     []RiskRecord `json:"exposureRankingAfter" yaml:"exposureRankingAfter"`
}

// Get returns the ranking for field and perspective, or nil for an unknown field.
func (r *Rankings) Get(field RankField, p Perspective) []RiskRecord {
	after := p == PerspectiveAfter
	switch field {
	case FieldRiskScore:
		if after {
			return r.RiskScoreAfter
		}
		return r.RiskScoreBefore
	case FieldSeverity:
		if after {
			return r.SeverityAfter
		}
		return r.SeverityBefore
	case FieldProbability:
		if after {
			return r.ProbabilityAfter
		}
		return r.ProbabilityBefore
	case FieldExposure:
		if after {
			return r.ExposureAfter
		}
		return r.ExposureBefore
	}
	return nil
}

func (r *Rankings) Set(field RankField, p Perspective, records []RiskRecord) {
	after := p == PerspectiveAfter
	switch field {
	case FieldRiskScore:
		if after {
			r.RiskScoreAfter = records
		} else {
			r.RiskScoreBefore = records
		}
	case FieldSeverity:
		if after {
			r.SeverityAfter = records
		} else {
			r.SeverityBefore = records
		}
	case FieldProbability:
		if after {
			r.ProbabilityAfter = records
		} else {
			r.ProbabilityBefore = records
		}
	case FieldExposure:
		if after {
			r.ExposureAfter = records
		} else {
			r.ExposureBefore = records
		}
	}
}

// Bundle is the full report computed from one collection of records.
type Bundle struct {
	SchemaVersion    string             `json:"schemaVersion" yaml:"schemaVersion"`
	BasicStats       BasicStats         `json:"basicStats" yaml:"basicStats"`
	Metrics          Metrics            `json:"metrics" yaml:"metrics"`
	RiskLevelsBefore []LevelCount       `json:"riskLevelsBefore" yaml:"riskLevelsBefore"`
	RiskLevelsAfter  []LevelCount       `json:"riskLevelsAfter" yaml:"riskLevelsAfter"`
	ComparisonData   []ComparisonRow    `json:"comparisonData" yaml:"comparisonData"`
	MeasureTypeData  []MeasureTypeCount `json:"measureTypeData" yaml:"measureTypeData"`
	RiskMatrixBefore []MatrixCell       `json:"riskMatrixBefore" yaml:"riskMatrixBefore"`
	RiskMatrixAfter  []MatrixCell       `json:"riskMatrixAfter" yaml:"riskMatrixAfter"`
	Rankings         Rankings           `json:"rankings" yaml:"rankings"`
}

func NewBundle() *Bundle {
	return &Bundle{SchemaVersion: SchemaVersion}
}
