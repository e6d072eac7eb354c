package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/marek-kar/riskdash/pkg/model"
)

const DateLayout = "2006-01-02"

// Headers is the fixed spreadsheet column order. Import and export both
// depend on it.
var Headers = []string{
	"ID",
	"作業",
	"作業要素",
	"使用ナレッジファイル名",
	"参照",
	"危険性・有害性",
	"リスク低減措置",
	"対策分類",
	"重篤度",
	"発生確率",
	"暴露頻度",
	"リスク点数",
	"リスクレベル",
	"低減後重篤度",
	"低減後発生確率",
	"低減後暴露頻度",
	"低減後リスク点数",
	"低減後リスクレベル",
	"作成日",
	"更新日",
}

const (
	colID = iota
	colWork
	colWorkElement
	colKnowledgeFile
	colReference
	colHazard
	colRiskReduction
	colMeasureType
	colSeverity
	colProbability
	colExposure
	colRiskScore
	colRiskLevel
	colSeverityAfter
	colProbabilityAfter
	colExposureAfter
	colRiskScoreAfter
	colRiskLevelAfter
	colCreatedAt
	colUpdatedAt
)

// Import defaults for blank or unreadable cells.
const (
	defaultFactor = 1
	defaultScore  = 3
	defaultLevel  = model.LevelI
)

var (
	ErrNoData            = errors.New("no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Values returns the record as spreadsheet cells with numbers kept numeric.
func Values(r model.RiskRecord) []any {
	return []any{
		r.ID,
		r.Work,
		r.WorkElement,
		r.KnowledgeFile,
		r.Reference,
		r.Hazard,
		r.RiskReduction,
		r.MeasureType,
		r.Severity,
		r.Probability,
		r.Exposure,
		r.RiskScore,
		string(r.RiskLevel),
		r.SeverityAfter,
		r.ProbabilityAfter,
		r.ExposureAfter,
		r.RiskScoreAfter,
		string(r.RiskLevelAfter),
		r.CreatedAt,
		r.UpdatedAt,
	}
}

func Row(r model.RiskRecord) []string {
	vals := Values(r)
	out := make([]string, len(vals))
	for i, v := range vals {
		switch t := v.(type) {
		case int:
			out[i] = strconv.Itoa(t)
		case string:
			out[i] = t
		}
	}
	return out
}

// ParseRow reads one data row. Missing or unreadable cells fall back to the
// import defaults; an unreadable ID becomes fallbackID.
func ParseRow(row []string, fallbackID int, today string) model.RiskRecord {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	text := func(i int, def string) string {
		if v := cell(i); v != "" {
			return v
		}
		return def
	}
	num := func(i int, def int) int {
		if n, ok := parseInt(cell(i)); ok && n != 0 {
			return n
		}
		return def
	}

	return model.RiskRecord{
		ID:               num(colID, fallbackID),
		Work:             cell(colWork),
		WorkElement:      cell(colWorkElement),
		KnowledgeFile:    cell(colKnowledgeFile),
		Reference:        cell(colReference),
		Hazard:           cell(colHazard),
		RiskReduction:    cell(colRiskReduction),
		MeasureType:      text(colMeasureType, model.DefaultImportMeasureType),
		Severity:         num(colSeverity, defaultFactor),
		Probability:      num(colProbability, defaultFactor),
		Exposure:         num(colExposure, defaultFactor),
		RiskScore:        num(colRiskScore, defaultScore),
		RiskLevel:        model.Level(text(colRiskLevel, string(defaultLevel))),
		SeverityAfter:    num(colSeverityAfter, defaultFactor),
		ProbabilityAfter: num(colProbabilityAfter, defaultFactor),
		ExposureAfter:    num(colExposureAfter, defaultFactor),
		RiskScoreAfter:   num(colRiskScoreAfter, defaultScore),
		RiskLevelAfter:   model.Level(text(colRiskLevelAfter, string(defaultLevel))),
		CreatedAt:        text(colCreatedAt, today),
		UpdatedAt:        text(colUpdatedAt, today),
	}
}

// parseInt accepts plain integers and integral decimals such as "3.0",
// which spreadsheet tools commonly produce.
func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// parseRows converts a header row followed by data rows into records.
func parseRows(rows [][]string, opts Options) ([]model.RiskRecord, error) {
	if len(rows) < 2 {
		return nil, ErrNoData
	}

	today := opts.today()
	records := make([]model.RiskRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[colID]) == "" {
			continue
		}
		records = append(records, ParseRow(row, len(records)+1, today))
	}
	return records, nil
}
