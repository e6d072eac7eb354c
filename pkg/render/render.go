package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/marek-kar/riskdash/pkg/model"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

type Renderer interface {
	Render(w io.Writer, report *model.Bundle) error
}

func New(f Format) Renderer {
	switch f {
	case FormatJSON:
		return &jsonRenderer{}
	case FormatYAML:
		return &yamlRenderer{}
	default:
		return &tableRenderer{}
	}
}

type jsonRenderer struct{}

func (r *jsonRenderer) Render(w io.Writer, report *model.Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

type yamlRenderer struct{}

func (r *yamlRenderer) Render(w io.Writer, report *model.Bundle) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

type tableRenderer struct{}

func (r *tableRenderer) Render(w io.Writer, report *model.Bundle) error {
	m := report.Metrics
	fmt.Fprintf(w, "Total risks:       %d\n", m.TotalRisks)
	fmt.Fprintf(w, "High (III/IV):     %d -> %d\n", report.BasicStats.HighRisks, report.BasicStats.HighRisksAfter)
	fmt.Fprintf(w, "Medium / Low:      %d / %d\n", m.MediumRisks, m.LowRisks)
	fmt.Fprintf(w, "Average score:     %.2f -> %.2f\n", m.AverageRiskScore, m.AverageRiskScoreAfter)
	fmt.Fprintf(w, "Improvement rate:  %.2f%%\n", m.ImprovementRate)
	fmt.Fprintf(w, "Score reduction:   %.2f%%\n", m.RiskReductionRate)

	fmt.Fprintf(w, "\n--- Risk levels ---\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "LEVEL\tBEFORE\tAFTER\n")
	for _, row := range report.ComparisonData {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", row.Level, row.Before, row.After)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n--- Measure types ---\n")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tCOUNT\n")
	for _, mt := range report.MeasureTypeData {
		fmt.Fprintf(tw, "%s\t%d\n", mt.Name, mt.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := rankingTable(w, "Top risk scores (before)", report.Rankings.RiskScoreBefore, model.PerspectiveBefore); err != nil {
		return err
	}
	return rankingTable(w, "Top risk scores (after)", report.Rankings.RiskScoreAfter, model.PerspectiveAfter)
}

func rankingTable(w io.Writer, title string, records []model.RiskRecord, p model.Perspective) error {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	if len(records) == 0 {
		fmt.Fprintf(w, "(none)\n")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSCORE\tLEVEL\tWORK\tHAZARD\n")
	for _, rec := range records {
		score, _ := rec.Value(model.FieldRiskScore, p)
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", rec.ID, score, rec.Level(p), rec.Work, rec.Hazard)
	}
	return tw.Flush()
}
