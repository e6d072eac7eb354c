package dataset

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/marek-kar/riskdash/pkg/model"
)

const SheetName = "リスクアセスメント"

const (
	minColWidth = 10
	maxColWidth = 50
)

// ReadXLSX imports the first worksheet of a workbook.
func ReadXLSX(r io.Reader, opts Options) ([]model.RiskRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records, err := parseRows(rows, opts)
	if err != nil {
		return nil, err
	}
	return finish(records, opts)
}

func WriteXLSX(w io.Writer, records []model.RiskRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	widths := make([]int, len(Headers))
	for i, h := range Headers {
		widths[i] = utf8.RuneCountInString(h)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := Values(r)
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
		for j, s := range Row(r) {
			if n := utf8.RuneCountInString(s); n > widths[j] {
				widths[j] = n
			}
		}
	}

	if err := styleHeader(f, len(Headers)); err != nil {
		return err
	}
	for i, n := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(columnWidth(n))); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func styleHeader(f *excelize.File, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F46E5"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, "A1", last, style)
}

// columnWidth pads the longest cell by two characters and clamps it.
func columnWidth(maxLen int) int {
	w := maxLen + 2
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}
