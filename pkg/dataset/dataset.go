// Package dataset moves risk records in and out of CSV, XLSX and JSON files
// using the fixed 20-column spreadsheet layout.
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func Read(r io.Reader, f Format, opts Options) ([]model.RiskRecord, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatXLSX:
		return ReadXLSX(r, opts)
	case FormatJSON:
		return ReadSnapshot(r, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func Write(w io.Writer, f Format, records []model.RiskRecord) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	case FormatJSON:
		return WriteSnapshot(w, records, time.Now())
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func Load(path string, opts Options) ([]model.RiskRecord, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := Read(file, f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

func Save(path string, records []model.RiskRecord) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(file, f, records); err != nil {
		file.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return file.Close()
}

func finish(records []model.RiskRecord, opts Options) ([]model.RiskRecord, error) {
	if !opts.Recompute {
		return records, nil
	}
	out, err := scoring.RecomputeAll(records)
	if err != nil {
		return nil, fmt.Errorf("recompute imported records: %w", err)
	}
	return out, nil
}
