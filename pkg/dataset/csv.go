package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/marek-kar/riskdash/pkg/model"
)

const utf8BOM = "\ufeff"

func ReadCSV(r io.Reader, opts Options) ([]model.RiskRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	records, err := parseRows(rows, opts)
	if err != nil {
		return nil, err
	}
	return finish(records, opts)
}

func WriteCSV(w io.Writer, records []model.RiskRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
