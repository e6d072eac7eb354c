package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/marek-kar/riskdash/pkg/model"
)

const SnapshotSchemaVersion = "v1"

type Snapshot struct {
	SchemaVersion string             `json:"schemaVersion"`
	ExportedAt    time.Time          `json:"exportedAt"`
	Records       []model.RiskRecord `json:"records"`
}

func NewSnapshot(records []model.RiskRecord, now time.Time) Snapshot {
	return Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		ExportedAt:    now.UTC(),
		Records:       records,
	}
}

// ReadSnapshot accepts either a Snapshot document or a bare JSON array of
// records.
func ReadSnapshot(r io.Reader, opts Options) ([]model.RiskRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoData
	}

	var records []model.RiskRecord
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	} else {
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		records = snap.Records
	}
	return finish(records, opts)
}

func WriteSnapshot(w io.Writer, records []model.RiskRecord, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSnapshot(records, now)); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
