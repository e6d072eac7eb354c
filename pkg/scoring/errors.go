package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/marek-kar/riskdash/pkg/model"
)

type InvalidFactorError struct {
	Factor Factor
	Value  float64
}

func (e *InvalidFactorError) Error() string {
	lo, hi := e.Factor.Domain()
	return fmt.Sprintf("%s must be an integer in [%d, %d], got %s", e.Factor, lo, hi, formatValue(e.Value))
}

type InvalidScoreError struct {
	Score float64
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("risk score must be a non-negative number, got %s", formatValue(e.Score))
}

// RecordError ties a factor or score failure to the record it came from.
type RecordError struct {
	ID          int
	Perspective model.Perspective
	Err         error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.ID, e.Perspective, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

func formatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
