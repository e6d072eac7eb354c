package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marek-kar/riskdash/pkg/logging"
	"github.com/marek-kar/riskdash/pkg/model"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

type Options struct {
	RankingLimit int
	// Recompute derives scores and levels from the factors before any
	// aggregation, so stale derived fields never reach the report.
	Recompute bool
}

func DefaultOptions() Options {
	return Options{
		RankingLimit: DefaultRankingLimit,
		Recompute:    true,
	}
}

type Engine struct {
	opts     Options
	sections []Section
	log      logging.Logger
}

func NewEngine(opts Options, log logging.Logger, sections ...Section) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{opts: opts, sections: sections, log: log}
}

func DefaultEngine(opts Options, log logging.Logger) *Engine {
	return NewEngine(opts, log,
		StatsSection{},
		DistributionSection{},
		MeasureTypeSection{},
		MatrixSection{},
		RankingSection{Limit: opts.RankingLimit},
	)
}

func (e *Engine) Register(s Section) {
	e.sections = append(e.sections, s)
}

func (e *Engine) Options() Options { return e.opts }

// Build computes a bundle from records. The caller's slice is never modified.
func (e *Engine) Build(records []model.RiskRecord) (*model.Bundle, error) {
	work := make([]model.RiskRecord, len(records))
	copy(work, records)

	if e.opts.Recompute {
		recomputed, err := scoring.RecomputeAll(work)
		if err != nil {
			return nil, &ReportComputationError{Kind: KindInvalidRecord, Err: err}
		}
		work = recomputed
	}

	b := model.NewBundle()
	for _, s := range e.sections {
		if err := s.Apply(work, b); err != nil {
			return nil, &ReportComputationError{Kind: kindOf(err), Section: s.Name(), Err: err}
		}
	}
	return b, nil
}

type Result struct {
	Bundle *model.Bundle
	Err    *ReportComputationError
}

func (r Result) OK() bool { return r.Err == nil && r.Bundle != nil }

// BuildReport is the recovery boundary for report computation. It accepts a
// record slice, a pointer to one, or a JSON array, and reports every failure
// as a ReportComputationError in the result instead of returning or panicking.
func (e *Engine) BuildReport(input any) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: &ReportComputationError{Kind: KindInternal, Err: fmt.Errorf("panic: %v", p)}}
		}
		if res.Err != nil {
			e.log.Error("report computation failed",
				logging.String("kind", string(res.Err.Kind)),
				logging.String("section", res.Err.Section),
				logging.Err(res.Err.Err),
			)
			return
		}
		e.log.Debug("report built",
			logging.Int("records", res.Bundle.BasicStats.TotalRisks),
			logging.Duration("took", time.Since(start)),
		)
	}()

	records, err := toRecords(input)
	if err != nil {
		return Result{Err: &ReportComputationError{Kind: KindMalformedInput, Err: err}}
	}

	b, err := e.Build(records)
	if err != nil {
		var rce *ReportComputationError
		if errors.As(err, &rce) {
			return Result{Err: rce}
		}
		return Result{Err: &ReportComputationError{Kind: KindInternal, Err: err}}
	}
	return Result{Bundle: b}
}

var errNotArray = errors.New("input is not an array of risk records")

func toRecords(input any) ([]model.RiskRecord, error) {
	switch v := input.(type) {
	case []model.RiskRecord:
		return v, nil
	case *[]model.RiskRecord:
		if v == nil {
			return nil, errNotArray
		}
		return *v, nil
	case json.RawMessage:
		return DecodeRecords(v)
	case []byte:
		return DecodeRecords(v)
	default:
		return nil, fmt.Errorf("%w: got %T", errNotArray, input)
	}
}

// DecodeRecords parses a JSON array of records. Any other JSON value is
// rejected.
func DecodeRecords(data []byte) ([]model.RiskRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}
	var records []model.RiskRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func kindOf(err error) ErrorKind {
	var fe *scoring.InvalidFactorError
	var se *scoring.InvalidScoreError
	if errors.As(err, &fe) || errors.As(err, &se) {
		return KindInvalidRecord
	}
	return KindInternal
}
