package analysis

import "fmt"

type ErrorKind string

const (
	KindMalformedInput ErrorKind = "malformed_input"
	KindInvalidRecord  ErrorKind = "invalid_record"
	KindInternal       ErrorKind = "internal"
)

// ReportComputationError is the only error kind that leaves the report
// builder.
type ReportComputationError struct {
	Kind    ErrorKind
	Section string
	Err     error
}

func (e *ReportComputationError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("report computation failed (%s, section %s): %v", e.Kind, e.Section, e.Err)
	}
	return fmt.Sprintf("report computation failed (%s): %v", e.Kind, e.Err)
}

func (e *ReportComputationError) Unwrap() error { return e.Err }
