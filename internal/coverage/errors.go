package coverage

import (
	"errors"
	"fmt"
)

// ErrMissingBaseline marks a comparison that has no baseline report.
// It is a soft condition: callers render the no-baseline table instead of failing.
var ErrMissingBaseline = errors.New("baseline report is missing")

// ParseError reports raw report text that is not a well-formed document.
type ParseError struct {
	Identifier string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing coverage report %q: %v", e.Identifier, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingMetricError reports a required numeric field absent from a report.
type MissingMetricError struct {
	Identifier string
	Field      string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("coverage report %q: missing required metric %s", e.Identifier, e.Field)
}
