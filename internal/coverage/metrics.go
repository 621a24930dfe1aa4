package coverage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
)

// Metrics holds the normalized numbers of one coverage report.
// A Metrics value is never modified after construction.
type Metrics struct {
	identifier     string
	coveredPercent *float64
	fileCount      *int
	totalLines     int
	coveredLines   int
}

// document is the subset of a simplecov JSON report that covdiff reads.
// Pointer fields distinguish an absent key from a zero value.
type document struct {
	Metrics *struct {
		CoveredPercent *float64 `json:"covered_percent"`
		TotalLines     *int     `json:"total_lines"`
		CoveredLines   *int     `json:"covered_lines"`
	} `json:"metrics"`
	Files *[]json.RawMessage `json:"files"`
}

// New builds Metrics from already-typed values. A nil percent or files
// leaves that metric absent. The percent is rounded to two decimals.
func New(identifier string, percent *float64, files *int, total, covered int) *Metrics {
	m := &Metrics{
		identifier:   identifier,
		totalLines:   total,
		coveredLines: covered,
	}
	if percent != nil {
		p := round2(*percent)
		m.coveredPercent = &p
	}
	if files != nil {
		n := *files
		m.fileCount = &n
	}
	return m
}

// Parse decodes a simplecov JSON report.
func Parse(raw, identifier string) (*Metrics, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, &ParseError{Identifier: identifier, Err: errors.New("empty report")}
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, &ParseError{Identifier: identifier, Err: errors.New("report is not a JSON object")}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Identifier: identifier, Err: err}
	}

	if doc.Metrics == nil || doc.Metrics.TotalLines == nil {
		return nil, &MissingMetricError{Identifier: identifier, Field: "metrics.total_lines"}
	}
	if doc.Metrics.CoveredLines == nil {
		return nil, &MissingMetricError{Identifier: identifier, Field: "metrics.covered_lines"}
	}

	var files *int
	if doc.Files != nil {
		n := len(*doc.Files)
		files = &n
	}
	return New(identifier, doc.Metrics.CoveredPercent, files, *doc.Metrics.TotalLines, *doc.Metrics.CoveredLines), nil
}

// Identifier returns the report label, e.g. a pull request number or "master".
func (m *Metrics) Identifier() string { return m.identifier }

// CoveredPercent returns the covered percentage rounded to two decimals.
func (m *Metrics) CoveredPercent() (float64, bool) {
	if m.coveredPercent == nil {
		return 0, false
	}
	return *m.coveredPercent, true
}

// FileCount returns the number of files listed in the report.
func (m *Metrics) FileCount() (int, bool) {
	if m.fileCount == nil {
		return 0, false
	}
	return *m.fileCount, true
}

func (m *Metrics) TotalLines() int   { return m.totalLines }
func (m *Metrics) CoveredLines() int { return m.coveredLines }

// MissedLines is always TotalLines - CoveredLines.
func (m *Metrics) MissedLines() int { return m.totalLines - m.coveredLines }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
