package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/covdiff/internal/coverage"
	"github.com/dshills/covdiff/internal/diff"
	"github.com/dshills/covdiff/internal/report"
)

// JSONWriter outputs the comparison as a JSON document.
type JSONWriter struct{}

type jsonMetrics struct {
	Identifier     string   `json:"identifier"`
	CoveredPercent *float64 `json:"coveredPercent"`
	FileCount      *int     `json:"fileCount"`
	TotalLines     int      `json:"totalLines"`
	CoveredLines   int      `json:"coveredLines"`
	MissedLines    int      `json:"missedLines"`
}

type jsonResult struct {
	Current   jsonMetrics  `json:"current"`
	Baseline  *jsonMetrics `json:"baseline"`
	Rows      []diff.Row   `json:"rows"`
	Decreased bool         `json:"decreased"`
	Warning   string       `json:"warning,omitempty"`
	Body      string       `json:"body"`
}

func (j *JSONWriter) Write(w io.Writer, r *report.Result) error {
	doc := jsonResult{
		Current:   toJSONMetrics(r.Current),
		Rows:      r.Rows,
		Decreased: r.Decreased(),
		Warning:   r.Warning,
		Body:      r.Body,
	}
	if r.Baseline != nil {
		b := toJSONMetrics(r.Baseline)
		doc.Baseline = &b
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

func toJSONMetrics(m *coverage.Metrics) jsonMetrics {
	out := jsonMetrics{
		Identifier:   m.Identifier(),
		TotalLines:   m.TotalLines(),
		CoveredLines: m.CoveredLines(),
		MissedLines:  m.MissedLines(),
	}
	if v, ok := m.CoveredPercent(); ok {
		out.CoveredPercent = &v
	}
	if n, ok := m.FileCount(); ok {
		out.FileCount = &n
	}
	return out
}
