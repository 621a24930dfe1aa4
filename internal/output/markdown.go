package output

import (
	"io"

	"github.com/dshills/covdiff/internal/report"
)

// MarkdownWriter outputs the fenced diff table ready to post as a review
// comment, followed by the regression warning when there is one.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, r *report.Result) error {
	ew := &errWriter{w: w}
	ew.println(r.Body)
	if r.Warning != "" {
		ew.printf("\n> :warning: %s\n", r.Warning)
	}
	return ew.err
}
