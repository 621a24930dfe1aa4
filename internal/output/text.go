package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/covdiff/internal/report"
)

// TextWriter outputs the table without the markdown code fence.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, r *report.Result) error {
	ew := &errWriter{w: w}
	for _, line := range tableLines(r.Body) {
		ew.println(line)
	}
	return ew.err
}

// tableLines returns the body's lines without the opening and closing fence.
func tableLines(body string) []string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && lines[n-1] == "```" {
		lines = lines[:n-1]
	}
	return lines
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
