package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/covdiff/internal/report"
)

const (
	curReport  = `{"metrics":{"covered_percent":80.0,"total_lines":100,"covered_lines":80},"files":[{},{}]}`
	baseReport = `{"metrics":{"covered_percent":85.0,"total_lines":100,"covered_lines":85},"files":[{},{}]}`
)

func decreased(t *testing.T) *report.Result {
	t.Helper()
	r, err := report.FromText(curReport, baseReport, report.Options{Identifier: "42", ShowWarning: true})
	if err != nil {
		t.Fatalf("FromText error: %v", err)
	}
	return r
}

func TestGetWriter(t *testing.T) {
	for _, f := range Formats {
		if _, err := GetWriter(f); err != nil {
			t.Errorf("GetWriter(%q) error: %v", f, err)
		}
	}
	if _, err := GetWriter("sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestMarkdownWriter(t *testing.T) {
	r := decreased(t)

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, r.Body+"\n") {
		t.Errorf("output should start with the rendered body, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n> :warning: Code coverage decreased from 85.0% to 80.0%\n") {
		t.Errorf("output should end with the warning, got:\n%s", out)
	}
}

func TestMarkdownWriter_NoWarning(t *testing.T) {
	r, err := report.FromText(curReport, curReport, report.Options{Identifier: "42", ShowWarning: true})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if buf.String() != r.Body+"\n" {
		t.Errorf("output = %q, want body only", buf.String())
	}
}

func TestTextWriter(t *testing.T) {
	r := decreased(t)

	var buf bytes.Buffer
	if err := (&TextWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "```") {
		t.Error("text output should not contain code fences")
	}
	if !strings.HasPrefix(out, "@@           Coverage Diff            @@\n") {
		t.Errorf("text output should start with the banner, got:\n%s", out)
	}
	if !strings.Contains(out, "- Coverage    85.0%    80.0%  -5.00%\n") {
		t.Errorf("text output missing coverage row:\n%s", out)
	}
	if strings.Contains(out, "Warning") {
		t.Error("text output should leave the warning to stderr")
	}
}

func TestJSONWriter(t *testing.T) {
	r := decreased(t)

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var got struct {
		Current struct {
			Identifier     string   `json:"identifier"`
			CoveredPercent *float64 `json:"coveredPercent"`
			FileCount      *int     `json:"fileCount"`
			MissedLines    int      `json:"missedLines"`
		} `json:"current"`
		Baseline *struct {
			Identifier string `json:"identifier"`
		} `json:"baseline"`
		Rows []struct {
			Title  string `json:"title"`
			Marker string `json:"marker"`
			Delta  string `json:"delta"`
		} `json:"rows"`
		Decreased bool   `json:"decreased"`
		Warning   string `json:"warning"`
		Body      string `json:"body"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got.Current.Identifier != "42" {
		t.Errorf("current.identifier = %q", got.Current.Identifier)
	}
	if got.Current.CoveredPercent == nil || *got.Current.CoveredPercent != 80 {
		t.Errorf("current.coveredPercent = %v", got.Current.CoveredPercent)
	}
	if got.Current.FileCount == nil || *got.Current.FileCount != 2 {
		t.Errorf("current.fileCount = %v", got.Current.FileCount)
	}
	if got.Current.MissedLines != 20 {
		t.Errorf("current.missedLines = %d", got.Current.MissedLines)
	}
	if got.Baseline == nil || got.Baseline.Identifier != "master" {
		t.Errorf("baseline = %+v", got.Baseline)
	}
	if len(got.Rows) != 4 || got.Rows[0].Marker != "- " || got.Rows[0].Delta != "-5.00%" {
		t.Errorf("rows = %+v", got.Rows)
	}
	if !got.Decreased || got.Warning == "" {
		t.Errorf("decreased = %v, warning = %q", got.Decreased, got.Warning)
	}
	if got.Body != r.Body {
		t.Errorf("body mismatch")
	}
}

func TestJSONWriter_NoBaseline(t *testing.T) {
	r, err := report.FromText(`{"metrics":{"total_lines":1,"covered_lines":1}}`, "", report.Options{Identifier: "1"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"baseline": null`, `"coveredPercent": null`, `"fileCount": null`, `"decreased": false`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}

func TestTerminalWriter_NotATerminal(t *testing.T) {
	r := decreased(t)

	var buf bytes.Buffer
	if err := (&TerminalWriter{}).Write(&buf, r); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output should not contain ANSI escapes")
	}
	if !strings.Contains(out, "- Coverage    85.0%    80.0%  -5.00%\n") {
		t.Errorf("output missing coverage row:\n%s", out)
	}
	if !strings.HasSuffix(out, "\nWarning: Code coverage decreased from 85.0% to 80.0%\n") {
		t.Errorf("output should end with the warning:\n%s", out)
	}
}

func TestStylesLine_PassesThroughText(t *testing.T) {
	st := newStyles(lipgloss.NewRenderer(&bytes.Buffer{}))
	for _, l := range []string{"+ Lines", "- Misses", "@@ x @@", "## a", "====", "  Files"} {
		if got := st.line(l); !strings.Contains(got, l) {
			t.Errorf("line(%q) = %q, should keep the text", l, got)
		}
	}
}

func TestWriteResult_ToFile(t *testing.T) {
	r := decreased(t)
	path := filepath.Join(t.TempDir(), "comment.md")

	if err := WriteResult(r, "markdown", path); err != nil {
		t.Fatalf("WriteResult error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "```diff\n") {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteResult_UnknownFormat(t *testing.T) {
	if err := WriteResult(decreased(t), "yaml", ""); err == nil {
		t.Error("Expected error for unknown format")
	}
}

type closeFailer struct {
	bytes.Buffer
	err error
}

func (c *closeFailer) Close() error { return c.err }

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	errDisk := errors.New("disk full")
	wc := &closeFailer{err: errDisk}

	err := writeAndClose(wc, &TextWriter{}, decreased(t))
	if !errors.Is(err, errDisk) {
		t.Fatalf("writeAndClose error = %v, want %v", err, errDisk)
	}
	if wc.Len() == 0 {
		t.Error("Expected the table to be written before close")
	}
}

func TestWriteAndClose_WriteErrorWins(t *testing.T) {
	wc := &closeFailer{err: errors.New("close")}
	err := writeAndClose(wc, failingWriter{}, decreased(t))
	if err == nil || err.Error() != "render failed" {
		t.Errorf("writeAndClose error = %v, want render failed", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write(io.Writer, *report.Result) error { return errors.New("render failed") }

func TestTableLines(t *testing.T) {
	got := tableLines("```diff\na\nb\n```")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("tableLines = %q", got)
	}
}
