package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dshills/covdiff/internal/report"
	"golang.org/x/term"
)

// TerminalWriter outputs the table with added and removed rows colored.
// Output that is not a terminal is written as plain text.
type TerminalWriter struct{}

func (t *TerminalWriter) Write(w io.Writer, r *report.Result) error {
	ew := &errWriter{w: w}
	if !isTerminal(w) {
		for _, line := range tableLines(r.Body) {
			ew.println(line)
		}
		if r.Warning != "" {
			ew.printf("\nWarning: %s\n", r.Warning)
		}
		return ew.err
	}

	st := newStyles(lipgloss.NewRenderer(w))
	for _, line := range tableLines(r.Body) {
		ew.println(st.line(line))
	}
	if r.Warning != "" {
		ew.printf("\n%s\n", st.warning.Render("Warning: "+r.Warning))
	}
	return ew.err
}

type styles struct {
	added   lipgloss.Style
	removed lipgloss.Style
	header  lipgloss.Style
	rule    lipgloss.Style
	warning lipgloss.Style
}

func newStyles(re *lipgloss.Renderer) styles {
	return styles{
		added:   re.NewStyle().Foreground(lipgloss.Color("2")),
		removed: re.NewStyle().Foreground(lipgloss.Color("1")),
		header:  re.NewStyle().Bold(true),
		rule:    re.NewStyle().Faint(true),
		warning: re.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	}
}

func (s styles) line(l string) string {
	switch {
	case strings.HasPrefix(l, "+ "):
		return s.added.Render(l)
	case strings.HasPrefix(l, "- "):
		return s.removed.Render(l)
	case strings.HasPrefix(l, "@@"), strings.HasPrefix(l, "##"):
		return s.header.Render(l)
	case strings.HasPrefix(l, "="):
		return s.rule.Render(l)
	default:
		return l
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
