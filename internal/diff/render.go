package diff

import (
	"strings"

	"github.com/dshills/covdiff/internal/coverage"
)

const (
	fenceOpen  = "```diff"
	fenceClose = "```"
	banner     = "@@           Coverage Diff            @@"
)

// Separator is the rule drawn between row groups.
var Separator = strings.Repeat("=", 40)

// Rows builds the four table rows in order Coverage, Files, Lines, Misses.
// A nil previous renders every row with the no-baseline fallback.
func Rows(current, previous *coverage.Metrics) []Row {
	metrics := []metric{
		{title: "Coverage", percent: true,
			current: percentOf(current), previous: percentOf(previous)},
		{title: "Files",
			current: filesOf(current), previous: filesOf(previous)},
		{title: "Lines",
			current: linesOf(current), previous: linesOf(previous)},
		{title: "Misses",
			current: missesOf(current), previous: missesOf(previous)},
	}
	rows := make([]Row, len(metrics))
	for i, m := range metrics {
		rows[i] = m.row()
	}
	return rows
}

// Header renders the column heading line: the baseline label right-justified
// to 16 cells and "#"+current id right-justified to 8. The baseline label is
// "-" when there is no previous report.
func Header(current, previous *coverage.Metrics) string {
	prev := absent
	if previous != nil {
		prev = previous.Identifier()
	}
	return strings.Join([]string{
		"##",
		cells.FillLeft(prev, 16),
		cells.FillLeft("#"+current.Identifier(), 8),
		cells.FillLeft("+/-", 7),
		cells.FillLeft("##", 3),
	}, " ")
}

// Render returns the complete fenced table comparing current to previous.
func Render(current, previous *coverage.Metrics) string {
	rows := Rows(current, previous)
	lines := []string{
		fenceOpen,
		banner,
		Header(current, previous),
		Separator,
		rows[0].String(),
		Separator,
		rows[1].String(),
		rows[2].String(),
		Separator,
		rows[3].String(),
		fenceClose,
	}
	return strings.Join(lines, "\n")
}

func percentOf(m *coverage.Metrics) *float64 {
	if m == nil {
		return nil
	}
	v, ok := m.CoveredPercent()
	if !ok {
		return nil
	}
	return &v
}

func filesOf(m *coverage.Metrics) *float64 {
	if m == nil {
		return nil
	}
	n, ok := m.FileCount()
	if !ok {
		return nil
	}
	return count(n)
}

func linesOf(m *coverage.Metrics) *float64 {
	if m == nil {
		return nil
	}
	return count(m.TotalLines())
}

func missesOf(m *coverage.Metrics) *float64 {
	if m == nil {
		return nil
	}
	return count(m.MissedLines())
}

func count(n int) *float64 {
	v := float64(n)
	return &v
}
