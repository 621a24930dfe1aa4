package diff

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Marker is the two-character prefix of a table row.
type Marker string

const (
	Unchanged Marker = "  "
	Increased Marker = "+ "
	Changed   Marker = "- "
)

// Column widths of a row.
const (
	titleWidth    = 9
	previousWidth = 7
	currentWidth  = 9
	deltaWidth    = 8
)

// cells measures display width with a fixed condition so output does not
// depend on the locale the process starts in.
var cells = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// absent is the placeholder for a value missing on one side.
const absent = "-"

// Row is one rendered metric of the table.
type Row struct {
	Title    string `json:"title"`
	Previous string `json:"previous"`
	Current  string `json:"current"`
	Delta    string `json:"delta,omitempty"`
	Marker   Marker `json:"marker"`
}

// String renders the row without a trailing newline. The delta column is
// only written for rows whose marker is not blank.
func (r Row) String() string {
	var sb strings.Builder
	sb.WriteString(string(r.Marker))
	sb.WriteString(cells.FillRight(r.Title, titleWidth))
	sb.WriteString(" ")
	sb.WriteString(cells.FillLeft(r.Previous, previousWidth))
	sb.WriteString(cells.FillLeft(r.Current, currentWidth))
	if r.Marker != Unchanged && r.Delta != "" {
		sb.WriteString(cells.FillLeft(r.Delta, deltaWidth))
	}
	return sb.String()
}

// metric is one side-by-side value pair. A nil side is absent.
type metric struct {
	title    string
	current  *float64
	previous *float64
	percent  bool
}

func (m metric) row() Row {
	r := Row{
		Title:    m.title,
		Previous: m.display(m.previous),
		Current:  m.display(m.current),
		Marker:   Changed,
	}
	if m.current == nil || m.previous == nil {
		return r
	}

	d := *m.current - *m.previous
	switch {
	case d == 0:
		r.Marker = Unchanged
		return r
	case d > 0:
		r.Marker = Increased
	}
	if m.percent {
		r.Delta = fmt.Sprintf("%+.2f%%", d)
	} else {
		r.Delta = fmt.Sprintf("%+d", int64(d))
	}
	return r
}

func (m metric) display(v *float64) string {
	if v == nil {
		return absent
	}
	if m.percent {
		return FormatPercent(*v) + "%"
	}
	return strconv.FormatInt(int64(*v), 10)
}

// FormatPercent writes the shortest decimal that round-trips, keeping at
// least one fractional digit: 87.5, 85.0, 66.67. The unit is not included.
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
