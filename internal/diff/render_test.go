package diff

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dshills/covdiff/internal/coverage"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metrics(t *testing.T, id, raw string) *coverage.Metrics {
	t.Helper()
	m, err := coverage.Parse(raw, id)
	require.NoError(t, err)
	return m
}

func files(n int) string {
	return "[" + strings.TrimSuffix(strings.Repeat("{},", n), ",") + "]"
}

func report(pct string, total, covered, nfiles int) string {
	return `{"metrics":{"covered_percent":` + pct +
		`,"total_lines":` + strconv.Itoa(total) +
		`,"covered_lines":` + strconv.Itoa(covered) +
		`},"files":` + files(nfiles) + `}`
}

func TestRender_FullTable(t *testing.T) {
	current := metrics(t, "123", report("90.0", 210, 189, 10))
	previous := metrics(t, "master", report("85.0", 200, 170, 10))

	want := strings.Join([]string{
		"```diff",
		"@@           Coverage Diff            @@",
		"##           master     #123     +/-  ##",
		"========================================",
		"+ Coverage    85.0%    90.0%  +5.00%",
		"========================================",
		"  Files          10       10",
		"+ Lines         200      210     +10",
		"========================================",
		"- Misses         30       21      -9",
		"```",
	}, "\n")

	assert.Equal(t, want, Render(current, previous))
}

func TestRender_NoBaseline(t *testing.T) {
	current := metrics(t, "123", report("87.5", 200, 175, 10))

	want := strings.Join([]string{
		"```diff",
		"@@           Coverage Diff            @@",
		"##                -     #123     +/-  ##",
		"========================================",
		"- Coverage        -    87.5%",
		"========================================",
		"- Files           -       10",
		"- Lines           -      200",
		"========================================",
		"- Misses          -       25",
		"```",
	}, "\n")

	assert.Equal(t, want, Render(current, nil))
}

func TestRender_Deterministic(t *testing.T) {
	current := metrics(t, "9", report("71.23", 1000, 712, 40))
	previous := metrics(t, "master", report("70.01", 990, 693, 39))

	first := Render(current, previous)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Render(current, previous))
	}
}

func TestRows_Order(t *testing.T) {
	current := metrics(t, "1", report("50", 10, 5, 1))
	rows := Rows(current, current)
	require.Len(t, rows, 4)
	titles := make([]string, len(rows))
	for i, r := range rows {
		titles[i] = r.Title
	}
	assert.Equal(t, []string{"Coverage", "Files", "Lines", "Misses"}, titles)
}

func TestRows_ZeroDeltaSuppressed(t *testing.T) {
	current := metrics(t, "1", report("87.5", 200, 175, 10))
	previous := metrics(t, "master", report("87.5", 200, 175, 10))

	for _, r := range Rows(current, previous) {
		assert.Equal(t, Unchanged, r.Marker, r.Title)
		assert.Empty(t, r.Delta, r.Title)
	}
	cov := Rows(current, previous)[0]
	assert.Equal(t, "87.5%", cov.Previous)
	assert.Equal(t, "87.5%", cov.Current)
	assert.Equal(t, "  Coverage    87.5%    87.5%", cov.String())
}

func TestRows_CoverageIncrease(t *testing.T) {
	current := metrics(t, "1", report("90.00", 100, 90, 1))
	previous := metrics(t, "master", report("85.00", 100, 85, 1))

	cov := Rows(current, previous)[0]
	assert.Equal(t, Increased, cov.Marker)
	assert.Equal(t, "+5.00%", cov.Delta)
}

func TestRows_CoverageDecrease(t *testing.T) {
	current := metrics(t, "1", report("80.00", 100, 80, 1))
	previous := metrics(t, "master", report("85.00", 100, 85, 1))

	cov := Rows(current, previous)[0]
	assert.Equal(t, Changed, cov.Marker)
	assert.Equal(t, "-5.00%", cov.Delta)
	assert.Equal(t, "- Coverage    85.0%    80.0%  -5.00%", cov.String())
}

func TestRows_SmallPercentDelta(t *testing.T) {
	current := metrics(t, "1", report("66.67", 3, 2, 1))
	previous := metrics(t, "master", report("66.66", 3, 2, 1))

	cov := Rows(current, previous)[0]
	assert.Equal(t, Increased, cov.Marker)
	assert.Equal(t, "+0.01%", cov.Delta)
}

func TestRows_PerFieldFallback(t *testing.T) {
	current := metrics(t, "1", `{"metrics":{"covered_percent":80,"total_lines":10,"covered_lines":8}}`)
	previous := metrics(t, "master", report("80", 10, 8, 10))

	rows := Rows(current, previous)
	assert.Equal(t, Unchanged, rows[0].Marker, "coverage present on both sides")

	filesRow := rows[1]
	assert.Equal(t, Changed, filesRow.Marker)
	assert.Equal(t, "10", filesRow.Previous)
	assert.Equal(t, "-", filesRow.Current)
	assert.Empty(t, filesRow.Delta)
	assert.Equal(t, "- Files          10        -", filesRow.String())

	assert.Equal(t, Unchanged, rows[2].Marker)
	assert.Equal(t, Unchanged, rows[3].Marker)
}

func TestRows_NoBaselineUsesChangedMarker(t *testing.T) {
	current := metrics(t, "1", report("87.5", 200, 175, 10))
	for _, r := range Rows(current, nil) {
		assert.Equal(t, Changed, r.Marker, r.Title)
		assert.Equal(t, "-", r.Previous, r.Title)
		assert.Empty(t, r.Delta, r.Title)
	}
}

func TestRow_WideValuesAreNotTruncated(t *testing.T) {
	r := Row{Title: "Lines", Previous: "1234567", Current: "12345678", Delta: "+11111111", Marker: Increased}
	assert.Equal(t, "+ Lines     1234567 12345678+11111111", r.String())
}

func TestHeader_WideCharacters(t *testing.T) {
	prev := coverage.New("主干", nil, nil, 0, 0)
	cur := coverage.New("7", nil, nil, 0, 0)
	// Two double-width runes occupy four cells.
	assert.Equal(t, "##             主干       #7     +/-  ##", Header(cur, prev))
}

func TestHeader_AmbiguousWidthIgnoresLocale(t *testing.T) {
	prev := coverage.New("β-release", nil, nil, 0, 0)
	cur := coverage.New("7", nil, nil, 0, 0)
	want := "##        β-release       #7     +/-  ##"
	require.Equal(t, want, Header(cur, prev))

	t.Setenv("RUNEWIDTH_EASTASIAN", "1")
	saved := runewidth.DefaultCondition
	runewidth.DefaultCondition = &runewidth.Condition{EastAsianWidth: true}
	t.Cleanup(func() { runewidth.DefaultCondition = saved })
	require.Equal(t, 2, runewidth.StringWidth("β"))

	assert.Equal(t, want, Header(cur, prev))
	r := Row{Title: "Coverage", Previous: "±1", Current: "§2", Marker: Unchanged}
	assert.Equal(t, "  Coverage       ±1       §2", r.String())
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{87.5, "87.5"},
		{85, "85.0"},
		{66.67, "66.67"},
		{0, "0.0"},
		{100, "100.0"},
		{104.32, "104.32"},
		{-1.5, "-1.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPercent(tt.in))
	}
}
