package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dshills/covdiff/internal/coverage"
	"github.com/dshills/covdiff/internal/diff"
)

// DefaultBaselineLabel names the baseline column when none is configured.
const DefaultBaselineLabel = "master"

// Source fetches a raw report body by location (path, URL, ...).
type Source interface {
	Fetch(ctx context.Context, location string) (string, error)
}

// Options controls how a comparison is parsed and reported.
type Options struct {
	Identifier    string
	BaselineLabel string
	Format        coverage.Format
	ShowWarning   bool
}

// Result is a rendered comparison.
type Result struct {
	Current  *coverage.Metrics
	Baseline *coverage.Metrics // nil when no baseline was available
	Rows     []diff.Row
	Body     string
	Warning  string // empty unless coverage decreased and warnings are enabled

	// BaselineErr wraps coverage.ErrMissingBaseline when Baseline is nil.
	BaselineErr error
}

// Decreased reports whether coverage dropped relative to the baseline.
func (r *Result) Decreased() bool {
	_, ok := Regression(r.Current, r.Baseline)
	return ok
}

// Run fetches both reports and compares them. An empty baselineLoc, or a
// baseline the source reports as fs.ErrNotExist, selects the no-baseline
// path. Any other fetch failure is returned.
func Run(ctx context.Context, src Source, currentLoc, baselineLoc string, opts Options) (*Result, error) {
	current, err := src.Fetch(ctx, currentLoc)
	if err != nil {
		return nil, fmt.Errorf("fetching current report: %w", err)
	}

	var baseline string
	var missing error
	if baselineLoc != "" {
		baseline, err = src.Fetch(ctx, baselineLoc)
		if errors.Is(err, fs.ErrNotExist) {
			missing = fmt.Errorf("%w: %v", coverage.ErrMissingBaseline, err)
		} else if err != nil {
			return nil, fmt.Errorf("fetching baseline report: %w", err)
		}
	}

	res, err := FromText(current, baseline, opts)
	if err != nil {
		return nil, err
	}
	if missing != nil {
		res.BaselineErr = missing
	}
	return res, nil
}

// FromText parses both bodies and renders the table. Both reports are
// parsed before anything is rendered, so a malformed baseline yields an
// error and no partial output. Blank baseline text means no baseline.
func FromText(current, baseline string, opts Options) (*Result, error) {
	label := opts.BaselineLabel
	if label == "" {
		label = DefaultBaselineLabel
	}

	cur, err := coverage.ParseAs(opts.Format, current, opts.Identifier)
	if err != nil {
		return nil, err
	}

	base, err := parseBaseline(opts.Format, baseline, label)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Current:  cur,
		Baseline: base,
		Rows:     diff.Rows(cur, base),
		Body:     diff.Render(cur, base),
	}
	if base == nil {
		res.BaselineErr = coverage.ErrMissingBaseline
	}
	if opts.ShowWarning {
		res.Warning, _ = Regression(cur, base)
	}
	return res, nil
}

func parseBaseline(format coverage.Format, raw, label string) (*coverage.Metrics, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return coverage.ParseAs(format, raw, label)
}

// Regression returns the warning message when the baseline covered percent
// exceeds the current one. Any decrease counts. Nothing is compared when
// either side lacks a percent or the baseline is nil.
func Regression(current, baseline *coverage.Metrics) (string, bool) {
	if current == nil || baseline == nil {
		return "", false
	}
	cur, ok := current.CoveredPercent()
	if !ok {
		return "", false
	}
	base, ok := baseline.CoveredPercent()
	if !ok || base <= cur {
		return "", false
	}
	return fmt.Sprintf("Code coverage decreased from %s%% to %s%%",
		diff.FormatPercent(base), diff.FormatPercent(cur)), true
}
