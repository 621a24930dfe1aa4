package coverage

import (
	"errors"
	"strings"

	"golang.org/x/tools/cover"
)

// ParseProfile decodes the text written by go test -coverprofile.
// Statements stand in for lines: a block's statements are covered when
// its count is positive.
func ParseProfile(raw, identifier string) (*Metrics, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Identifier: identifier, Err: errors.New("empty profile")}
	}
	profiles, err := cover.ParseProfilesFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Identifier: identifier, Err: err}
	}
	return FromProfiles(profiles, identifier), nil
}

// FromProfiles summarizes parsed Go coverage profiles. The percent is
// absent when the profiles contain no statements.
func FromProfiles(profiles []*cover.Profile, identifier string) *Metrics {
	total, covered := 0, 0
	for _, p := range profiles {
		for _, b := range p.Blocks {
			total += b.NumStmt
			if b.Count > 0 {
				covered += b.NumStmt
			}
		}
	}

	files := len(profiles)
	var percent *float64
	if total > 0 {
		p := float64(covered) / float64(total) * 100
		percent = &p
	}
	return New(identifier, percent, &files, total, covered)
}
