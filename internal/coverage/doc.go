// Package coverage normalizes a raw coverage report into typed [Metrics].
//
// Two input formats are understood:
//   - simplecov: a JSON document with a "metrics" object (covered_percent,
//     total_lines, covered_lines) and a "files" list
//   - gocover:   the text profile written by go test -coverprofile
//
// Optional fields (covered percent, file count) keep an explicit absent
// state instead of defaulting to zero. Fields needed to derive missed lines
// are required: a report without them fails with [*MissingMetricError].
package coverage
