// Covdiff is a CLI that renders the coverage change of a pull request as a
// diff table for review comments.
//
// It reads two coverage reports, one for the change and one for its
// baseline, and prints a Codecov-style table with +/- markers. A drop in
// coverage is reported as a warning and, with --fail-on-decrease, as exit
// status 1.
//
// Usage:
//
//	covdiff files coverage.json master/coverage.json   # compare local reports
//	covdiff files --input-format gocover cover.out base.out
//	covdiff urls https://ci/cur.json https://ci/base.json
//	covdiff circleci --job build                       # compare CircleCI artifacts
//	covdiff config init                                # write a default config file
package main
