// Package cli wires together the Cobra command tree for the covdiff binary.
//
// It defines the root command and its subcommands (files, urls, circleci,
// config, version), binds flags, reads configuration, resolves the change
// identifier once, runs the comparison and returns deterministic exit codes
// for CI gating.
package cli
