// Package config loads and merges covdiff configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (COVDIFF_FORMAT, COVDIFF_BASELINE_LABEL, COVDIFF_JOB, etc.)
//  3. Config file ($XDG_CONFIG_HOME/covdiff/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file,
// and [SetField] to update a single key.
package config
