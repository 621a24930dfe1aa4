package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dshills/covdiff/internal/config"
	"github.com/dshills/covdiff/internal/coverage"
	"github.com/dshills/covdiff/internal/github"
	"github.com/dshills/covdiff/internal/output"
	"github.com/dshills/covdiff/internal/report"
	"github.com/dshills/covdiff/internal/source"
	"github.com/spf13/cobra"
)

// Shared report flags
var (
	flagID             string
	flagBaselineLabel  string
	flagFormat         string
	flagInputFormat    string
	flagOut            string
	flagNoWarning      bool
	flagFailOnDecrease bool
	flagTimeout        int
)

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagID, "id", "", "Identifier of the current change (default: number from CIRCLE_PULL_REQUEST)")
	cmd.Flags().StringVar(&flagBaselineLabel, "baseline-label", "", "Label of the baseline column (default: master)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (markdown, text, json, terminal)")
	cmd.Flags().StringVar(&flagInputFormat, "input-format", "", "Report format (simplecov, gocover)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoWarning, "no-warning", false, "Do not warn when coverage decreases")
	cmd.Flags().BoolVar(&flagFailOnDecrease, "fail-on-decrease", false, "Exit with status 1 when coverage decreases")
	cmd.Flags().IntVar(&flagTimeout, "timeout", 0, "HTTP timeout in seconds")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagBaselineLabel != "" {
		m["baselineLabel"] = flagBaselineLabel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagInputFormat != "" {
		m["inputFormat"] = flagInputFormat
	}
	if flagNoWarning {
		m["showWarning"] = "false"
	}
	if flagFailOnDecrease {
		m["failOnDecrease"] = "true"
	}
	if flagTimeout > 0 {
		m["timeoutSeconds"] = strconv.Itoa(flagTimeout)
	}
	return m
}

// resolveIdentifier picks the label of the current change: the --id flag,
// then the pull request number in CIRCLE_PULL_REQUEST, then "local".
func resolveIdentifier(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if prURL := getenv("CIRCLE_PULL_REQUEST"); prURL != "" {
		if n, err := github.PullRequestNumber(prURL); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "Warning: ignoring CIRCLE_PULL_REQUEST %q: no pull request number\n", prURL)
	}
	return "local"
}

func httpSource(cfg config.Config) *source.HTTP {
	return source.NewHTTP(time.Duration(cfg.TimeoutSeconds) * time.Second)
}

// runReport compares the two reports and writes the result, setting exitCode.
func runReport(ctx context.Context, src report.Source, currentLoc, baselineLoc string, cfg config.Config) {
	inFormat, err := coverage.ParseFormat(cfg.InputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}
	if _, err := output.GetWriter(cfg.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	opts := report.Options{
		Identifier:    resolveIdentifier(flagID, os.Getenv),
		BaselineLabel: cfg.BaselineLabel,
		Format:        inFormat,
		ShowWarning:   cfg.ShowWarning,
	}

	res, err := report.Run(ctx, src, currentLoc, baselineLoc, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = exitCodeFor(err)
		return
	}

	if res.BaselineErr != nil && baselineLoc != "" {
		fmt.Fprintf(os.Stderr, "Note: %v; rendering without baseline\n", res.BaselineErr)
	}
	if res.Warning != "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", res.Warning)
	}

	if err := output.WriteResult(res, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOnDecrease && res.Decreased() {
		exitCode = ExitDecreased
	}
}

func exitCodeFor(err error) int {
	var pe *coverage.ParseError
	var me *coverage.MissingMetricError
	if errors.As(err, &pe) || errors.As(err, &me) {
		return ExitReportError
	}
	return ExitRuntimeError
}

var filesCmd = &cobra.Command{
	Use:   "files <current> [baseline]",
	Short: "Compare two coverage reports",
	Long: "Compare two coverage reports given as paths or http(s) URLs. Use - to read the current report from stdin. " +
		"Without a baseline every row is rendered as new.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		var baseline string
		if len(args) == 2 {
			baseline = args[1]
		}
		runReport(context.Background(), source.Auto{HTTP: httpSource(cfg)}, args[0], baseline, cfg)
		return nil
	},
}

var urlsCmd = &cobra.Command{
	Use:   "urls <current-url> [baseline-url]",
	Short: "Compare two coverage reports downloaded over HTTP",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			if !source.IsURL(a) {
				fmt.Fprintf(os.Stderr, "Error: not an http(s) URL: %s\n", a)
				exitCode = ExitUsageError
				return nil
			}
		}
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		var baseline string
		if len(args) == 2 {
			baseline = args[1]
		}
		runReport(context.Background(), httpSource(cfg), args[0], baseline, cfg)
		return nil
	},
}

func init() {
	addReportFlags(filesCmd)
	addReportFlags(urlsCmd)
}
