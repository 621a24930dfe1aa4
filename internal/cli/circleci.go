package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/covdiff/internal/circleci"
	"github.com/dshills/covdiff/internal/config"
	"github.com/dshills/covdiff/internal/github"
	"github.com/dshills/covdiff/internal/gitctx"
	"github.com/spf13/cobra"
)

var (
	flagCIBranch         string
	flagCIProject        string
	flagCIJob            string
	flagCIBaselineBranch string
	flagCIArtifact       string
)

var circleciCmd = &cobra.Command{
	Use:   "circleci",
	Short: "Compare coverage artifacts of CircleCI builds",
	Long: "Find the latest successful build of a job on the current branch and on the baseline branch, " +
		"download their coverage artifacts and compare them.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := buildOverrides()
		for key, v := range map[string]string{
			"circleci.project":        flagCIProject,
			"circleci.job":            flagCIJob,
			"circleci.baselineBranch": flagCIBaselineBranch,
			"circleci.artifact":       flagCIArtifact,
		} {
			if v != "" {
				overrides[key] = v
			}
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		project, err := resolveProject(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\nUse --project to specify the project slug (e.g. github/owner/repo).\n", err)
			exitCode = ExitUsageError
			return nil
		}
		branch, err := resolveBranch(flagCIBranch, os.Getenv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		ctx := context.Background()

		fmt.Fprintf(os.Stderr, "Looking up %q builds of %s on %s and %s...\n",
			cfg.CircleCI.Job, project, branch, cfg.CircleCI.BaselineBranch)
		client := circleci.NewClient()
		currentURL, baselineURL, err := client.ReportURLs(ctx, project, branch,
			cfg.CircleCI.Job, cfg.CircleCI.BaselineBranch, cfg.CircleCI.Artifact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		if baselineURL == "" {
			fmt.Fprintf(os.Stderr, "Note: no %s artifact on %s; rendering without baseline\n",
				cfg.CircleCI.Artifact, cfg.CircleCI.BaselineBranch)
		}

		runReport(ctx, httpSource(cfg), currentURL, baselineURL, cfg)
		return nil
	},
}

// resolveProject returns the configured project slug or derives it from
// the origin remote.
func resolveProject(cfg config.Config) (string, error) {
	if cfg.CircleCI.Project != "" {
		return cfg.CircleCI.Project, nil
	}
	owner, repo, err := github.DetectRepo()
	if err != nil {
		return "", err
	}
	return github.ProjectSlug(owner, repo), nil
}

// resolveBranch picks the branch to compare: the flag, then CIRCLE_BRANCH,
// then the checked-out branch.
func resolveBranch(flag string, getenv func(string) string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if b := getenv("CIRCLE_BRANCH"); b != "" {
		return b, nil
	}
	return gitctx.CurrentBranch("")
}

func init() {
	addReportFlags(circleciCmd)
	circleciCmd.Flags().StringVar(&flagCIBranch, "branch", "", "Branch of the change (default: CIRCLE_BRANCH or the current git branch)")
	circleciCmd.Flags().StringVar(&flagCIProject, "project", "", "CircleCI project slug, e.g. github/owner/repo (default: from git remote)")
	circleciCmd.Flags().StringVar(&flagCIJob, "job", "", "Job whose artifacts hold the report (default: build)")
	circleciCmd.Flags().StringVar(&flagCIBaselineBranch, "baseline-branch", "", "Branch holding the baseline report (default: master)")
	circleciCmd.Flags().StringVar(&flagCIArtifact, "artifact", "", "Artifact path suffix of the report (default: coverage/coverage.json)")
}
