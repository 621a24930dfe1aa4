package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitDecreased    = 1
	ExitUsageError   = 2
	ExitReportError  = 3
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "covdiff",
	Short: "Coverage diff for code review",
	Long:  "covdiff compares the coverage report of a change with its baseline and renders a diff table for review comments.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(urlsCmd)
	rootCmd.AddCommand(circleciCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print covdiff version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "covdiff version %s\n", version)
	},
}
