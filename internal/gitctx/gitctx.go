package gitctx

import (
	"fmt"
	"os/exec"
	"strings"
)

// CurrentBranch returns the checked-out branch name. A detached HEAD is an
// error, since it names no branch to look builds up by.
func CurrentBranch(dir string) (string, error) {
	out, err := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	branch := strings.TrimSpace(out)
	if branch == "HEAD" || branch == "" {
		return "", fmt.Errorf("HEAD is detached; pass a branch name explicitly")
	}
	return branch, nil
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
