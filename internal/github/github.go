package github

import (
	"fmt"
	"net/url"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var (
	httpsRemoteRe = regexp.MustCompile(`https?://[^/]+/([^/]+)/([^/.\s]+)`)
	sshRemoteRe   = regexp.MustCompile(`[^@]+@[^:]+:([^/]+)/([^/.\s]+)`)
)

// DetectRepo parses owner/repo from the git remote origin URL.
func DetectRepo() (owner, repo string, err error) {
	out, err := exec.Command("git", "remote", "get-url", "origin").Output()
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: git remote get-url origin failed: %w", err)
	}
	url := strings.TrimSpace(string(out))
	return ParseRemoteURL(url)
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(url string) (owner, repo string, err error) {
	url = strings.TrimSuffix(url, ".git")

	if m := httpsRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	if m := sshRemoteRe.FindStringSubmatch(url); len(m) == 3 {
		return m[1], m[2], nil
	}
	return "", "", fmt.Errorf("cannot parse owner/repo from remote URL: %s", url)
}

// PullRequestNumber returns the trailing number of a pull request URL such
// as https://github.com/owner/repo/pull/123 (the form CircleCI exposes in
// CIRCLE_PULL_REQUEST).
func PullRequestNumber(prURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(prURL))
	if err != nil {
		return "", fmt.Errorf("parsing pull request URL: %w", err)
	}
	path := strings.TrimRight(u.Path, "/")
	last := path[strings.LastIndex(path, "/")+1:]
	if _, err := strconv.Atoi(last); err != nil || last == "" {
		return "", fmt.Errorf("no pull request number in URL: %s", prURL)
	}
	return last, nil
}

// ProjectSlug returns the CircleCI v1.1 project slug for a GitHub repo.
func ProjectSlug(owner, repo string) string {
	return "github/" + owner + "/" + repo
}
