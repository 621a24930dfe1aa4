// Package github reads pull request and repository identity from GitHub
// URLs and the local git remote.
//
// Nothing here talks to the GitHub API: the pull request number comes from
// a URL (typically CIRCLE_PULL_REQUEST) and owner/repo from the origin
// remote, which together name the change and its CircleCI project.
package github
