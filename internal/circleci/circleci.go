package circleci

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultAPIURL = "https://circleci.com/api/v1.1"

// DefaultArtifact is the simplecov-json report path.
const DefaultArtifact = "coverage/coverage.json"

// ErrNotFound is returned when no successful build or artifact matches.
var ErrNotFound = errors.New("no matching CircleCI artifact")

// Client provides read-only access to the CircleCI v1.1 API.
type Client struct {
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a client. CIRCLECI_API_URL overrides the API endpoint.
func NewClient() *Client {
	apiURL := os.Getenv("CIRCLECI_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}
}

// Build is the subset of a CircleCI build summary covdiff needs.
type Build struct {
	BuildNum  int    `json:"build_num"`
	Branch    string `json:"branch"`
	Status    string `json:"status"`
	Workflows *struct {
		JobName string `json:"job_name"`
	} `json:"workflows,omitempty"`
	BuildParameters map[string]any `json:"build_parameters,omitempty"`
}

// JobName returns the workflow job name, falling back to CIRCLE_JOB.
func (b Build) JobName() string {
	if b.Workflows != nil && b.Workflows.JobName != "" {
		return b.Workflows.JobName
	}
	if v, ok := b.BuildParameters["CIRCLE_JOB"].(string); ok {
		return v
	}
	return ""
}

// Artifact is a file uploaded by a build.
type Artifact struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// LatestBuild returns the newest successful build of job on branch.
// project is a slug such as "github/owner/repo".
func (c *Client) LatestBuild(ctx context.Context, project, branch, job string) (Build, error) {
	endpoint := fmt.Sprintf("%s/project/%s/tree/%s?filter=successful&limit=30",
		c.apiURL, project, url.PathEscape(branch))

	var builds []Build
	if err := c.getJSON(ctx, endpoint, &builds); err != nil {
		return Build{}, fmt.Errorf("listing builds for %s: %w", branch, err)
	}
	for _, b := range builds {
		if job == "" || b.JobName() == job {
			return b, nil
		}
	}
	return Build{}, fmt.Errorf("%w: no successful %q build on branch %s", ErrNotFound, job, branch)
}

// Artifacts lists the artifacts of a build.
func (c *Client) Artifacts(ctx context.Context, project string, buildNum int) ([]Artifact, error) {
	endpoint := fmt.Sprintf("%s/project/%s/%d/artifacts", c.apiURL, project, buildNum)

	var artifacts []Artifact
	if err := c.getJSON(ctx, endpoint, &artifacts); err != nil {
		return nil, fmt.Errorf("listing artifacts of build %d: %w", buildNum, err)
	}
	return artifacts, nil
}

// ArtifactURL returns the URL of the newest successful job build's
// artifact whose path ends with suffix.
func (c *Client) ArtifactURL(ctx context.Context, project, branch, job, suffix string) (string, error) {
	build, err := c.LatestBuild(ctx, project, branch, job)
	if err != nil {
		return "", err
	}
	artifacts, err := c.Artifacts(ctx, project, build.BuildNum)
	if err != nil {
		return "", err
	}
	for _, a := range artifacts {
		if strings.HasSuffix(a.Path, suffix) {
			return a.URL, nil
		}
	}
	return "", fmt.Errorf("%w: build %d has no artifact %s", ErrNotFound, build.BuildNum, suffix)
}

// ReportURLs returns the report artifact URLs of branch and baselineBranch.
// A baseline without a matching artifact yields an empty baseline URL.
func (c *Client) ReportURLs(ctx context.Context, project, branch, job, baselineBranch, suffix string) (current, baseline string, err error) {
	if suffix == "" {
		suffix = DefaultArtifact
	}
	current, err = c.ArtifactURL(ctx, project, branch, job, suffix)
	if err != nil {
		return "", "", err
	}
	baseline, err = c.ArtifactURL(ctx, project, baselineBranch, job, suffix)
	if errors.Is(err, ErrNotFound) {
		return current, "", nil
	}
	if err != nil {
		return "", "", err
	}
	return current, baseline, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == 404 {
		return fmt.Errorf("%w: project not found", ErrNotFound)
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("CircleCI API error (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
