// Package selfupdate checks GitHub releases for a newer logiq version.
// It only reports; installing the update is left to the user.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ErrDevBuild is returned when the running binary has no release version.
var ErrDevBuild = errors.New("cannot check updates for a development build")

const defaultAPIBaseURL = "https://api.github.com"

// Checker queries the GitHub releases API for the latest version tag.
type Checker struct {
	owner      string
	repo       string
	apiBaseURL string
	httpClient *http.Client
}

// CheckResult reports the outcome of a version check.
type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

// Option customizes a Checker.
type Option func(*Checker)

// WithAPIBaseURL overrides the GitHub API base URL (used in tests).
func WithAPIBaseURL(url string) Option {
	return func(c *Checker) { c.apiBaseURL = url }
}

// New creates a Checker for the given GitHub repository.
func New(owner, repo string, opts ...Option) *Checker {
	c := &Checker{
		owner:      owner,
		repo:       repo,
		apiBaseURL: defaultAPIBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the latest release tag and compares it with
// currentVersion using semver ordering.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*CheckResult, error) {
	if currentVersion == "" || currentVersion == "(devel)" {
		return nil, ErrDevBuild
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.apiBaseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, errors.New("latest release has no tag")
	}

	current := canonical(currentVersion)
	latest := canonical(release.TagName)
	if !semver.IsValid(current) {
		return nil, fmt.Errorf("invalid current version %q", currentVersion)
	}
	if !semver.IsValid(latest) {
		return nil, fmt.Errorf("invalid release tag %q", release.TagName)
	}

	return &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateAvailable: semver.Compare(latest, current) > 0,
	}, nil
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
