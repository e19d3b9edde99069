// Package github implements the RepositoryHost port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepositoryHost = (*Host)(nil)

// Host implements the driven.RepositoryHost port using the go-github library.
// Issues and pull requests share one comment/label surface on GitHub, so a
// single issue-number API covers both.
type Host struct {
	gh *gh.Client
}

// NewHost creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with token auth)
func NewHost(token string) *Host {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Host{gh: client}
}

// NewHostWithHTTPClient creates a Host with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an
// httptest server.
func NewHostWithHTTPClient(httpClient *http.Client, baseURL string) (*Host, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Host{gh: client}, nil
}

// PostComment creates a comment on the given issue or pull request.
func (h *Host) PostComment(ctx context.Context, owner, repo string, issueNumber int, body string) error {
	comment := &gh.IssueComment{Body: gh.Ptr(body)}

	_, _, err := h.gh.Issues.CreateComment(ctx, owner, repo, issueNumber, comment)
	if err != nil {
		return fmt.Errorf("posting comment on %s/%s#%d: %w", owner, repo, issueNumber, err)
	}

	return nil
}

// EnsureLabel creates the label on the repository. A 422 "already_exists"
// response is success: the label is there, which is all callers need. Any
// other failure is reported.
func (h *Host) EnsureLabel(ctx context.Context, owner, repo, name, color string) error {
	label := &gh.Label{
		Name:  gh.Ptr(name),
		Color: gh.Ptr(color),
	}

	_, _, err := h.gh.Issues.CreateLabel(ctx, owner, repo, label)
	if err != nil {
		if isLabelExistsError(err) {
			return nil
		}
		return fmt.Errorf("creating label %q on %s/%s: %w", name, owner, repo, err)
	}

	return nil
}

// AttachLabel adds the label to the given issue or pull request.
func (h *Host) AttachLabel(ctx context.Context, owner, repo string, issueNumber int, name string) error {
	_, _, err := h.gh.Issues.AddLabelsToIssue(ctx, owner, repo, issueNumber, []string{name})
	if err != nil {
		return fmt.Errorf("attaching label %q to %s/%s#%d: %w", name, owner, repo, issueNumber, err)
	}

	return nil
}

// isLabelExistsError reports whether the error is GitHub's 422 response for
// creating a label that already exists. Other 422 validation failures do not
// match; only the specific "already_exists" error code is recovered.
func isLabelExistsError(err error) bool {
	var ghErr *gh.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	if ghErr.Response == nil || ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range ghErr.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}
	return false
}
