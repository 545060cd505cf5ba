// Package github implements domain.IssueTracker on the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/time/rate"

	"github.com/runoshun/git-triage/internal/domain"
)

// Ensure Client implements domain.IssueTracker interface.
var _ domain.IssueTracker = (*Client)(nil)

// Request pacing defaults.
const (
	DefaultRequestsPerSecond = 5
	DefaultBurst             = 5
	pageSize                 = 100
)

// Client talks to the GitHub REST API.
// Calls are paced by a token bucket and never retried.
type Client struct {
	api     *gogithub.Client
	limiter *rate.Limiter
}

// NewClient creates a client for api.github.com authenticated with token.
// An empty token makes unauthenticated requests.
func NewClient(token string) *Client {
	api := gogithub.NewClient(nil)
	if token != "" {
		api = api.WithAuthToken(token)
	}
	return &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), DefaultBurst),
	}
}

// NewClientWithBaseURL creates a client for a custom API endpoint,
// such as GitHub Enterprise or a test server.
func NewClientWithBaseURL(token, baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	c := NewClient(token)
	c.api.BaseURL = u
	return c, nil
}

// WithRateLimit replaces the request pacing limiter.
func (c *Client) WithRateLimit(limiter *rate.Limiter) *Client {
	c.limiter = limiter
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// ListOpenMilestones returns all open milestones of the repository.
func (c *Client) ListOpenMilestones(ctx context.Context, ref domain.RepoRef) ([]domain.Milestone, error) {
	const op = "list milestones"
	opts := &gogithub.MilestoneListOptions{
		State:       "open",
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	var out []domain.Milestone
	for {
		if err := c.wait(ctx); err != nil {
			return nil, wrapError(op, ref, 0, err)
		}
		page, resp, err := c.api.Issues.ListMilestones(ctx, ref.Owner, ref.Repo, opts)
		if err != nil {
			return nil, wrapError(op, ref, 0, err)
		}
		for _, m := range page {
			out = append(out, domain.Milestone{Number: m.GetNumber(), Title: m.GetTitle()})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateMilestone creates an open milestone with the given title.
func (c *Client) CreateMilestone(ctx context.Context, ref domain.RepoRef, title string) (domain.Milestone, error) {
	const op = "create milestone"
	if err := c.wait(ctx); err != nil {
		return domain.Milestone{}, wrapError(op, ref, 0, err)
	}
	m, _, err := c.api.Issues.CreateMilestone(ctx, ref.Owner, ref.Repo, &gogithub.Milestone{
		Title: gogithub.Ptr(title),
	})
	if err != nil {
		return domain.Milestone{}, wrapError(op, ref, 0, err)
	}
	return domain.Milestone{Number: m.GetNumber(), Title: m.GetTitle()}, nil
}

// UpdateIssueMilestone points the issue at the milestone.
func (c *Client) UpdateIssueMilestone(ctx context.Context, ref domain.RepoRef, issueNumber, milestoneNumber int) error {
	const op = "update issue milestone"
	if err := c.wait(ctx); err != nil {
		return wrapError(op, ref, issueNumber, err)
	}
	_, _, err := c.api.Issues.Edit(ctx, ref.Owner, ref.Repo, issueNumber, &gogithub.IssueRequest{
		Milestone: gogithub.Ptr(milestoneNumber),
	})
	if err != nil {
		return wrapError(op, ref, issueNumber, err)
	}
	return nil
}

// AddLabels adds labels to the issue.
func (c *Client) AddLabels(ctx context.Context, ref domain.RepoRef, issueNumber int, labels []string) error {
	const op = "add labels"
	if err := c.wait(ctx); err != nil {
		return wrapError(op, ref, issueNumber, err)
	}
	if _, _, err := c.api.Issues.AddLabelsToIssue(ctx, ref.Owner, ref.Repo, issueNumber, labels); err != nil {
		return wrapError(op, ref, issueNumber, err)
	}
	return nil
}

// ListOpenIssues returns the open issues of the repository, pull requests excluded.
func (c *Client) ListOpenIssues(ctx context.Context, ref domain.RepoRef) ([]domain.IssueSnapshot, error) {
	const op = "list issues"
	opts := &gogithub.IssueListByRepoOptions{
		State:       "open",
		ListOptions: gogithub.ListOptions{PerPage: pageSize},
	}

	var out []domain.IssueSnapshot
	for {
		if err := c.wait(ctx); err != nil {
			return nil, wrapError(op, ref, 0, err)
		}
		page, resp, err := c.api.Issues.ListByRepo(ctx, ref.Owner, ref.Repo, opts)
		if err != nil {
			return nil, wrapError(op, ref, 0, err)
		}
		for _, issue := range page {
			if issue.IsPullRequest() {
				continue
			}
			out = append(out, snapshotFromIssue(issue))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// wrapError attaches operation context. HTTP 401 responses also match domain.ErrAuth.
func wrapError(op string, ref domain.RepoRef, issue int, err error) error {
	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusUnauthorized {
		err = fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}
	return &domain.TrackerError{Op: op, Repo: ref, Issue: issue, Err: err}
}

// snapshotFromIssue converts an API issue into a domain snapshot.
func snapshotFromIssue(issue *gogithub.Issue) domain.IssueSnapshot {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	var milestone *string
	if issue.Milestone != nil && issue.Milestone.Title != nil {
		title := issue.Milestone.GetTitle()
		milestone = &title
	}

	return domain.IssueSnapshot{
		ID:        issue.GetID(),
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		State:     issue.GetState(),
		Labels:    labels,
		Milestone: milestone,
		CreatedAt: formatTimestamp(issue.GetCreatedAt()),
		UpdatedAt: formatTimestamp(issue.GetUpdatedAt()),
	}
}

func formatTimestamp(ts gogithub.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
