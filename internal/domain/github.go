package domain

import (
	"strings"
)

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// String returns "owner/repo".
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseRepoRef parses an "owner/repo" string.
func ParseRepoRef(s string) (RepoRef, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return RepoRef{}, ErrInvalidRepoRef
	}
	return RepoRef{Owner: owner, Repo: repo}, nil
}

// IssueSnapshot is the state of one issue at the time of the triggering event.
// Fields are ordered to minimize memory padding.
type IssueSnapshot struct {
	Milestone *string  `json:"milestone"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Labels    []string `json:"labels"`
	ID        int64    `json:"id"`
	Number    int      `json:"number"`
}

// HasLabel reports whether the issue carries the label.
func (s *IssueSnapshot) HasLabel(label string) bool {
	for _, l := range s.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Milestone is an open milestone in the issue tracker.
type Milestone struct {
	Title  string
	Number int
}

// IssueEvent is the part of an issues webhook payload a triage run needs.
type IssueEvent struct {
	Issue  *IssueSnapshot // nil when the payload carries no issue
	Action string
	Repo   RepoRef // zero when the payload carries no repository
}
