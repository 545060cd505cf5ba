package github

import (
	"encoding/json"
	"fmt"
	"os"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/runoshun/git-triage/internal/domain"
)

// ReadIssueEvent reads and parses the event payload at path.
func ReadIssueEvent(path string) (*domain.IssueEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event payload: %w", err)
	}
	return ParseIssueEvent(data)
}

// ParseIssueEvent parses an issues webhook payload.
func ParseIssueEvent(data []byte) (*domain.IssueEvent, error) {
	var ev gogithub.IssuesEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("parse event payload: %w", err)
	}

	out := &domain.IssueEvent{Action: ev.GetAction()}
	if repo := ev.GetRepo(); repo != nil {
		out.Repo = domain.RepoRef{Owner: repo.GetOwner().GetLogin(), Repo: repo.GetName()}
	}
	if ev.Issue != nil {
		snap := snapshotFromIssue(ev.Issue)
		out.Issue = &snap
	}
	return out, nil
}
