package github

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/domain"
)

const openedEvent = `{
  "action": "opened",
  "issue": {
    "id": 555,
    "number": 42,
    "title": "Login fails",
    "state": "open",
    "labels": [{"name": "bug"}],
    "milestone": null,
    "created_at": "2025-05-01T08:00:00Z",
    "updated_at": "2025-05-02T09:30:00Z"
  },
  "repository": {
    "name": "widgets",
    "owner": {"login": "acme"}
  }
}`

func TestParseIssueEvent(t *testing.T) {
	ev, err := ParseIssueEvent([]byte(openedEvent))
	require.NoError(t, err)

	assert.Equal(t, "opened", ev.Action)
	assert.Equal(t, domain.RepoRef{Owner: "acme", Repo: "widgets"}, ev.Repo)
	require.NotNil(t, ev.Issue)
	assert.Equal(t, domain.IssueSnapshot{
		ID:        555,
		Number:    42,
		Title:     "Login fails",
		State:     "open",
		Labels:    []string{"bug"},
		CreatedAt: "2025-05-01T08:00:00Z",
		UpdatedAt: "2025-05-02T09:30:00Z",
	}, *ev.Issue)
}

func TestParseIssueEvent_NoIssue(t *testing.T) {
	ev, err := ParseIssueEvent([]byte(`{"action": "created", "repository": {"name": "widgets", "owner": {"login": "acme"}}}`))
	require.NoError(t, err)
	assert.Nil(t, ev.Issue)
}

func TestParseIssueEvent_Invalid(t *testing.T) {
	_, err := ParseIssueEvent([]byte(`{not json`))
	assert.Error(t, err)
}

func TestReadIssueEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(openedEvent), 0o644))

	ev, err := ReadIssueEvent(path)
	require.NoError(t, err)
	assert.Equal(t, 42, ev.Issue.Number)

	_, err = ReadIssueEvent(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
