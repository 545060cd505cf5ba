package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/testutil"
)

func samplePayload(issue int, generatedAt string) *domain.TelemetryPayload {
	track := "sprint"
	return &domain.TelemetryPayload{
		Version:     domain.TelemetryVersion,
		Event:       domain.TelemetryEventName,
		EventID:     "evt-1",
		GeneratedAt: generatedAt,
		Repository:  domain.RepoRef{Owner: "acme", Repo: "widgets"},
		Issue: domain.IssueSnapshot{
			ID:     1000 + int64(issue),
			Number: issue,
			Title:  "Issue",
			State:  "open",
			Labels: []string{"bug"},
		},
		Classification: domain.ClassificationResult{
			Track:      &track,
			Violations: []string{},
			Actions:    []string{},
		},
	}
}

func TestStore_Write(t *testing.T) {
	root := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 4, 5, 6, 7, 8, 9_000_000, time.UTC)}
	store := New(root, clock)

	receipt := store.Write(42, samplePayload(42, "2025-04-05T06:07:08.009Z"))

	require.NoError(t, receipt.Err)
	assert.True(t, receipt.OK())
	assert.Equal(t, filepath.Join(root, "widgets", "events", "42-2025-04-05T06:07:08-009Z.json"), receipt.Path)

	data, err := os.ReadFile(receipt.Path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "issue_event", got["event"])
	assert.Equal(t, map[string]any{"owner": "acme", "repo": "widgets"}, got["repository"])
	classification := got["classification"].(map[string]any)
	assert.Equal(t, "sprint", classification["track"])
	assert.Nil(t, classification["trackLabelToApply"])
	issue := got["issue"].(map[string]any)
	assert.Nil(t, issue["milestone"])
	assert.Equal(t, float64(42), issue["number"])
}

func TestStore_Write_FailureIsReturnedInReceipt(t *testing.T) {
	// A regular file where the root directory should be.
	root := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o600))
	store := New(root, &testutil.MockClock{NowTime: time.Now()})

	receipt := store.Write(1, samplePayload(1, "2025-01-01T00:00:00.000Z"))

	assert.Error(t, receipt.Err)
	assert.Empty(t, receipt.Path)
	assert.False(t, receipt.OK())
}

func TestStore_Write_SameInstantDoesNotOverwrite(t *testing.T) {
	root := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)}
	store := New(root, clock)

	first := store.Write(7, samplePayload(7, "2025-04-05T06:07:08.000Z"))
	require.True(t, first.OK())
	before, err := os.ReadFile(first.Path)
	require.NoError(t, err)

	second := samplePayload(7, "2025-04-05T06:07:08.000Z")
	second.EventID = "evt-2"
	receipt := store.Write(7, second)

	assert.False(t, receipt.OK())
	assert.Empty(t, receipt.Path)
	assert.ErrorIs(t, receipt.Err, os.ErrExist)

	after, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_ListEvents(t *testing.T) {
	root := t.TempDir()
	clock := &testutil.MockClock{NowTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := New(root, clock)

	require.True(t, store.Write(1, samplePayload(1, "2025-01-01T00:00:00.000Z")).OK())
	clock.NowTime = clock.NowTime.Add(time.Hour)
	require.True(t, store.Write(2, samplePayload(2, "2025-01-01T01:00:00.000Z")).OK())

	eventsDir := domain.TelemetryEventsDir(root, "widgets")
	require.NoError(t, os.WriteFile(filepath.Join(eventsDir, "broken.json"), []byte("{"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(eventsDir, "notes.txt"), []byte("ignored"), 0o600))

	listing, err := store.ListEvents("widgets")
	require.NoError(t, err)
	require.Len(t, listing.Events, 2)
	assert.Equal(t, 2, listing.Events[0].Payload.Issue.Number, "newest first")
	assert.Equal(t, 1, listing.Events[1].Payload.Issue.Number)
	assert.Equal(t, []string{filepath.Join(eventsDir, "broken.json")}, listing.Skipped)
}

func TestStore_ListEvents_MissingDirectory(t *testing.T) {
	store := New(t.TempDir(), domain.RealClock{})

	listing, err := store.ListEvents("nothing-here")
	require.NoError(t, err)
	assert.Empty(t, listing.Events)
	assert.Empty(t, listing.Skipped)
}

func TestStore_WriteDashboard(t *testing.T) {
	store := New(t.TempDir(), domain.RealClock{})
	path := filepath.Join(t.TempDir(), "dashboard", "dashboard.json")

	err := store.WriteDashboard(path, &domain.Dashboard{
		Repository:  "acme/widgets",
		TotalEvents: 3,
		Tracks:      map[string]int{"sprint": 2, "hotfix": 1},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got domain.Dashboard
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 3, got.TotalEvents)
	assert.Equal(t, 2, got.Tracks["sprint"])

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
