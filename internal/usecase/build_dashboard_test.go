package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/testutil"
	"github.com/runoshun/git-triage/internal/usecase"
)

func storedEvent(issue int, track *string, violations, actions []string) domain.StoredEvent {
	return domain.StoredEvent{
		Path: fmt.Sprintf("events/%d.json", issue),
		Payload: domain.TelemetryPayload{
			GeneratedAt: fmt.Sprintf("2025-01-01T00:00:%02d.000Z", 59-issue),
			Issue:       domain.IssueSnapshot{Number: issue, Title: fmt.Sprintf("Issue %d", issue)},
			Classification: domain.ClassificationResult{
				Track:      track,
				Violations: violations,
				Actions:    actions,
			},
		},
	}
}

func TestAggregateEvents(t *testing.T) {
	events := []domain.StoredEvent{
		storedEvent(1, ptr("sprint"), []string{"missing-track"}, []string{"apply-label:track/sprint", "apply-track-label:track/sprint", "set-milestone:Sprint 1.0"}),
		storedEvent(2, ptr("sprint"), []string{}, []string{"set-milestone:Sprint 1.0"}),
		storedEvent(3, ptr("hotfix"), []string{}, []string{}),
		storedEvent(4, nil, []string{"missing-track"}, []string{}),
	}

	d := usecase.AggregateEvents(events)

	assert.Equal(t, 4, d.TotalEvents)
	assert.Equal(t, map[string]int{"sprint": 2, "hotfix": 1, "none": 1}, d.Tracks)
	assert.Equal(t, map[string]int{"missing-track": 2}, d.Violations)
	assert.Equal(t, map[string]int{"apply-label": 1, "apply-track-label": 1, "set-milestone": 2}, d.Actions)
	require.Len(t, d.Recent, 4)
	assert.Equal(t, 1, d.Recent[0].Issue)
	assert.Equal(t, "Issue 1", d.Recent[0].Title)
}

func TestAggregateEvents_RecentIsCapped(t *testing.T) {
	var events []domain.StoredEvent
	for i := 0; i < 30; i++ {
		events = append(events, storedEvent(i, ptr("sprint"), nil, nil))
	}

	d := usecase.AggregateEvents(events)

	assert.Equal(t, 30, d.TotalEvents)
	assert.Len(t, d.Recent, usecase.DashboardRecentLimit)
	assert.Equal(t, 0, d.Recent[0].Issue)
}

func TestBuildDashboard_Execute(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)}

	t.Run("writes to configured path", func(t *testing.T) {
		reader := &testutil.MockTelemetryReader{Listing: &domain.EventListing{
			Events:  []domain.StoredEvent{storedEvent(1, ptr("sprint"), nil, nil)},
			Skipped: []string{"events/bad.json"},
		}}
		logger := &testutil.MockLogger{}
		cfg := healingConfig()
		cfg.Telemetry.DashboardPath = "out/dash.json"

		out, err := usecase.NewBuildDashboard(reader, clock, logger).Execute(context.Background(), usecase.BuildDashboardInput{
			Config: cfg,
			Repo:   testRepo,
		})

		require.NoError(t, err)
		assert.Equal(t, "out/dash.json", out.Path)
		assert.Equal(t, 1, out.Skipped)
		assert.Same(t, out.Dashboard, reader.Dashboards["out/dash.json"])
		assert.Equal(t, "acme/widgets", out.Dashboard.Repository)
		assert.Equal(t, "2025-02-02T00:00:00.000Z", out.Dashboard.GeneratedAt)
		assert.True(t, logger.HasLevel("warn"))
	})

	t.Run("path override and default", func(t *testing.T) {
		reader := &testutil.MockTelemetryReader{}
		uc := usecase.NewBuildDashboard(reader, clock, nil)

		out, err := uc.Execute(context.Background(), usecase.BuildDashboardInput{Config: healingConfig(), Repo: testRepo, Path: "x.json"})
		require.NoError(t, err)
		assert.Equal(t, "x.json", out.Path)

		out, err = uc.Execute(context.Background(), usecase.BuildDashboardInput{Config: healingConfig(), Repo: testRepo})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultDashboardPath, out.Path)
		assert.Equal(t, 0, out.Dashboard.TotalEvents)
	})

	t.Run("write failure", func(t *testing.T) {
		reader := &testutil.MockTelemetryReader{WriteErr: errors.New("read-only")}

		_, err := usecase.NewBuildDashboard(reader, clock, nil).Execute(context.Background(), usecase.BuildDashboardInput{Config: healingConfig(), Repo: testRepo})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only")
	})
}

func TestListEvents_Execute(t *testing.T) {
	reader := &testutil.MockTelemetryReader{Listing: &domain.EventListing{
		Events: []domain.StoredEvent{
			storedEvent(1, ptr("sprint"), nil, nil),
			storedEvent(2, ptr("sprint"), nil, nil),
			storedEvent(3, ptr("sprint"), nil, nil),
		},
	}}
	uc := usecase.NewListEvents(reader, nil)

	out, err := uc.Execute(context.Background(), usecase.ListEventsInput{Repo: testRepo, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Events, 2)
	assert.Equal(t, 3, out.Total)

	out, err = uc.Execute(context.Background(), usecase.ListEventsInput{Repo: testRepo})
	require.NoError(t, err)
	assert.Len(t, out.Events, 3)

	reader.ListErr = errors.New("permission denied")
	_, err = uc.Execute(context.Background(), usecase.ListEventsInput{Repo: testRepo})
	require.Error(t, err)
}
