package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/testutil"
	"github.com/runoshun/git-triage/internal/usecase"
)

func TestClassifyLabels_Execute(t *testing.T) {
	clock := &testutil.MockClock{NowTime: sweepNow}
	uc := usecase.NewClassifyLabels(clock)

	t.Run("preview for unlabeled issue", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ClassifyLabelsInput{Config: healingConfig()})

		require.NoError(t, err)
		assert.Equal(t, ptr("sprint"), out.Classification.Track)
		assert.Equal(t, ptr("Sprint 1.0"), out.DesiredMilestone)
		assert.True(t, out.MilestoneChange)
		assert.False(t, out.Stale)
	})

	t.Run("labels are normalized when enabled", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ClassifyLabelsInput{
			Config:    healingConfig(),
			Labels:    []string{" TRACK/HOTFIX"},
			Milestone: ptr("Q1"),
		})

		require.NoError(t, err)
		assert.Equal(t, ptr("hotfix"), out.Classification.Track)
		assert.Nil(t, out.DesiredMilestone)
		assert.False(t, out.MilestoneChange)
	})

	t.Run("staleness is evaluated when a timestamp is given", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), usecase.ClassifyLabelsInput{
			Config:    staleConfig(),
			Labels:    []string{"track/sprint"},
			UpdatedAt: sweepNow.Add(-40 * 24 * time.Hour).Format(time.RFC3339),
		})

		require.NoError(t, err)
		assert.True(t, out.Stale)
	})

	t.Run("stale exclusions match labels before normalization", func(t *testing.T) {
		cfg := staleConfig()
		cfg.Staleness.ExcludeLabels = []string{"Pinned"}
		in := usecase.ClassifyLabelsInput{
			Config:    cfg,
			Labels:    []string{"Pinned"},
			UpdatedAt: daysAgo(40),
		}

		out, err := uc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, out.Stale, "raw label Pinned is excluded")

		in.Labels = []string{"pinned"}
		out, err = uc.Execute(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, out.Stale, "normalized spelling is not the excluded label")
	})
}
