package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferMilestoneTitle(t *testing.T) {
	withPattern := &Config{
		Version:    1,
		Tracks:     []Track{{ID: "sprint"}},
		Milestones: &MilestonePolicy{SprintPattern: "Sprint {major}.{minor}"},
	}
	noPattern := &Config{Version: 1, Tracks: []Track{{ID: "sprint"}}}

	tests := []struct {
		name  string
		cfg   *Config
		track *string
		want  *string
	}{
		{"sprint with pattern", withPattern, ptr("sprint"), ptr("Sprint 1.0")},
		{"other track", withPattern, ptr("alpha"), nil},
		{"nil track", withPattern, nil, nil},
		{"sprint without milestones section", noPattern, ptr("sprint"), nil},
		{"empty pattern", &Config{Milestones: &MilestonePolicy{}}, ptr("sprint"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferMilestoneTitle(tt.cfg, tt.track)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestInferMilestoneTitle_PatternWithoutPlaceholders(t *testing.T) {
	cfg := &Config{Milestones: &MilestonePolicy{SprintPattern: "Current sprint"}}

	got := InferMilestoneTitle(cfg, ptr("sprint"))

	require.NotNil(t, got)
	assert.Equal(t, "Current sprint", *got)
}

func TestMilestoneNeedsChange(t *testing.T) {
	tests := []struct {
		name    string
		current *string
		desired *string
		want    bool
	}{
		{"none to title", nil, ptr("Sprint 1.0"), true},
		{"different title", ptr("Sprint 0.9"), ptr("Sprint 1.0"), true},
		{"same title", ptr("Sprint 1.0"), ptr("Sprint 1.0"), false},
		{"case differs", ptr("sprint 1.0"), ptr("Sprint 1.0"), true},
		{"nothing desired", ptr("Sprint 1.0"), nil, false},
		{"both none", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MilestoneNeedsChange(tt.current, tt.desired))
		})
	}
}
