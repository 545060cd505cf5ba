package usecase_test

import (
	"github.com/runoshun/git-triage/internal/domain"
)

var testRepo = domain.RepoRef{Owner: "acme", Repo: "widgets"}

func ptr(s string) *string { return &s }

func threshold(days float64) *float64 { return &days }

// healingConfig returns a config with the sprint and hotfix tracks and every
// self-healing flag on.
func healingConfig() *domain.Config {
	return &domain.Config{
		Version: 1,
		Tracks: []domain.Track{
			{ID: "sprint", Label: "Sprint"},
			{ID: "hotfix", Label: "Hotfix"},
		},
		Milestones: &domain.MilestonePolicy{SprintPattern: "Sprint {major}.{minor}"},
		SelfHealing: &domain.SelfHealingPolicy{
			Enabled:             true,
			NormalizeLabels:     true,
			FixMissingTrack:     true,
			FixMissingMilestone: true,
		},
		Telemetry: &domain.TelemetryPolicy{Enabled: true},
	}
}
