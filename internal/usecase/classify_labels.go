package usecase

import (
	"context"

	"github.com/runoshun/git-triage/internal/domain"
)

// ClassifyLabelsInput contains the parameters for an offline classification.
// Fields are ordered to minimize memory padding.
type ClassifyLabelsInput struct {
	Config    *domain.Config
	Milestone *string // Current milestone title, if any
	UpdatedAt string  // Last update timestamp; staleness is skipped when empty
	Labels    []string
}

// ClassifyLabelsOutput describes what a run would do, without doing it.
type ClassifyLabelsOutput struct {
	DesiredMilestone *string
	Classification   domain.ClassificationResult
	MilestoneChange  bool
	Stale            bool
}

// ClassifyLabels previews triage decisions for a label set.
// It never calls the issue tracker.
type ClassifyLabels struct {
	clock domain.Clock
}

// NewClassifyLabels creates a new ClassifyLabels use case.
func NewClassifyLabels(clock domain.Clock) *ClassifyLabels {
	return &ClassifyLabels{clock: clock}
}

// Execute classifies the labels and resolves the desired milestone.
func (uc *ClassifyLabels) Execute(_ context.Context, in ClassifyLabelsInput) (*ClassifyLabelsOutput, error) {
	cfg := in.Config
	labels := in.Labels
	if cfg.NormalizesLabels() {
		labels = domain.NormalizeLabels(labels)
	}

	result := domain.Classify(cfg, labels)
	desired := domain.InferMilestoneTitle(cfg, result.Track)

	out := &ClassifyLabelsOutput{
		Classification:   result,
		DesiredMilestone: desired,
		MilestoneChange:  domain.MilestoneNeedsChange(in.Milestone, desired),
	}
	// Exclusions match the labels as they appear on the issue, as in the sweep.
	if in.UpdatedAt != "" {
		out.Stale = domain.IsStale(cfg, in.UpdatedAt, in.Labels, uc.clock.Now())
	}
	return out, nil
}
