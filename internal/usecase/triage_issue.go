// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/runoshun/git-triage/internal/domain"
)

// TriageIssueInput contains the parameters for triaging one issue event.
// Fields are ordered to minimize memory padding.
type TriageIssueInput struct {
	Config           *domain.Config       // Validated orchestrator config (required)
	Issue            domain.IssueSnapshot // Issue from the triggering event
	Repo             domain.RepoRef       // Repository the issue belongs to
	TelemetryEnabled bool                 // Environment gate, combined with the config's telemetry.enabled
}

// TriageIssueOutput contains the result of a triage run.
type TriageIssueOutput struct {
	Payload        *domain.TelemetryPayload // Assembled telemetry record, nil when telemetry is disabled
	Result         domain.RunResult
	Classification domain.ClassificationResult
}

// TriageIssue is the use case that classifies one issue, self-heals its
// track label and milestone, and records telemetry.
type TriageIssue struct {
	tracker    domain.IssueTracker
	milestones *MilestoneReconciler
	sink       domain.TelemetrySink
	clock      domain.Clock
	logger     domain.Logger
	newID      func() string
}

// NewTriageIssue creates a new TriageIssue use case.
func NewTriageIssue(tracker domain.IssueTracker, sink domain.TelemetrySink, clock domain.Clock, logger domain.Logger) *TriageIssue {
	return &TriageIssue{
		tracker:    tracker,
		milestones: NewMilestoneReconciler(tracker, logger),
		sink:       sink,
		clock:      clock,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// Execute runs the triage sequence. Tracker failures abort the run and no
// result is returned; telemetry failures are logged and swallowed.
func (uc *TriageIssue) Execute(ctx context.Context, in TriageIssueInput) (*TriageIssueOutput, error) {
	cfg := in.Config
	issue := in.Issue
	n := issue.Number

	uc.info(n, "run", fmt.Sprintf("processing issue #%d in %s", n, in.Repo))

	labels := issue.Labels
	if cfg.NormalizesLabels() {
		labels = domain.NormalizeLabels(labels)
	}

	result := domain.Classify(cfg, labels)
	uc.info(n, "classify", "track: "+deref(result.Track, "none"))
	if len(result.Violations) > 0 && uc.logger != nil {
		uc.logger.Warn(n, "classify", "violations: "+strings.Join(result.Violations, ", "))
	}

	if cfg.HealsMissingTrack() && result.TrackLabelToApply != nil {
		label := *result.TrackLabelToApply
		uc.info(n, "self-heal", "applying missing track label: "+label)
		if err := uc.tracker.AddLabels(ctx, in.Repo, n, []string{label}); err != nil {
			return nil, fmt.Errorf("apply track label: %w", err)
		}
		result.AddAction(domain.ActionApplyTrackLabel, label)
	}

	finalMilestone := issue.Milestone
	if cfg.HealsMissingMilestone() {
		desired := domain.InferMilestoneTitle(cfg, result.Track)
		if domain.MilestoneNeedsChange(finalMilestone, desired) {
			uc.info(n, "self-heal", fmt.Sprintf("ensuring milestone %q exists and is attached", *desired))
			number, err := uc.milestones.EnsureMilestone(ctx, in.Repo, *desired)
			if err != nil {
				return nil, fmt.Errorf("ensure milestone: %w", err)
			}
			if err := uc.milestones.AttachMilestoneToIssue(ctx, in.Repo, n, number); err != nil {
				return nil, err
			}
			finalMilestone = desired
			result.AddAction(domain.ActionSetMilestone, *desired)
		}
	}

	out := &TriageIssueOutput{
		Classification: result,
		Result: domain.RunResult{
			Track:     result.Track,
			Actions:   result.Actions,
			Milestone: finalMilestone,
		},
	}

	if !in.TelemetryEnabled || !cfg.TelemetryEnabled() {
		uc.info(n, "telemetry", "telemetry disabled by configuration or environment")
		return out, nil
	}

	recorded := issue
	recorded.Milestone = finalMilestone
	out.Payload = &domain.TelemetryPayload{
		Version:        domain.TelemetryVersion,
		Event:          domain.TelemetryEventName,
		EventID:        uc.newID(),
		GeneratedAt:    domain.FormatTimestamp(uc.clock.Now()),
		Repository:     in.Repo,
		Issue:          recorded,
		Classification: result,
	}

	receipt := uc.sink.Write(n, out.Payload)
	if receipt.OK() {
		path := receipt.Path
		out.Result.TelemetryFile = &path
		uc.info(n, "telemetry", "telemetry written to "+path)
	} else if uc.logger != nil {
		msg := "telemetry was enabled but no file was written"
		if receipt.Err != nil {
			msg += ": " + receipt.Err.Error()
		}
		uc.logger.Warn(n, "telemetry", msg)
	}

	return out, nil
}

func (uc *TriageIssue) info(issue int, category, msg string) {
	if uc.logger != nil {
		uc.logger.Info(issue, category, msg)
	}
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
