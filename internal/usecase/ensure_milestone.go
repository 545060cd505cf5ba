package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-triage/internal/domain"
)

// MilestoneReconciler guarantees that a titled milestone exists and that
// issues point at it.
//
// Titles resolved through a reconciler are remembered for its lifetime, so
// one run issues at most one create call per title. Separate runs share
// nothing: two runs racing on the same repository can both miss the title
// and create duplicates, since list-then-create is not atomic.
type MilestoneReconciler struct {
	tracker  domain.IssueTracker
	logger   domain.Logger
	resolved map[string]int
}

// NewMilestoneReconciler creates a new MilestoneReconciler.
func NewMilestoneReconciler(tracker domain.IssueTracker, logger domain.Logger) *MilestoneReconciler {
	return &MilestoneReconciler{
		tracker:  tracker,
		logger:   logger,
		resolved: make(map[string]int),
	}
}

func resolvedKey(ref domain.RepoRef, title string) string {
	return ref.String() + "\x00" + title
}

// EnsureMilestone returns the number of the open milestone titled exactly
// title, creating it when no such milestone exists.
func (r *MilestoneReconciler) EnsureMilestone(ctx context.Context, ref domain.RepoRef, title string) (int, error) {
	key := resolvedKey(ref, title)
	if number, ok := r.resolved[key]; ok {
		return number, nil
	}

	if r.logger != nil {
		r.logger.Info(0, "milestone", fmt.Sprintf("ensuring milestone %q exists", title))
	}

	milestones, err := r.tracker.ListOpenMilestones(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("list milestones: %w", err)
	}
	for _, m := range milestones {
		if m.Title == title {
			if r.logger != nil {
				r.logger.Debug(0, "milestone", fmt.Sprintf("milestone %q already exists (#%d)", title, m.Number))
			}
			r.resolved[key] = m.Number
			return m.Number, nil
		}
	}

	if r.logger != nil {
		r.logger.Info(0, "milestone", fmt.Sprintf("creating milestone %q", title))
	}
	created, err := r.tracker.CreateMilestone(ctx, ref, title)
	if err != nil {
		return 0, fmt.Errorf("create milestone %q: %w", title, err)
	}
	r.resolved[key] = created.Number
	return created.Number, nil
}

// AttachMilestoneToIssue points the issue at the milestone.
// The update is always sent, even when the issue already has the milestone.
func (r *MilestoneReconciler) AttachMilestoneToIssue(ctx context.Context, ref domain.RepoRef, issueNumber, milestoneNumber int) error {
	if r.logger != nil {
		r.logger.Info(issueNumber, "milestone", fmt.Sprintf("attaching milestone #%d", milestoneNumber))
	}
	if err := r.tracker.UpdateIssueMilestone(ctx, ref, issueNumber, milestoneNumber); err != nil {
		return fmt.Errorf("attach milestone #%d to issue #%d: %w", milestoneNumber, issueNumber, err)
	}
	return nil
}
