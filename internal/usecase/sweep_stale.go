package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/git-triage/internal/domain"
)

// staleLabelConcurrency bounds concurrent label calls during a sweep.
const staleLabelConcurrency = 4

// SweepStaleInput contains the parameters for a staleness sweep.
type SweepStaleInput struct {
	Config *domain.Config
	Repo   domain.RepoRef
	Apply  bool // Add the stale label to stale issues that lack it
}

// StaleIssue is one issue found stale by a sweep.
// Fields are ordered to minimize memory padding.
type StaleIssue struct {
	Title          string
	UpdatedAt      string
	Number         int
	AlreadyLabeled bool // Carried the stale label before the sweep
	Labeled        bool // Stale label added by this sweep
}

// SweepStaleOutput contains the result of a staleness sweep.
type SweepStaleOutput struct {
	Stale    []StaleIssue
	Checked  int
	Disabled bool // Staleness policy is absent or disabled
}

// SweepStale evaluates every open issue of a repository against the
// staleness policy and optionally labels the stale ones.
type SweepStale struct {
	tracker domain.IssueTracker
	clock   domain.Clock
	logger  domain.Logger
}

// NewSweepStale creates a new SweepStale use case.
func NewSweepStale(tracker domain.IssueTracker, clock domain.Clock, logger domain.Logger) *SweepStale {
	return &SweepStale{tracker: tracker, clock: clock, logger: logger}
}

// Execute runs the sweep. The first failed label call cancels the rest.
func (uc *SweepStale) Execute(ctx context.Context, in SweepStaleInput) (*SweepStaleOutput, error) {
	cfg := in.Config
	if cfg.Staleness == nil || !cfg.Staleness.Enabled {
		uc.info("staleness policy disabled, nothing to sweep")
		return &SweepStaleOutput{Disabled: true}, nil
	}
	staleLabel := cfg.Staleness.StaleLabel
	if in.Apply && staleLabel == "" {
		return nil, fmt.Errorf("%w: stale.staleLabel is required to apply labels", domain.ErrConfig)
	}

	issues, err := uc.tracker.ListOpenIssues(ctx, in.Repo)
	if err != nil {
		return nil, fmt.Errorf("list open issues: %w", err)
	}

	now := uc.clock.Now()
	out := &SweepStaleOutput{Checked: len(issues)}
	for i := range issues {
		issue := &issues[i]
		if !domain.IsStale(cfg, issue.UpdatedAt, issue.Labels, now) {
			continue
		}
		out.Stale = append(out.Stale, StaleIssue{
			Number:         issue.Number,
			Title:          issue.Title,
			UpdatedAt:      issue.UpdatedAt,
			AlreadyLabeled: staleLabel != "" && issue.HasLabel(staleLabel),
		})
	}
	uc.info(fmt.Sprintf("%d of %d open issue(s) are stale", len(out.Stale), out.Checked))

	if !in.Apply {
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(staleLabelConcurrency)
	for i := range out.Stale {
		if out.Stale[i].AlreadyLabeled {
			continue
		}
		entry := &out.Stale[i]
		g.Go(func() error {
			if err := uc.tracker.AddLabels(gctx, in.Repo, entry.Number, []string{staleLabel}); err != nil {
				return fmt.Errorf("label issue #%d stale: %w", entry.Number, err)
			}
			entry.Labeled = true
			if uc.logger != nil {
				uc.logger.Info(entry.Number, "stale", "applied label "+staleLabel)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *SweepStale) info(msg string) {
	if uc.logger != nil {
		uc.logger.Info(0, "stale", msg)
	}
}
