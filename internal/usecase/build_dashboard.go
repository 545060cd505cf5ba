package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-triage/internal/domain"
)

// DashboardRecentLimit is the number of recent events kept on the dashboard.
const DashboardRecentLimit = 20

// BuildDashboardInput contains the parameters for building the dashboard.
type BuildDashboardInput struct {
	Config *domain.Config
	Repo   domain.RepoRef
	Path   string // Overrides the config's telemetry.dashboardPath
}

// BuildDashboardOutput contains the written dashboard.
type BuildDashboardOutput struct {
	Dashboard *domain.Dashboard
	Path      string
	Skipped   int
}

// BuildDashboard aggregates telemetry events into a dashboard document.
type BuildDashboard struct {
	reader domain.TelemetryReader
	clock  domain.Clock
	logger domain.Logger
}

// NewBuildDashboard creates a new BuildDashboard use case.
func NewBuildDashboard(reader domain.TelemetryReader, clock domain.Clock, logger domain.Logger) *BuildDashboard {
	return &BuildDashboard{reader: reader, clock: clock, logger: logger}
}

// Execute aggregates the events and writes the dashboard.
func (uc *BuildDashboard) Execute(_ context.Context, in BuildDashboardInput) (*BuildDashboardOutput, error) {
	listing, err := uc.reader.ListEvents(in.Repo.Repo)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	warnSkipped(uc.logger, listing.Skipped)

	d := AggregateEvents(listing.Events)
	d.Repository = in.Repo.String()
	d.GeneratedAt = domain.FormatTimestamp(uc.clock.Now())

	path := in.Path
	if path == "" {
		path = in.Config.DashboardPath()
	}
	if err := uc.reader.WriteDashboard(path, d); err != nil {
		return nil, fmt.Errorf("write dashboard: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(0, "dashboard", fmt.Sprintf("aggregated %d event(s) into %s", d.TotalEvents, path))
	}
	return &BuildDashboardOutput{Dashboard: d, Path: path, Skipped: len(listing.Skipped)}, nil
}

// AggregateEvents counts events per track, violation and action kind.
// Events must be ordered newest first; the first DashboardRecentLimit
// become the recent entries.
func AggregateEvents(events []domain.StoredEvent) *domain.Dashboard {
	d := &domain.Dashboard{
		Tracks:      make(map[string]int),
		Violations:  make(map[string]int),
		Actions:     make(map[string]int),
		Recent:      []domain.DashboardEntry{},
		TotalEvents: len(events),
	}

	for i := range events {
		p := &events[i].Payload
		c := p.Classification

		track := "none"
		if c.Track != nil {
			track = *c.Track
		}
		d.Tracks[track]++
		for _, v := range c.Violations {
			d.Violations[v]++
		}
		for _, a := range c.Actions {
			kind, _, _ := strings.Cut(a, ":")
			d.Actions[kind]++
		}

		if len(d.Recent) < DashboardRecentLimit {
			d.Recent = append(d.Recent, domain.DashboardEntry{
				Issue:       p.Issue.Number,
				Title:       p.Issue.Title,
				Track:       c.Track,
				Milestone:   p.Issue.Milestone,
				Actions:     c.Actions,
				GeneratedAt: p.GeneratedAt,
			})
		}
	}
	return d
}
