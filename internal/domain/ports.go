package domain

import (
	"context"
	"time"
)

// IssueTracker is the remote issue tracker the triage engine corrects.
// Every method performs one blocking remote call with no retry.
type IssueTracker interface {
	// ListOpenMilestones returns all open milestones of the repository.
	ListOpenMilestones(ctx context.Context, ref RepoRef) ([]Milestone, error)

	// CreateMilestone creates an open milestone with the given title.
	CreateMilestone(ctx context.Context, ref RepoRef, title string) (Milestone, error)

	// UpdateIssueMilestone points the issue at the milestone.
	UpdateIssueMilestone(ctx context.Context, ref RepoRef, issueNumber, milestoneNumber int) error

	// AddLabels adds labels to the issue.
	AddLabels(ctx context.Context, ref RepoRef, issueNumber int, labels []string) error

	// ListOpenIssues returns the open issues of the repository, pull requests excluded.
	ListOpenIssues(ctx context.Context, ref RepoRef) ([]IssueSnapshot, error)
}

// TelemetrySink persists telemetry payloads.
// Write never fails the caller: failures are reported in the receipt.
type TelemetrySink interface {
	Write(issueNumber int, payload *TelemetryPayload) TelemetryReceipt
}

// TelemetryReader reads telemetry events back and writes the dashboard.
type TelemetryReader interface {
	// ListEvents returns the events recorded for a repository.
	ListEvents(repo string) (*EventListing, error)

	// WriteDashboard writes the dashboard document to path.
	WriteDashboard(path string, d *Dashboard) error
}

// ConfigLoader loads the orchestrator config document.
type ConfigLoader interface {
	// Load reads, normalizes and validates the config at path.
	Load(path string) (*Config, error)
}

// RepoDetector resolves the repository a working directory belongs to.
type RepoDetector interface {
	// DetectRepo returns the owner/repo of the directory's origin remote.
	DetectRepo(dir string) (RepoRef, error)
}

// Logger writes leveled log lines scoped to an issue.
// issue 0 means the line is not tied to an issue.
type Logger interface {
	Debug(issue int, category, msg string)
	Info(issue int, category, msg string)
	Warn(issue int, category, msg string)
	Error(issue int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
