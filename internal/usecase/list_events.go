package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-triage/internal/domain"
)

// ListEventsInput contains the parameters for listing telemetry events.
type ListEventsInput struct {
	Repo  domain.RepoRef
	Limit int // Maximum events returned; 0 means all
}

// ListEventsOutput contains the listed events, newest first.
type ListEventsOutput struct {
	Events  []domain.StoredEvent
	Skipped []string
	Total   int // Events found before the limit was applied
}

// ListEvents reads recorded telemetry events for a repository.
type ListEvents struct {
	reader domain.TelemetryReader
	logger domain.Logger
}

// NewListEvents creates a new ListEvents use case.
func NewListEvents(reader domain.TelemetryReader, logger domain.Logger) *ListEvents {
	return &ListEvents{reader: reader, logger: logger}
}

// Execute returns the repository's events.
func (uc *ListEvents) Execute(_ context.Context, in ListEventsInput) (*ListEventsOutput, error) {
	listing, err := uc.reader.ListEvents(in.Repo.Repo)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	warnSkipped(uc.logger, listing.Skipped)

	events := listing.Events
	total := len(events)
	if in.Limit > 0 && len(events) > in.Limit {
		events = events[:in.Limit]
	}
	return &ListEventsOutput{Events: events, Skipped: listing.Skipped, Total: total}, nil
}

func warnSkipped(logger domain.Logger, skipped []string) {
	if logger == nil {
		return
	}
	for _, path := range skipped {
		logger.Warn(0, "telemetry", "skipping unreadable event file "+path)
	}
}
