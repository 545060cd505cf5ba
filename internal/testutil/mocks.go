// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/git-triage/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIssueTracker is an in-memory test double for domain.IssueTracker.
// It records every call in Calls, in order.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	IssueMilestones map[int]int      // issue number -> milestone number
	IssueLabels     map[int][]string // issue number -> added labels
	Milestones      []domain.Milestone
	OpenIssues      []domain.IssueSnapshot
	Calls           []string

	ListMilestonesErr error
	CreateErr         error
	UpdateErr         error
	AddLabelsErr      error
	ListIssuesErr     error

	NextMilestoneNumber int
	mu                  sync.Mutex
}

// NewMockIssueTracker creates a tracker holding the given open milestones.
func NewMockIssueTracker(milestones ...domain.Milestone) *MockIssueTracker {
	next := 1
	for _, m := range milestones {
		if m.Number >= next {
			next = m.Number + 1
		}
	}
	return &MockIssueTracker{
		Milestones:          milestones,
		IssueMilestones:     make(map[int]int),
		IssueLabels:         make(map[int][]string),
		NextMilestoneNumber: next,
	}
}

func (m *MockIssueTracker) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

// CountCalls returns how many recorded calls start with prefix.
func (m *MockIssueTracker) CountCalls(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// ListOpenMilestones returns the stored milestones.
func (m *MockIssueTracker) ListOpenMilestones(_ context.Context, ref domain.RepoRef) ([]domain.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("list-milestones %s", ref)
	if m.ListMilestonesErr != nil {
		return nil, m.ListMilestonesErr
	}
	return append([]domain.Milestone(nil), m.Milestones...), nil
}

// CreateMilestone stores a new milestone.
func (m *MockIssueTracker) CreateMilestone(_ context.Context, ref domain.RepoRef, title string) (domain.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("create-milestone %s %s", ref, title)
	if m.CreateErr != nil {
		return domain.Milestone{}, m.CreateErr
	}
	ms := domain.Milestone{Number: m.NextMilestoneNumber, Title: title}
	m.NextMilestoneNumber++
	m.Milestones = append(m.Milestones, ms)
	return ms, nil
}

// UpdateIssueMilestone records the issue's milestone.
func (m *MockIssueTracker) UpdateIssueMilestone(_ context.Context, ref domain.RepoRef, issueNumber, milestoneNumber int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("update-issue %s#%d milestone=%d", ref, issueNumber, milestoneNumber)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.IssueMilestones[issueNumber] = milestoneNumber
	return nil
}

// AddLabels records the labels added to the issue.
func (m *MockIssueTracker) AddLabels(_ context.Context, ref domain.RepoRef, issueNumber int, labels []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("add-labels %s#%d %v", ref, issueNumber, labels)
	if m.AddLabelsErr != nil {
		return m.AddLabelsErr
	}
	m.IssueLabels[issueNumber] = append(m.IssueLabels[issueNumber], labels...)
	return nil
}

// ListOpenIssues returns the stored open issues.
func (m *MockIssueTracker) ListOpenIssues(_ context.Context, ref domain.RepoRef) ([]domain.IssueSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("list-issues %s", ref)
	if m.ListIssuesErr != nil {
		return nil, m.ListIssuesErr
	}
	return append([]domain.IssueSnapshot(nil), m.OpenIssues...), nil
}

// MockTelemetrySink is a test double for domain.TelemetrySink.
type MockTelemetrySink struct {
	Err      error
	Payloads []*domain.TelemetryPayload
	Path     string
}

// Write records the payload and returns the configured receipt.
func (m *MockTelemetrySink) Write(issueNumber int, payload *domain.TelemetryPayload) domain.TelemetryReceipt {
	m.Payloads = append(m.Payloads, payload)
	if m.Err != nil {
		return domain.TelemetryReceipt{Err: m.Err}
	}
	path := m.Path
	if path == "" {
		path = fmt.Sprintf("telemetry/%s/events/%d.json", payload.Repository.Repo, issueNumber)
	}
	return domain.TelemetryReceipt{Path: path}
}

// MockTelemetryReader is a test double for domain.TelemetryReader.
type MockTelemetryReader struct {
	Listing    *domain.EventListing
	ListErr    error
	WriteErr   error
	Dashboards map[string]*domain.Dashboard
}

// ListEvents returns the configured listing.
func (m *MockTelemetryReader) ListEvents(_ string) (*domain.EventListing, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if m.Listing == nil {
		return &domain.EventListing{}, nil
	}
	return m.Listing, nil
}

// WriteDashboard records the dashboard under its path.
func (m *MockTelemetryReader) WriteDashboard(path string, d *domain.Dashboard) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.Dashboards == nil {
		m.Dashboards = make(map[string]*domain.Dashboard)
	}
	m.Dashboards[path] = d
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
	Paths  []string
}

// Load returns the configured config.
func (m *MockConfigLoader) Load(path string) (*domain.Config, error) {
	m.Paths = append(m.Paths, path)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Config, nil
}

// LogLine is one line captured by MockLogger.
type LogLine struct {
	Level    string
	Category string
	Msg      string
	Issue    int
}

// MockLogger captures log lines.
type MockLogger struct {
	Lines []LogLine
	mu    sync.Mutex
}

func (m *MockLogger) add(level string, issue int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, LogLine{Level: level, Issue: issue, Category: category, Msg: msg})
}

// Debug records a debug line.
func (m *MockLogger) Debug(issue int, category, msg string) { m.add("debug", issue, category, msg) }

// Info records an info line.
func (m *MockLogger) Info(issue int, category, msg string) { m.add("info", issue, category, msg) }

// Warn records a warn line.
func (m *MockLogger) Warn(issue int, category, msg string) { m.add("warn", issue, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(issue int, category, msg string) { m.add("error", issue, category, msg) }

// HasLevel reports whether any line was logged at level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.Lines {
		if l.Level == level {
			return true
		}
	}
	return false
}
