// Package telemetry provides a JSON file-based telemetry event store.
//
// Layout (inside the telemetry root):
//
//	<repo>/events/<issue>-<timestamp>.json
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/runoshun/git-triage/internal/domain"
)

// Ensure Store implements the telemetry ports.
var (
	_ domain.TelemetrySink   = (*Store)(nil)
	_ domain.TelemetryReader = (*Store)(nil)
)

// Store writes telemetry events under a root directory.
type Store struct {
	clock domain.Clock
	root  string
}

// New creates a Store rooted at root.
// The directory does not need to exist; it is created on first write.
func New(root string, clock domain.Clock) *Store {
	return &Store{root: root, clock: clock}
}

// Root returns the telemetry root directory.
func (s *Store) Root() string {
	return s.root
}

// Write persists the payload as a new event file and returns its path.
// Failures, including an event file that already exists, are returned in
// the receipt, never raised.
func (s *Store) Write(issueNumber int, payload *domain.TelemetryPayload) domain.TelemetryReceipt {
	path := domain.TelemetryEventPath(s.root, payload.Repository.Repo, issueNumber, s.clock.Now())

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return domain.TelemetryReceipt{Err: fmt.Errorf("create events directory: %w", err)}
	}

	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return domain.TelemetryReceipt{Err: fmt.Errorf("marshal telemetry payload: %w", err)}
	}

	if err := writeNewFile(path, content); err != nil {
		return domain.TelemetryReceipt{Err: fmt.Errorf("write telemetry event: %w", err)}
	}
	return domain.TelemetryReceipt{Path: path}
}

// writeNewFile creates path and writes content to it. An existing event file
// is never overwritten; the collision surfaces as os.ErrExist.
func writeNewFile(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListEvents returns the repository's events, newest first.
// Files that cannot be read or parsed are reported in Skipped.
func (s *Store) ListEvents(repo string) (*domain.EventListing, error) {
	dir := domain.TelemetryEventsDir(s.root, repo)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.EventListing{}, nil
		}
		return nil, fmt.Errorf("read events directory: %w", err)
	}

	listing := &domain.EventListing{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			listing.Skipped = append(listing.Skipped, path)
			continue
		}
		var payload domain.TelemetryPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			listing.Skipped = append(listing.Skipped, path)
			continue
		}
		listing.Events = append(listing.Events, domain.StoredEvent{Path: path, Payload: payload})
	}

	slices.SortFunc(listing.Events, func(a, b domain.StoredEvent) int {
		if c := strings.Compare(b.Payload.GeneratedAt, a.Payload.GeneratedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return listing, nil
}

// WriteDashboard writes the dashboard document to path.
// Concurrent writers are serialized by an advisory lock next to the file.
func (s *Store) WriteDashboard(path string, d *domain.Dashboard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dashboard directory: %w", err)
	}

	lock, err := acquireLock(path + ".lock")
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	content, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func acquireLock(lockPath string) (*os.File, error) {
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return lock, nil
}

func releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}
