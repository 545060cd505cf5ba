package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// ISOTimestampLayout renders UTC timestamps with millisecond precision,
// e.g. 2025-01-02T03:04:05.678Z.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in ISOTimestampLayout after converting to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}

// unsafeFileChars matches characters that are replaced in telemetry file names.
var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9\-_:]`)

// SanitizeFileComponent replaces characters unsafe for file names with "-".
func SanitizeFileComponent(s string) string {
	return unsafeFileChars.ReplaceAllString(s, "-")
}

// TelemetryEventsDir returns the directory holding a repository's events.
// Format: <root>/<repo>/events
func TelemetryEventsDir(root, repo string) string {
	return filepath.Join(root, repo, "events")
}

// TelemetryEventPath returns the path of one telemetry event file.
// Format: <root>/<repo>/events/<issue>-<sanitized timestamp>.json
func TelemetryEventPath(root, repo string, issueNumber int, at time.Time) string {
	name := fmt.Sprintf("%d-%s.json", issueNumber, SanitizeFileComponent(FormatTimestamp(at)))
	return filepath.Join(TelemetryEventsDir(root, repo), name)
}
