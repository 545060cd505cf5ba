package domain

// Telemetry payload constants.
const (
	TelemetryVersion   = 1
	TelemetryEventName = "issue_event"
)

// TelemetryPayload is a point-in-time record of one run.
// Fields are ordered to minimize memory padding.
type TelemetryPayload struct {
	Classification ClassificationResult `json:"classification"`
	Repository     RepoRef              `json:"repository"`
	Event          string               `json:"event"`
	EventID        string               `json:"event_id"`
	GeneratedAt    string               `json:"generated_at"`
	Issue          IssueSnapshot        `json:"issue"`
	Version        int                  `json:"version"`
}

// TelemetryReceipt reports the outcome of a telemetry write.
// Path is empty when the write failed.
type TelemetryReceipt struct {
	Err  error
	Path string
}

// OK reports whether the payload was persisted.
func (r TelemetryReceipt) OK() bool {
	return r.Err == nil && r.Path != ""
}

// StoredEvent is a telemetry payload read back from disk.
type StoredEvent struct {
	Path    string
	Payload TelemetryPayload
}

// EventListing is the result of reading a repository's telemetry events.
// Skipped holds files that could not be parsed.
type EventListing struct {
	Events  []StoredEvent
	Skipped []string
}

// RunResult summarizes one triage run for the invoker.
type RunResult struct {
	Track         *string  `json:"track"`
	Milestone     *string  `json:"milestone"`
	TelemetryFile *string  `json:"telemetryFile"`
	Actions       []string `json:"actions"`
}

// Dashboard aggregates telemetry events for a repository.
// Fields are ordered to minimize memory padding.
type Dashboard struct {
	Tracks      map[string]int   `json:"tracks"`
	Violations  map[string]int   `json:"violations"`
	Actions     map[string]int   `json:"actions"`
	Repository  string           `json:"repository"`
	GeneratedAt string           `json:"generated_at"`
	Recent      []DashboardEntry `json:"recent"`
	TotalEvents int              `json:"total_events"`
}

// DashboardEntry is one recent event shown on the dashboard.
type DashboardEntry struct {
	Track       *string  `json:"track"`
	Milestone   *string  `json:"milestone"`
	Title       string   `json:"title"`
	GeneratedAt string   `json:"generated_at"`
	Actions     []string `json:"actions"`
	Issue       int      `json:"issue"`
}
