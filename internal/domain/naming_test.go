package domain

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 890_000_000, time.FixedZone("JST", 9*3600))
	got := FormatTimestamp(at)
	want := "2025-03-03T20:06:07.890Z"
	if got != want {
		t.Errorf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestSanitizeFileComponent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-03T20:06:07.890Z", "2025-03-03T20:06:07-890Z"},
		{"a b/c", "a-b-c"},
		{"safe_name-1:2", "safe_name-1:2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFileComponent(tt.in); got != tt.want {
				t.Errorf("SanitizeFileComponent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTelemetryEventPath(t *testing.T) {
	at := time.Date(2025, 3, 3, 20, 6, 7, 0, time.UTC)
	got := TelemetryEventPath("telemetry", "widgets", 42, at)
	want := filepath.Join("telemetry", "widgets", "events", "42-2025-03-03T20:06:07-000Z.json")
	if got != want {
		t.Errorf("TelemetryEventPath() = %q, want %q", got, want)
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		in      string
		want    RepoRef
		wantErr bool
	}{
		{"acme/widgets", RepoRef{Owner: "acme", Repo: "widgets"}, false},
		{" acme/widgets ", RepoRef{Owner: "acme", Repo: "widgets"}, false},
		{"acme", RepoRef{}, true},
		{"/widgets", RepoRef{}, true},
		{"acme/", RepoRef{}, true},
		{"acme/widgets/extra", RepoRef{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepoRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRepoRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRepoRef(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
	if s := (RepoRef{Owner: "acme", Repo: "widgets"}).String(); s != "acme/widgets" {
		t.Errorf("String() = %q", s)
	}
}
