package domain

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Version: 1, Tracks: []Track{{ID: "sprint"}}}, false},
		{"version 2", Config{Version: 2, Tracks: []Track{{ID: "sprint"}}}, true},
		{"version 0", Config{Tracks: []Track{{ID: "sprint"}}}, true},
		{"no tracks", Config{Version: 1, Tracks: []Track{}}, true},
		{"empty track id", Config{Version: 1, Tracks: []Track{{ID: ""}}}, true},
		{"duplicate track id", Config{Version: 1, Tracks: []Track{{ID: "a"}, {ID: "a"}}}, true},
		{
			"negative stale days",
			Config{Version: 1, Tracks: []Track{{ID: "a"}}, Staleness: &StalenessPolicy{DaysUntilStale: days(-1)}},
			true,
		},
		{
			"stale enabled without threshold",
			Config{Version: 1, Tracks: []Track{{ID: "a"}}, Staleness: &StalenessPolicy{Enabled: true}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestConfig_SelfHealingFlags(t *testing.T) {
	var cfg Config
	if cfg.HealsMissingTrack() || cfg.HealsMissingMilestone() || cfg.NormalizesLabels() {
		t.Error("absent selfHealing section should disable every flag")
	}

	cfg.SelfHealing = &SelfHealingPolicy{FixMissingTrack: true, FixMissingMilestone: true, NormalizeLabels: true}
	if cfg.HealsMissingTrack() || cfg.HealsMissingMilestone() || cfg.NormalizesLabels() {
		t.Error("flags should be ignored while selfHealing.enabled is false")
	}

	cfg.SelfHealing.Enabled = true
	if !cfg.HealsMissingTrack() || !cfg.HealsMissingMilestone() || !cfg.NormalizesLabels() {
		t.Error("flags should apply once selfHealing.enabled is true")
	}
}

func TestConfig_TelemetryDefaults(t *testing.T) {
	var cfg Config
	if !cfg.TelemetryEnabled() {
		t.Error("telemetry should default to enabled")
	}
	if got := cfg.TelemetryRoot(); got != DefaultTelemetryRoot {
		t.Errorf("TelemetryRoot() = %q, want %q", got, DefaultTelemetryRoot)
	}
	if got := cfg.DashboardPath(); got != DefaultDashboardPath {
		t.Errorf("DashboardPath() = %q, want %q", got, DefaultDashboardPath)
	}

	cfg.Telemetry = &TelemetryPolicy{Path: "out", DashboardPath: "dash.json"}
	if cfg.TelemetryEnabled() {
		t.Error("explicit telemetry section with enabled=false should disable telemetry")
	}
	if got := cfg.TelemetryRoot(); got != "out" {
		t.Errorf("TelemetryRoot() = %q, want %q", got, "out")
	}
	if got := cfg.DashboardPath(); got != "dash.json" {
		t.Errorf("DashboardPath() = %q, want %q", got, "dash.json")
	}
}

func TestConfig_TrackByID(t *testing.T) {
	cfg := Config{Tracks: []Track{{ID: "alpha"}, {ID: "sprint"}}}
	if got := cfg.TrackByID("sprint"); got == nil || got.ID != "sprint" {
		t.Errorf("TrackByID(sprint) = %v", got)
	}
	if got := cfg.TrackByID("missing"); got != nil {
		t.Errorf("TrackByID(missing) = %v, want nil", got)
	}
}
