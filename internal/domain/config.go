package domain

import (
	"fmt"
)

// SupportedConfigVersion is the only orchestrator config version accepted.
const SupportedConfigVersion = 1

// Default locations and values.
const (
	DefaultConfigPath    = ".github/orchestrator.yml"
	DefaultTelemetryRoot = "telemetry"
	DefaultDashboardPath = "dashboard/dashboard.json"
	DefaultLogLevel      = "info"
)

// Config is the validated orchestrator policy.
// It is loaded once per run and never mutated afterwards.
// Fields are ordered to minimize memory padding.
type Config struct {
	Milestones  *MilestonePolicy   `yaml:"milestones,omitempty"`
	Staleness   *StalenessPolicy   `yaml:"stale,omitempty"`
	Telemetry   *TelemetryPolicy   `yaml:"telemetry,omitempty"`
	SelfHealing *SelfHealingPolicy `yaml:"selfHealing,omitempty"`
	Tracks      []Track            `yaml:"tracks"`
	Warnings    []string           `yaml:"-"`
	Version     int                `yaml:"version"`
}

// Track defines a category of work identified by a track/<id> label.
type Track struct {
	ID                      string `yaml:"id"`
	Label                   string `yaml:"label"`
	DefaultMilestonePattern string `yaml:"defaultMilestonePattern,omitempty"`
}

// MilestonePolicy holds settings from the milestones section.
type MilestonePolicy struct {
	SprintPattern             string `yaml:"sprintPattern,omitempty"` // e.g. "Sprint {major}.{minor}"
	InternalMilestoneLabel    string `yaml:"internalMilestoneLabel,omitempty"`
	DefaultSprintDurationDays int    `yaml:"defaultSprintDurationDays,omitempty"`
}

// StalenessPolicy holds settings from the stale section.
// Fields are ordered to minimize memory padding.
type StalenessPolicy struct {
	StaleLabel     string   `yaml:"staleLabel,omitempty"`
	ExcludeLabels  []string `yaml:"excludeLabels,omitempty"`
	DaysUntilStale *float64 `yaml:"daysUntilStale,omitempty"` // nil means no issue is ever stale
	DaysUntilClose float64  `yaml:"daysUntilClose,omitempty"`
	Enabled        bool     `yaml:"enabled"`
}

// TelemetryPolicy holds settings from the telemetry section.
type TelemetryPolicy struct {
	Path          string `yaml:"path,omitempty"`          // Base path for telemetry events
	DashboardPath string `yaml:"dashboardPath,omitempty"` // Aggregated dashboard document
	Enabled       bool   `yaml:"enabled"`
}

// SelfHealingPolicy holds settings from the selfHealing section.
// Every flag defaults to false.
type SelfHealingPolicy struct {
	Enabled             bool `yaml:"enabled"`
	NormalizeLabels     bool `yaml:"normalizeLabels"`
	FixMissingTrack     bool `yaml:"fixMissingTrack"`
	FixMissingMilestone bool `yaml:"fixMissingMilestone"`
}

// Validate checks the structural invariants of the config.
// All failures wrap ErrConfig.
func (c *Config) Validate() error {
	if c.Version != SupportedConfigVersion {
		return fmt.Errorf("%w: unsupported config version: %d", ErrConfig, c.Version)
	}
	if len(c.Tracks) == 0 {
		return fmt.Errorf("%w: config must define at least one track", ErrConfig)
	}

	seen := make(map[string]bool, len(c.Tracks))
	for i, t := range c.Tracks {
		if t.ID == "" {
			return fmt.Errorf("%w: track %d has an empty id", ErrConfig, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate track id %q", ErrConfig, t.ID)
		}
		seen[t.ID] = true
	}

	if c.Staleness != nil && c.Staleness.DaysUntilStale != nil && *c.Staleness.DaysUntilStale < 0 {
		return fmt.Errorf("%w: stale.daysUntilStale must not be negative", ErrConfig)
	}
	return nil
}

// TrackByID returns the track with the given id, or nil.
func (c *Config) TrackByID(id string) *Track {
	for i := range c.Tracks {
		if c.Tracks[i].ID == id {
			return &c.Tracks[i]
		}
	}
	return nil
}

// HealsMissingTrack reports whether missing track labels should be applied.
func (c *Config) HealsMissingTrack() bool {
	return c.SelfHealing != nil && c.SelfHealing.Enabled && c.SelfHealing.FixMissingTrack
}

// HealsMissingMilestone reports whether milestones should be reconciled.
func (c *Config) HealsMissingMilestone() bool {
	return c.SelfHealing != nil && c.SelfHealing.Enabled && c.SelfHealing.FixMissingMilestone
}

// NormalizesLabels reports whether labels are normalized before classification.
func (c *Config) NormalizesLabels() bool {
	return c.SelfHealing != nil && c.SelfHealing.Enabled && c.SelfHealing.NormalizeLabels
}

// TelemetryEnabled reports whether telemetry is enabled by the config.
// An absent telemetry section means enabled.
func (c *Config) TelemetryEnabled() bool {
	return c.Telemetry == nil || c.Telemetry.Enabled
}

// TelemetryRoot returns the configured telemetry base path or the default.
func (c *Config) TelemetryRoot() string {
	if c.Telemetry != nil && c.Telemetry.Path != "" {
		return c.Telemetry.Path
	}
	return DefaultTelemetryRoot
}

// DashboardPath returns the configured dashboard path or the default.
func (c *Config) DashboardPath() string {
	if c.Telemetry != nil && c.Telemetry.DashboardPath != "" {
		return c.Telemetry.DashboardPath
	}
	return DefaultDashboardPath
}
