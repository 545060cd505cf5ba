package domain

import "strings"

// Sprint placeholders in milestones.sprintPattern.
// Sprint numbering is fixed at 1.0; no sprint sequence is derived.
const (
	placeholderMajor = "{major}"
	placeholderMinor = "{minor}"
	defaultMajor     = "1"
	defaultMinor     = "0"
)

// InferMilestoneTitle returns the milestone title an issue on the track
// should carry, or nil when the track has no milestone rule.
func InferMilestoneTitle(cfg *Config, track *string) *string {
	if track == nil {
		return nil
	}
	if *track != PreferredDefaultTrack || cfg.Milestones == nil || cfg.Milestones.SprintPattern == "" {
		return nil
	}

	title := strings.Replace(cfg.Milestones.SprintPattern, placeholderMajor, defaultMajor, 1)
	title = strings.Replace(title, placeholderMinor, defaultMinor, 1)
	return &title
}

// MilestoneNeedsChange reports whether an issue currently on milestone
// current must be moved to desired. A nil desired title never requires a change.
func MilestoneNeedsChange(current, desired *string) bool {
	if desired == nil {
		return false
	}
	return current == nil || *current != *desired
}
