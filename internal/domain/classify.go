package domain

import "strings"

// Track label conventions.
const (
	TrackLabelPrefix      = "track/"
	PreferredDefaultTrack = "sprint"
)

// Violation codes.
const (
	ViolationMissingTrack = "missing-track"
)

// Action tag prefixes.
const (
	ActionApplyLabel      = "apply-label"
	ActionApplyTrackLabel = "apply-track-label"
	ActionSetMilestone    = "set-milestone"
)

// ClassificationResult is the classifier's decision for one issue.
// Actions is an append-only log; orchestration adds to it after classification.
type ClassificationResult struct {
	Track             *string  `json:"track"`
	TrackLabelToApply *string  `json:"trackLabelToApply"`
	Violations        []string `json:"violations"`
	Actions           []string `json:"actions"`
}

// AddAction appends an action tag of the form "<kind>:<value>".
func (r *ClassificationResult) AddAction(kind, value string) {
	r.Actions = append(r.Actions, ActionTag(kind, value))
}

// ActionTag renders an action tag.
func ActionTag(kind, value string) string {
	return kind + ":" + value
}

// TrackLabel returns the label that marks an issue as belonging to a track.
func TrackLabel(trackID string) string {
	return TrackLabelPrefix + trackID
}

// TrackFromLabel extracts the track id from a track/<id> label.
func TrackFromLabel(label string) (string, bool) {
	id, ok := strings.CutPrefix(label, TrackLabelPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Classify decides the track of an issue from its labels.
//
// The first track/<id> label in label order is authoritative. Without one,
// the "sprint" track is the default when declared, otherwise the first
// declared track, and the result recommends applying its label.
func Classify(cfg *Config, labels []string) ClassificationResult {
	for _, l := range labels {
		if id, ok := TrackFromLabel(l); ok {
			return ClassificationResult{
				Track:      &id,
				Violations: []string{},
				Actions:    []string{},
			}
		}
	}

	def := defaultTrack(cfg)
	if def == nil {
		return ClassificationResult{
			Violations: []string{ViolationMissingTrack},
			Actions:    []string{},
		}
	}

	id := def.ID
	label := TrackLabel(id)
	return ClassificationResult{
		Track:             &id,
		TrackLabelToApply: &label,
		Violations:        []string{ViolationMissingTrack},
		Actions:           []string{ActionTag(ActionApplyLabel, label)},
	}
}

func defaultTrack(cfg *Config) *Track {
	if t := cfg.TrackByID(PreferredDefaultTrack); t != nil {
		return t
	}
	if len(cfg.Tracks) == 0 {
		return nil
	}
	return &cfg.Tracks[0]
}

// NormalizeLabels trims and lowercases label names.
// The input slice is not modified.
func NormalizeLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.ToLower(strings.TrimSpace(l))
	}
	return out
}
