package domain

import "time"

const millisPerDay = 1000 * 60 * 60 * 24

// IsStale reports whether an issue last updated at lastUpdated (ISO-8601)
// is stale at now. Issues carrying any excluded label are never stale.
// The threshold is inclusive. Without a threshold nothing is stale, and an
// unparseable timestamp is not stale.
func IsStale(cfg *Config, lastUpdated string, labels []string, now time.Time) bool {
	policy := cfg.Staleness
	if policy == nil || !policy.Enabled || policy.DaysUntilStale == nil {
		return false
	}

	for _, l := range labels {
		for _, ex := range policy.ExcludeLabels {
			if l == ex {
				return false
			}
		}
	}

	last, err := time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		return false
	}

	ageDays := float64(now.Sub(last).Milliseconds()) / millisPerDay
	return ageDays >= *policy.DaysUntilStale
}
