// Package config provides orchestrator configuration loading.
//
// Documents may be YAML or TOML, and keys may be written in camelCase or
// snake_case. Both shapes are normalized into domain.Config here so the rest
// of the program only ever sees the canonical model.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-triage/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads the orchestrator config from YAML or TOML files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, normalizes and validates the config at path.
// Every failure wraps domain.ErrConfig.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w: %s", domain.ErrConfig, domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrConfig, path, err)
	}
	return Parse(path, data)
}

// Parse decodes a config document. The file extension of name selects the
// format: ".toml" is TOML, anything else YAML.
func Parse(name string, data []byte) (*domain.Config, error) {
	raw, err := decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfig, name, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s: invalid document format", domain.ErrConfig, name)
	}

	cfg, err := convertRawToDomainConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfig, name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(name string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// normKey folds camelCase, snake_case and kebab-case spellings together.
func normKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	return strings.ReplaceAll(k, "-", "")
}

// convertRawToDomainConfig converts the raw document to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) (*domain.Config, error) {
	res := &domain.Config{}
	var warnings []string
	versionSeen := false

	for section, value := range raw {
		switch normKey(section) {
		case "version":
			v, ok := toInt(value)
			if !ok {
				return nil, fmt.Errorf("'version' must be an integer, got %v", value)
			}
			res.Version = v
			versionSeen = true
		case "tracks":
			tracks, w, err := parseTracks(value)
			if err != nil {
				return nil, err
			}
			res.Tracks = tracks
			warnings = append(warnings, w...)
		case "milestones":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, errors.New("'milestones' must be a mapping")
			}
			p, w, err := parseMilestones(m)
			if err != nil {
				return nil, err
			}
			res.Milestones = p
			warnings = append(warnings, w...)
		case "stale", "staleness":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("'%s' must be a mapping", section)
			}
			p, w, err := parseStaleness(m)
			if err != nil {
				return nil, err
			}
			res.Staleness = p
			warnings = append(warnings, w...)
		case "telemetry":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, errors.New("'telemetry' must be a mapping")
			}
			p, w, err := parseTelemetry(m)
			if err != nil {
				return nil, err
			}
			res.Telemetry = p
			warnings = append(warnings, w...)
		case "selfhealing":
			m, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("'%s' must be a mapping", section)
			}
			p, w, err := parseSelfHealing(m)
			if err != nil {
				return nil, err
			}
			res.SelfHealing = p
			warnings = append(warnings, w...)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	if !versionSeen {
		return nil, errors.New("config missing 'version' field")
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res, nil
}

func parseTracks(value any) ([]domain.Track, []string, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, nil, errors.New("'tracks' must be a list")
	}

	var warnings []string
	tracks := make([]domain.Track, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, nil, fmt.Errorf("tracks[%d] must be a mapping", i)
		}
		var t domain.Track
		for k, v := range m {
			switch normKey(k) {
			case "id":
				t.ID = toString(v)
			case "label":
				t.Label = toString(v)
			case "defaultmilestonepattern":
				t.DefaultMilestonePattern = toString(v)
			default:
				warnings = append(warnings, fmt.Sprintf("unknown key in tracks[%d]: %s", i, k))
			}
		}
		tracks = append(tracks, t)
	}
	return tracks, warnings, nil
}

func parseMilestones(m map[string]any) (*domain.MilestonePolicy, []string, error) {
	p := &domain.MilestonePolicy{}
	var warnings []string
	for k, v := range m {
		switch normKey(k) {
		case "sprintpattern":
			p.SprintPattern = toString(v)
		case "internalmilestonelabel":
			p.InternalMilestoneLabel = toString(v)
		case "defaultsprintdurationdays":
			n, ok := toInt(v)
			if !ok {
				return nil, nil, fmt.Errorf("milestones.%s must be an integer, got %v", k, v)
			}
			p.DefaultSprintDurationDays = n
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in milestones: %s", k))
		}
	}
	return p, warnings, nil
}

func parseStaleness(m map[string]any) (*domain.StalenessPolicy, []string, error) {
	p := &domain.StalenessPolicy{}
	var warnings []string
	var err error
	for k, v := range m {
		switch normKey(k) {
		case "enabled":
			p.Enabled, err = toBool("stale."+k, v)
		case "daysuntilstale":
			var f float64
			if f, err = toNumber("stale."+k, v); err == nil {
				p.DaysUntilStale = &f
			}
		case "daysuntilclose":
			p.DaysUntilClose, err = toNumber("stale."+k, v)
		case "stalelabel":
			p.StaleLabel = toString(v)
		case "excludelabels":
			p.ExcludeLabels = toStrings(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in stale: %s", k))
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if p.Enabled && p.DaysUntilStale == nil {
		warnings = append(warnings, "stale is enabled without daysUntilStale: no issue will be marked stale")
	}
	return p, warnings, nil
}

func parseTelemetry(m map[string]any) (*domain.TelemetryPolicy, []string, error) {
	p := &domain.TelemetryPolicy{Enabled: true}
	var warnings []string
	for k, v := range m {
		switch normKey(k) {
		case "enabled":
			b, err := toBool("telemetry."+k, v)
			if err != nil {
				return nil, nil, err
			}
			p.Enabled = b
		case "path":
			p.Path = toString(v)
		case "dashboardpath":
			p.DashboardPath = toString(v)
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in telemetry: %s", k))
		}
	}
	return p, warnings, nil
}

func parseSelfHealing(m map[string]any) (*domain.SelfHealingPolicy, []string, error) {
	p := &domain.SelfHealingPolicy{}
	var warnings []string
	for k, v := range m {
		var flag *bool
		switch normKey(k) {
		case "enabled":
			flag = &p.Enabled
		case "normalizelabels":
			flag = &p.NormalizeLabels
		case "fixmissingtrack", "autofixtrack":
			flag = &p.FixMissingTrack
		case "fixmissingmilestone", "autofixmilestone":
			flag = &p.FixMissingMilestone
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key in selfHealing: %s", k))
			continue
		}
		b, err := toBool("selfHealing."+k, v)
		if err != nil {
			return nil, nil, err
		}
		*flag = b
	}
	return p, warnings, nil
}

// toInt accepts the integer shapes produced by yaml.v3 (int) and go-toml (int64),
// and floats without a fractional part.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// toNumber accepts any numeric shape either decoder produces. Quoted numbers
// are rejected.
func toNumber(key string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s must be a number, got %T %v", key, v, v)
}

// toBool accepts only native booleans; a quoted "false" is an error.
func toBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T %v", key, v, v)
	}
	return b, nil
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func toStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, toString(item))
	}
	return out
}
