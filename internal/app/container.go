// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/infra/config"
	"github.com/runoshun/git-triage/internal/infra/git"
	"github.com/runoshun/git-triage/internal/infra/github"
	"github.com/runoshun/git-triage/internal/infra/logging"
	"github.com/runoshun/git-triage/internal/infra/telemetry"
	"github.com/runoshun/git-triage/internal/usecase"
)

// Environment variables read by SettingsFromEnv.
const (
	EnvToken            = "GITHUB_TOKEN"
	EnvRepository       = "GITHUB_REPOSITORY"
	EnvEventPath        = "GITHUB_EVENT_PATH"
	EnvOutput           = "GITHUB_OUTPUT"
	EnvAPIURL           = "GITHUB_API_URL"
	EnvTelemetryRoot    = "ORCHESTRATOR_TELEMETRY_ROOT"
	EnvTelemetryEnabled = "ORCHESTRATOR_TELEMETRY_ENABLED"
	EnvLogLevel         = "ORCHESTRATOR_LOG_LEVEL"
	EnvRunMode          = "ORCHESTRATOR_RUN_MODE"
)

// RunModeDevelopment turns on debug logging.
const RunModeDevelopment = "development"

// Settings holds runtime settings resolved from flags and the environment.
// Fields are ordered to minimize memory padding.
type Settings struct {
	WorkDir          string // Directory used for repository detection
	Token            string // GitHub token
	Repository       string // owner/repo, empty to detect from the origin remote
	EventPath        string // Path to the issues event JSON
	OutputPath       string // File receiving result=<json> lines
	APIURL           string // GitHub API base URL, empty for api.github.com
	TelemetryRoot    string // Overrides telemetry.path when set
	LogLevel         string
	LogFile          string
	TelemetryEnabled bool // Environment gate for telemetry
}

// SettingsFromEnv resolves settings from the environment.
func SettingsFromEnv(dir string, getenv func(string) string) Settings {
	s := Settings{
		WorkDir:          dir,
		Token:            getenv(EnvToken),
		Repository:       getenv(EnvRepository),
		EventPath:        getenv(EnvEventPath),
		OutputPath:       getenv(EnvOutput),
		APIURL:           getenv(EnvAPIURL),
		TelemetryRoot:    getenv(EnvTelemetryRoot),
		LogLevel:         getenv(EnvLogLevel),
		TelemetryEnabled: parseEnabled(getenv(EnvTelemetryEnabled)),
	}
	if s.LogLevel == "" {
		s.LogLevel = domain.DefaultLogLevel
		if getenv(EnvRunMode) == RunModeDevelopment {
			s.LogLevel = "debug"
		}
	}
	return s
}

// parseEnabled treats anything but an explicit false as enabled.
func parseEnabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Clock        domain.Clock
	ConfigLoader domain.ConfigLoader
	Repos        domain.RepoDetector
	Logger       domain.Logger

	// Test overrides; nil means build from Settings
	Tracker domain.IssueTracker
	Sink    domain.TelemetrySink
	Reader  domain.TelemetryReader

	// Writers
	Stdout io.Writer
	Stderr io.Writer

	// Configuration
	Settings Settings
}

// New creates a new Container from settings.
func New(settings Settings) *Container {
	logger := logging.New(os.Stderr, logging.ParseLevel(settings.LogLevel))
	if settings.LogFile != "" {
		logger = logger.WithFile(settings.LogFile)
	}

	return &Container{
		Clock:        domain.RealClock{},
		ConfigLoader: config.NewLoader(),
		Repos:        git.NewDetector(git.DefaultRemote),
		Logger:       logger,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Settings:     settings,
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(settings Settings, loader domain.ConfigLoader, tracker domain.IssueTracker, sink domain.TelemetrySink, reader domain.TelemetryReader, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Clock:        clock,
		ConfigLoader: loader,
		Tracker:      tracker,
		Sink:         sink,
		Reader:       reader,
		Logger:       logger,
		Stdout:       io.Discard,
		Stderr:       io.Discard,
		Settings:     settings,
	}
}

// ConfigureLogger replaces the logger when level or file differ from the
// settings the container was built with. Injected loggers are kept.
func (c *Container) ConfigureLogger(level, file string) {
	current, ok := c.Logger.(*logging.Logger)
	if !ok {
		return
	}
	if level == "" {
		level = c.Settings.LogLevel
	}
	if level == c.Settings.LogLevel && file == "" {
		return
	}
	_ = current.Close()

	logger := logging.New(c.Stderr, logging.ParseLevel(level))
	if file != "" {
		logger = logger.WithFile(file)
	}
	c.Logger = logger
	c.Settings.LogLevel = level
	c.Settings.LogFile = file
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if l, ok := c.Logger.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

// ResolveRepo returns the target repository: the explicit value when set,
// otherwise the one detected from the working directory's origin remote.
func (c *Container) ResolveRepo(explicit string) (domain.RepoRef, error) {
	if explicit == "" {
		explicit = c.Settings.Repository
	}
	if explicit != "" {
		return domain.ParseRepoRef(explicit)
	}
	if c.Repos == nil {
		return domain.RepoRef{}, domain.ErrRepoNotDetected
	}
	return c.Repos.DetectRepo(c.Settings.WorkDir)
}

// RequireToken fails with domain.ErrAuth when no token is configured.
func (c *Container) RequireToken(reason string) error {
	if c.Tracker != nil || c.Settings.Token != "" {
		return nil
	}
	return fmt.Errorf("%w: %s requires %s", domain.ErrAuth, reason, EnvToken)
}

// IssueTracker returns the GitHub-backed issue tracker.
func (c *Container) IssueTracker() (domain.IssueTracker, error) {
	if c.Tracker != nil {
		return c.Tracker, nil
	}
	if c.Settings.APIURL != "" {
		client, err := github.NewClientWithBaseURL(c.Settings.Token, c.Settings.APIURL)
		if err != nil {
			return nil, err
		}
		c.Tracker = client
		return client, nil
	}
	c.Tracker = github.NewClient(c.Settings.Token)
	return c.Tracker, nil
}

// ReadIssueEvent reads the issues event payload at path, falling back to
// the event path from the environment.
func (c *Container) ReadIssueEvent(path string) (*domain.IssueEvent, error) {
	if path == "" {
		path = c.Settings.EventPath
	}
	if path == "" {
		return nil, fmt.Errorf("no event payload: set --event or %s", EnvEventPath)
	}
	return github.ReadIssueEvent(path)
}

// TelemetryRoot returns the telemetry root for cfg, honoring the
// environment override.
func (c *Container) TelemetryRoot(cfg *domain.Config) string {
	if c.Settings.TelemetryRoot != "" {
		return c.Settings.TelemetryRoot
	}
	return cfg.TelemetryRoot()
}

func (c *Container) telemetryStore(cfg *domain.Config) *telemetry.Store {
	return telemetry.New(c.TelemetryRoot(cfg), c.Clock)
}

// TelemetrySink returns the sink events are written to.
func (c *Container) TelemetrySink(cfg *domain.Config) domain.TelemetrySink {
	if c.Sink != nil {
		return c.Sink
	}
	return c.telemetryStore(cfg)
}

// TelemetryReader returns the reader events are listed from.
func (c *Container) TelemetryReader(cfg *domain.Config) domain.TelemetryReader {
	if c.Reader != nil {
		return c.Reader
	}
	return c.telemetryStore(cfg)
}

// UseCase factory methods

// LoadConfigUseCase returns a new LoadConfig use case.
func (c *Container) LoadConfigUseCase() *usecase.LoadConfig {
	return usecase.NewLoadConfig(c.ConfigLoader, c.Logger)
}

// TriageIssueUseCase returns a new TriageIssue use case.
func (c *Container) TriageIssueUseCase(cfg *domain.Config) (*usecase.TriageIssue, error) {
	tracker, err := c.IssueTracker()
	if err != nil {
		return nil, err
	}
	return usecase.NewTriageIssue(tracker, c.TelemetrySink(cfg), c.Clock, c.Logger), nil
}

// ClassifyLabelsUseCase returns a new ClassifyLabels use case.
func (c *Container) ClassifyLabelsUseCase() *usecase.ClassifyLabels {
	return usecase.NewClassifyLabels(c.Clock)
}

// SweepStaleUseCase returns a new SweepStale use case.
func (c *Container) SweepStaleUseCase() (*usecase.SweepStale, error) {
	tracker, err := c.IssueTracker()
	if err != nil {
		return nil, err
	}
	return usecase.NewSweepStale(tracker, c.Clock, c.Logger), nil
}

// BuildDashboardUseCase returns a new BuildDashboard use case.
func (c *Container) BuildDashboardUseCase(cfg *domain.Config) *usecase.BuildDashboard {
	return usecase.NewBuildDashboard(c.TelemetryReader(cfg), c.Clock, c.Logger)
}

// ListEventsUseCase returns a new ListEvents use case.
func (c *Container) ListEventsUseCase(cfg *domain.Config) *usecase.ListEvents {
	return usecase.NewListEvents(c.TelemetryReader(cfg), c.Logger)
}
