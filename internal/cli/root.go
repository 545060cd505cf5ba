// Package cli provides the command-line interface for git-triage.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
)

// Command group IDs.
const (
	groupTriage    = "triage"
	groupTelemetry = "telemetry"
)

// NewRootCommand creates the root command for git-triage.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var logLevel, logFile string

	root := &cobra.Command{
		Use:   "triage",
		Short: "GitHub issue triage orchestrator",
		Long: `git-triage classifies GitHub issues into tracks, keeps their
track labels and milestones consistent, flags stale issues, and
records a telemetry event for every run.

Policy is read from .github/orchestrator.yml (or a .toml file).`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return nil
			}
			c.ConfigureLogger(logLevel, logFile)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append log lines to this file")

	root.AddGroup(
		&cobra.Group{ID: groupTriage, Title: "Triage Commands:"},
		&cobra.Group{ID: groupTelemetry, Title: "Telemetry Commands:"},
	)

	root.AddCommand(
		newRunCommand(c),
		newClassifyCommand(c),
		newStaleCommand(c),
		newDashboardCommand(c),
		newEventsCommand(c),
		newConfigCommand(c),
	)

	return root
}
