package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/usecase"
)

// Output styles for human-readable summaries.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DFE6E9"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
)

// configFlag registers the shared --config flag.
func configFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "config", "c", domain.DefaultConfigPath, "Path to the orchestrator config (.yml, .yaml or .toml)")
}

// loadConfig loads and validates the config at path.
func loadConfig(cmd *cobra.Command, c *app.Container, path string) (*domain.Config, error) {
	out, err := c.LoadConfigUseCase().Execute(cmd.Context(), usecase.LoadConfigInput{Path: path})
	if err != nil {
		return nil, err
	}
	return out.Config, nil
}

func printField(w io.Writer, key, value string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key), valueStyle.Render(value))
}

func orNone(s *string) string {
	if s == nil {
		return mutedStyle.Render("none")
	}
	return *s
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return mutedStyle.Render("none")
	}
	return strings.Join(items, ", ")
}

// appendOutput appends name=value to the step output file.
// An empty path is a no-op.
func appendOutput(path, name, value string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open step output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("write step output: %w", err)
	}
	return nil
}
