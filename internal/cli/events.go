package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/tui"
	"github.com/runoshun/git-triage/internal/usecase"
)

// runEventsTUIFunc launches the events browser, allowing it to be mocked in tests.
var runEventsTUIFunc = func(repo domain.RepoRef, events []domain.StoredEvent) error {
	_, err := tea.NewProgram(tui.NewEventsModel(repo, events), tea.WithAltScreen()).Run()
	return err
}

// newEventsCommand creates the events command.
func newEventsCommand(c *app.Container) *cobra.Command {
	var configPath, repo string
	var limit int
	var plain bool

	cmd := &cobra.Command{
		Use:     "events",
		Short:   "Browse recorded telemetry events",
		GroupID: groupTelemetry,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}
			ref, err := c.ResolveRepo(repo)
			if err != nil {
				return err
			}

			out, err := c.ListEventsUseCase(cfg).Execute(cmd.Context(), usecase.ListEventsInput{Repo: ref, Limit: limit})
			if err != nil {
				return err
			}

			if !plain {
				return runEventsTUIFunc(ref, out.Events)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Events for %s (%d of %d)", ref, len(out.Events), out.Total)))
			for _, e := range out.Events {
				p := e.Payload
				_, _ = fmt.Fprintf(w, "  %s  #%-6d %-10s %s\n",
					mutedStyle.Render(p.GeneratedAt),
					p.Issue.Number,
					orNone(p.Classification.Track),
					joinOrNone(p.Classification.Actions),
				)
			}
			return nil
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository as owner/repo (default $GITHUB_REPOSITORY, then origin)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many events (0 for all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print a plain list instead of the interactive browser")

	return cmd
}
