package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/usecase"
)

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	var configPath, repo, output string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Rebuild the telemetry dashboard",
		GroupID: groupTelemetry,
		Long: `Aggregate the repository's telemetry events into a dashboard
document with counts per track, violation and action kind, plus the
most recent events.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}
			ref, err := c.ResolveRepo(repo)
			if err != nil {
				return err
			}

			out, err := c.BuildDashboardUseCase(cfg).Execute(cmd.Context(), usecase.BuildDashboardInput{
				Config: cfg,
				Repo:   ref,
				Path:   output,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Dashboard for %s", ref)))
			printField(w, "events", fmt.Sprintf("%d", out.Dashboard.TotalEvents))
			for _, track := range slices.Sorted(maps.Keys(out.Dashboard.Tracks)) {
				printField(w, "track", fmt.Sprintf("%s: %d", track, out.Dashboard.Tracks[track]))
			}
			if out.Skipped > 0 {
				printField(w, "skipped", warnStyle.Render(fmt.Sprintf("%d unreadable file(s)", out.Skipped)))
			}
			printField(w, "written", okStyle.Render(out.Path))
			return nil
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository as owner/repo (default $GITHUB_REPOSITORY, then origin)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Dashboard path (default telemetry.dashboardPath)")

	return cmd
}
