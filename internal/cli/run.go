package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/usecase"
)

// newRunCommand creates the run command.
func newRunCommand(c *app.Container) *cobra.Command {
	var configPath, eventPath, repo, token string

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Triage the issue from an issues event",
		GroupID: groupTriage,
		Long: `Triage the issue carried by a GitHub issues event.

The issue is classified into a track. When self-healing is enabled
the missing track label is applied and the issue is moved to the
track's milestone. A telemetry event is recorded unless disabled.

The run result is printed as JSON and, when GITHUB_OUTPUT is set,
appended to it as result=<json>.`,
		Example: `  # Inside a workflow
  triage run

  # Locally against a saved payload
  triage run --event event.json --repo acme/widgets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token != "" {
				c.Settings.Token = token
			}

			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}

			ev, err := c.ReadIssueEvent(eventPath)
			if err != nil {
				return err
			}
			if ev.Issue == nil {
				c.Logger.Info(0, "run", "no issue in event payload, nothing to do")
				return nil
			}

			target := repo
			if target == "" && c.Settings.Repository == "" && ev.Repo.Owner != "" {
				target = ev.Repo.String()
			}
			ref, err := c.ResolveRepo(target)
			if err != nil {
				return err
			}

			if cfg.HealsMissingTrack() || cfg.HealsMissingMilestone() {
				if err := c.RequireToken("self-healing"); err != nil {
					return err
				}
			}

			uc, err := c.TriageIssueUseCase(cfg)
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.TriageIssueInput{
				Config:           cfg,
				Issue:            *ev.Issue,
				Repo:             ref,
				TelemetryEnabled: c.Settings.TelemetryEnabled,
			})
			if err != nil {
				return err
			}

			data, err := json.Marshal(out.Result)
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return appendOutput(c.Settings.OutputPath, "result", string(data))
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&eventPath, "event", "e", "", "Path to the issues event JSON (default $GITHUB_EVENT_PATH)")
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository as owner/repo (default $GITHUB_REPOSITORY, then the event, then origin)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $GITHUB_TOKEN)")

	return cmd
}
