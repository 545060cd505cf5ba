package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/usecase"
)

// newStaleCommand creates the stale command.
func newStaleCommand(c *app.Container) *cobra.Command {
	var configPath, repo, token string
	var apply bool

	cmd := &cobra.Command{
		Use:     "stale",
		Short:   "Find stale open issues",
		GroupID: groupTriage,
		Long: `Evaluate every open issue against the staleness policy.

With --apply the configured stale label is added to stale issues
that do not carry it yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token != "" {
				c.Settings.Token = token
			}

			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}
			ref, err := c.ResolveRepo(repo)
			if err != nil {
				return err
			}
			if apply {
				if err := c.RequireToken("stale --apply"); err != nil {
					return err
				}
			}

			uc, err := c.SweepStaleUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.SweepStaleInput{Config: cfg, Repo: ref, Apply: apply})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Disabled {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("Staleness policy is disabled."))
				return nil
			}

			_, _ = fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Stale issues in %s: %d of %d", ref, len(out.Stale), out.Checked)))
			for _, s := range out.Stale {
				status := mutedStyle.Render("stale")
				switch {
				case s.Labeled:
					status = okStyle.Render("labeled")
				case s.AlreadyLabeled:
					status = mutedStyle.Render("already labeled")
				}
				_, _ = fmt.Fprintf(w, "  #%-6d %s  %s  %s\n", s.Number, s.UpdatedAt, status, s.Title)
			}
			return nil
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringVarP(&repo, "repo", "r", "", "Repository as owner/repo (default $GITHUB_REPOSITORY, then origin)")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Add the stale label to stale issues")

	return cmd
}
