package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/usecase"
)

// newClassifyCommand creates the classify command.
func newClassifyCommand(c *app.Container) *cobra.Command {
	var configPath, milestone, updated string
	var labels []string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:     "classify",
		Short:   "Preview triage decisions for a label set",
		GroupID: groupTriage,
		Long: `Classify a label set offline and show the track, violations,
recommended actions and desired milestone. Nothing is changed on GitHub.`,
		Example: `  triage classify --labels bug,track/hotfix
  triage classify --labels bug --milestone "Sprint 0.9" --updated 2025-01-01T00:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}

			in := usecase.ClassifyLabelsInput{
				Config:    cfg,
				Labels:    labels,
				UpdatedAt: updated,
			}
			if cmd.Flags().Changed("milestone") {
				in.Milestone = &milestone
			}

			out, err := c.ClassifyLabelsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				data, err := json.MarshalIndent(out.Classification, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal classification: %w", err)
				}
				_, _ = fmt.Fprintln(w, string(data))
				return nil
			}

			_, _ = fmt.Fprintln(w, headingStyle.Render("Classification"))
			printField(w, "track", orNone(out.Classification.Track))
			printField(w, "violations", joinOrNone(out.Classification.Violations))
			printField(w, "actions", joinOrNone(out.Classification.Actions))
			printField(w, "milestone", orNone(out.DesiredMilestone))
			if out.MilestoneChange {
				printField(w, "", warnStyle.Render("milestone would be updated"))
			}
			if updated != "" {
				if out.Stale {
					printField(w, "stale", warnStyle.Render("yes"))
				} else {
					printField(w, "stale", okStyle.Render("no"))
				}
			}
			return nil
		},
	}

	configFlag(cmd, &configPath)
	cmd.Flags().StringSliceVarP(&labels, "labels", "l", nil, "Comma-separated issue labels")
	cmd.Flags().StringVarP(&milestone, "milestone", "m", "", "Current milestone title")
	cmd.Flags().StringVar(&updated, "updated", "", "Last update time (RFC 3339) for the staleness check")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the classification as JSON")

	return cmd
}
