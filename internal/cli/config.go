package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-triage/internal/app"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the orchestrator config",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigValidateCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the normalized config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}

// newConfigValidateCommand creates the config validate subcommand.
func newConfigValidateCommand(c *app.Container) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the config loads and is valid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, c, configPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, warning := range cfg.Warnings {
				_, _ = fmt.Fprintln(w, warnStyle.Render("warning: "+warning))
			}
			_, _ = fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("%s is valid (%d track(s))", configPath, len(cfg.Tracks))))
			return nil
		},
	}

	configFlag(cmd, &configPath)
	return cmd
}
