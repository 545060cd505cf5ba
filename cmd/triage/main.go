// Package main is the entry point for the git-triage CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/git-triage/internal/app"
	"github.com/runoshun/git-triage/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "triage: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container := app.New(app.SettingsFromEnv(cwd, os.Getenv))
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
