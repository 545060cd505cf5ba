package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-triage/internal/domain"
	"github.com/runoshun/git-triage/internal/testutil"
	"github.com/runoshun/git-triage/internal/usecase"
)

func TestLoadConfig_Execute(t *testing.T) {
	t.Run("uses default path", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{Config: healingConfig()}

		out, err := usecase.NewLoadConfig(loader, nil).Execute(context.Background(), usecase.LoadConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultConfigPath, out.Path)
		assert.Equal(t, []string{domain.DefaultConfigPath}, loader.Paths)
	})

	t.Run("logs warnings", func(t *testing.T) {
		cfg := healingConfig()
		cfg.Warnings = []string{"unknown key: foo"}
		logger := &testutil.MockLogger{}

		_, err := usecase.NewLoadConfig(&testutil.MockConfigLoader{Config: cfg}, logger).Execute(context.Background(), usecase.LoadConfigInput{Path: "c.yml"})

		require.NoError(t, err)
		assert.True(t, logger.HasLevel("warn"))
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		cfg := healingConfig()
		cfg.Tracks = nil

		_, err := usecase.NewLoadConfig(&testutil.MockConfigLoader{Config: cfg}, nil).Execute(context.Background(), usecase.LoadConfigInput{Path: "c.yml"})

		require.ErrorIs(t, err, domain.ErrConfig)
	})

	t.Run("propagates loader error", func(t *testing.T) {
		loader := &testutil.MockConfigLoader{Err: domain.ErrConfigNotFound}

		_, err := usecase.NewLoadConfig(loader, nil).Execute(context.Background(), usecase.LoadConfigInput{Path: "missing.yml"})

		require.ErrorIs(t, err, domain.ErrConfigNotFound)
	})
}
