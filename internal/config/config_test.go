package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvConfig, config.EnvRoot, config.EnvGitHubToken, config.EnvPipelinePolicy} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, config.PolicyContinue, cfg.Pipeline.Policy)
		require.Equal(t, config.SettlePoll, cfg.Settle.Strategy)
		require.Equal(t, config.DefaultInitialCommitMessage, cfg.Commit.InitialMessage)
		require.NotEmpty(t, cfg.RepositoriesRoot)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, `
repositories_root: /srv/repos
github:
  host: github.example.com
pipeline:
  policy: abort
settle:
  strategy: fixed
  delay: 5s
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "/srv/repos", cfg.RepositoriesRoot)
		require.Equal(t, "github.example.com", cfg.GitHub.Host)
		require.Equal(t, config.PolicyAbort, cfg.Pipeline.Policy)
		require.Equal(t, config.SettleFixed, cfg.Settle.Strategy)
		require.Equal(t, 5*time.Second, cfg.Settle.Delay)
		// untouched keys keep defaults
		require.Equal(t, config.DefaultMaxElapsed, cfg.Settle.MaxElapsed)
		require.Equal(t, config.DefaultAuthorName, cfg.Author.Name)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "repositories_root: /srv/repos\npipeline:\n  policy: abort\n")
		t.Setenv(config.EnvRoot, "/tmp/elsewhere")
		t.Setenv(config.EnvGitHubToken, "ghp_env")
		t.Setenv(config.EnvPipelinePolicy, "continue")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "/tmp/elsewhere", cfg.RepositoriesRoot)
		require.Equal(t, "ghp_env", cfg.GitHub.Token)
		require.Equal(t, config.PolicyContinue, cfg.Pipeline.Policy)
	})

	t.Run("config path from environment", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "repositories_root: /from/env\n")
		t.Setenv(config.EnvConfig, path)

		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, "/from/env", cfg.RepositoriesRoot)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		_, err := config.Load(writeConfig(t, "pipeline: [unclosed"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		_, err := config.Load(writeConfig(t, "pipeline:\n  policy: sometimes\n"))
		require.ErrorContains(t, err, "pipeline.policy")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"uppercase policy", func(c *config.Config) { c.Pipeline.Policy = "ABORT" }, ""},
		{"unknown strategy", func(c *config.Config) { c.Settle.Strategy = "hope" }, "settle.strategy"},
		{"zero delay", func(c *config.Config) { c.Settle.Delay = 0 }, "settle.delay"},
		{"negative elapsed", func(c *config.Config) { c.Settle.MaxElapsed = -time.Second }, "settle.max_elapsed"},
		{"empty root", func(c *config.Config) { c.RepositoriesRoot = " " }, "repositories_root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.RepositoriesRoot = "/srv/repos"
	cfg.Settle.Strategy = config.SettleFixed
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
