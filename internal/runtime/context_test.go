package runtime_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/config"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/git"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
	"reposmith.dev/reposmith/testhelpers"
)

func newTestContext(t *testing.T, mutate func(*config.Config)) (*runtime.Context, *testhelpers.FakeGitHub, *testhelpers.FakeGit) {
	t.Helper()
	cfg := config.Default()
	cfg.RepositoriesRoot = "/repos"
	cfg.Settle.Strategy = config.SettleFixed
	cfg.Settle.Delay = 1
	if mutate != nil {
		mutate(cfg)
	}

	store := filesystem.NewMemoryStore()
	gh := testhelpers.NewFakeGitHub()
	vcs := testhelpers.NewFakeGit(store)
	rc, err := runtime.NewContextWithClients(cfg, tui.NewSplogWithWriter(io.Discard), "", runtime.Clients{
		Store:  store,
		Git:    vcs,
		GitHub: gh,
	})
	require.NoError(t, err)
	return rc, gh, vcs
}

func TestNewContextWithClients(t *testing.T) {
	rc, _, _ := newTestContext(t, nil)
	require.NotEmpty(t, rc.RunID)
	require.Equal(t, "/repos/acme/widgets", rc.Orchestrator.RepositoryDirectory("acme", "widgets"))
	require.Equal(t, git.ContinueOnFailure, rc.Pipeline.Policy())
	require.NoError(t, rc.Close())
}

func TestNewContextWithClientsPolicy(t *testing.T) {
	rc, _, _ := newTestContext(t, func(c *config.Config) { c.Pipeline.Policy = "abort" })
	require.Equal(t, git.AbortOnFailure, rc.Pipeline.Policy())

	cfg := config.Default()
	cfg.Pipeline.Policy = "whenever"
	_, err := runtime.NewContextWithClients(cfg, tui.NewSplogWithWriter(io.Discard), "", runtime.Clients{})
	require.Error(t, err)
}

func TestContextProvisionsWithFakes(t *testing.T) {
	rc, gh, vcs := newTestContext(t, func(c *config.Config) { c.Commit.InitialMessage = "Hello." })
	vcs.Unpushed = true

	r := rc.Orchestrator.Provision(context.Background(), testhelpers.SampleSpecification())
	require.True(t, r.IsSuccess(), r.Err())
	require.True(t, gh.Has("acme", "widgets"))
	require.Equal(t, []string{"clone", "check", "stage", "commit", "push"}, vcs.Calls())
}
