package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/cli"
	"reposmith.dev/reposmith/internal/config"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
	"reposmith.dev/reposmith/testhelpers"
)

type harness struct {
	store  *filesystem.BillyStore
	remote *testhelpers.FakeGitHub
	vcs    *testhelpers.FakeGit
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("REPOSMITH_TEST_NO_INTERACTIVE", "1")
	store := filesystem.NewMemoryStore()
	return &harness{
		store:  store,
		remote: testhelpers.NewFakeGitHub(),
		vcs:    testhelpers.NewFakeGit(store),
	}
}

func (h *harness) factory(_ context.Context, opts runtime.Options) (*runtime.Context, error) {
	cfg := config.Default()
	cfg.RepositoriesRoot = "/repos"
	cfg.Settle.Strategy = config.SettleFixed
	cfg.Settle.Delay = 1
	splog := tui.NewSplogWithWriter(io.Discard)
	splog.SetQuiet(opts.Quiet)
	return runtime.NewContextWithClients(cfg, splog, "run-test", runtime.Clients{
		Store:  h.store,
		Git:    h.vcs,
		GitHub: h.remote,
	})
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdWithFactory(cli.BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}, h.factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "verify", "acme", "widgets", "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, "Verify repository does not exist: acme/widgets.")

	h.remote.Add("acme", "widgets")
	_, err = h.run(t, "verify", "acme", "widgets")
	require.ErrorIs(t, err, cli.ErrWorkflowFailed)
}

func TestJSONOutput(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "verify", "acme", "widgets", "--json")
	require.NoError(t, err)

	var doc struct {
		Title    string `json:"title"`
		Outcome  string `json:"outcome"`
		Metadata []struct {
			Key   string `json:"key"`
			Value any    `json:"value"`
		} `json:"metadata"`
		Children []json.RawMessage `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "success", doc.Outcome)
	require.Len(t, doc.Children, 2)

	found := false
	for _, m := range doc.Metadata {
		if m.Key == "Run" {
			found = true
			require.Equal(t, "run-test", m.Value)
		}
	}
	require.True(t, found, "run id is attached to the result")
}

func TestNewCommand(t *testing.T) {
	h := newHarness(t)
	h.vcs.Unpushed = true

	_, err := h.run(t, "new", "acme", "widgets", "--private", "--license", "MIT", "-d", "Widgets")
	require.NoError(t, err)
	require.True(t, h.remote.Has("acme", "widgets"))
	require.Equal(t, []string{"clone", "check", "stage", "commit", "push"}, h.vcs.Calls())

	exists, err := h.store.FileExists("/repos/acme/widgets/.gitignore")
	require.NoError(t, err)
	require.True(t, exists)

	// a second run refuses to touch the existing repository
	_, err = h.run(t, "new", "acme", "widgets", "-d", "again")
	require.ErrorIs(t, err, cli.ErrWorkflowFailed)
}

func TestCreateAndSetupCommands(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "create", "acme", "widgets", "-d", "Widgets")
	require.NoError(t, err)

	_, err = h.run(t, "setup", "acme", "widgets")
	require.NoError(t, err)
	exists, err := h.store.DirectoryExists("/repos/acme/widgets/source")
	require.NoError(t, err)
	require.True(t, exists)

	_, err = h.run(t, "push", "acme", "widgets", "-m", "Add files.")
	require.NoError(t, err)
	require.Equal(t, []string{"clone", "check"}, h.vcs.Calls())
}

func TestDeleteCommand(t *testing.T) {
	h := newHarness(t)
	h.remote.Add("acme", "widgets")

	_, err := h.run(t, "delete", "acme", "widgets")
	require.ErrorIs(t, err, cli.ErrWorkflowFailed, "non-interactive delete needs --yes")
	require.True(t, h.remote.Has("acme", "widgets"))

	_, err = h.run(t, "delete", "acme", "widgets", "--yes")
	require.NoError(t, err)
	require.False(t, h.remote.Has("acme", "widgets"))

	_, err = h.run(t, "delete", "acme", "widgets", "--yes")
	require.NoError(t, err, "deleting again succeeds")
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "reposmith 1.2.3 (commit abc, built today)\n", out)
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)
	for _, k := range []string{config.EnvRoot, config.EnvGitHubToken, config.EnvPipelinePolicy} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := h.run(t, "config", "path", "--config", path)
	require.NoError(t, err)
	require.Equal(t, path+"\n", out)

	_, err = h.run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = h.run(t, "config", "init", "--config", path)
	require.ErrorContains(t, err, "already exists")

	t.Setenv(config.EnvGitHubToken, "ghp_secret")
	out, err = h.run(t, "config", "show", "--config", path)
	require.NoError(t, err)
	require.Contains(t, out, "policy: continue")
	require.NotContains(t, out, "ghp_secret")
}

func TestArgumentValidation(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "verify", "acme")
	require.Error(t, err)
	require.NotErrorIs(t, err, cli.ErrWorkflowFailed)
}
