package testhelpers

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/config"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/git"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
)

// Scene is an on-disk test world: a repositories root in a temporary
// directory, real go-git working copies and a fake GitHub whose
// repositories are backed by local bare remotes.
type Scene struct {
	Root    string
	GitHub  *FakeGitHub
	Context *runtime.Context

	t       *testing.T
	mu      sync.Mutex
	remotes map[string]*GitRepo
}

// SceneSetup adjusts the configuration before the scene is assembled
type SceneSetup func(*config.Config)

// NewScene creates a scene. Temporary directories are removed by the
// testing framework.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()
	t.Setenv("REPOSMITH_TEST_NO_INTERACTIVE", "1")

	s := &Scene{
		Root:    t.TempDir(),
		GitHub:  NewFakeGitHub(),
		t:       t,
		remotes: make(map[string]*GitRepo),
	}
	// local remotes need no credentials
	s.GitHub.Login = ""
	s.GitHub.Token = ""
	s.GitHub.CloneURL = func(owner, name string) string {
		return s.Remote(owner, name).Dir
	}

	cfg := config.Default()
	cfg.RepositoriesRoot = s.Root
	cfg.Author = config.AuthorConfig{Name: "Scene", Email: "scene@example.com"}
	cfg.Settle.Strategy = config.SettleFixed
	cfg.Settle.Delay = 1
	if setup != nil {
		setup(cfg)
	}

	rc, err := runtime.NewContextWithClients(cfg, tui.NewSplogWithWriter(io.Discard), "", runtime.Clients{
		Store:  filesystem.NewOSStore(),
		Git:    git.NewGoGitClient(),
		GitHub: s.GitHub,
	})
	require.NoError(t, err, "failed to assemble scene")
	s.Context = rc

	return s
}

// Remote returns the bare remote backing owner/name, creating it on first
// use
func (s *Scene) Remote(owner, name string) *GitRepo {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := owner + "/" + name
	if r, ok := s.remotes[key]; ok {
		return r
	}
	r := NewBareRemote(s.t)
	s.remotes[key] = r
	return r
}

// WorkingCopy opens the local working copy of owner/name
func (s *Scene) WorkingCopy(owner, name string) *GitRepo {
	s.t.Helper()
	return OpenGitRepo(s.t, s.Context.Orchestrator.RepositoryDirectory(owner, name))
}
