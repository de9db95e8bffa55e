package runtime

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"reposmith.dev/reposmith/internal/config"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/git"
	"reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/repository"
	"reposmith.dev/reposmith/internal/tui"
)

// Options control how NewContext builds a context
type Options struct {
	// ConfigPath overrides the default configuration path
	ConfigPath string
	Quiet      bool
}

// Clients are the external collaborators of a context
type Clients struct {
	Store  filesystem.Store
	Git    git.Client
	GitHub github.Client
}

// Context provides the configured orchestrator and logger to commands
type Context struct {
	Config       *config.Config
	Splog        *tui.Splog
	RunID        string
	GitHub       github.Client
	Pipeline     *git.Pipeline
	Orchestrator *repository.Orchestrator
}

// NewContext loads the configuration and builds a context talking to the
// real filesystem, git and GitHub
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	splog, err := tui.NewSplogWithConfig(os.Stdout, tui.GetLogFilePath(), runID)
	if err != nil {
		// console logging still works without the log file
		splog = tui.NewSplog()
		splog.Debug("File logging disabled: %v", err)
	}
	splog.SetQuiet(opts.Quiet)

	gh, err := github.NewRealClient(ctx, github.ClientOptions{Host: cfg.GitHub.Host, Token: cfg.GitHub.Token})
	if err != nil {
		_ = splog.Close()
		return nil, err
	}

	return NewContextWithClients(cfg, splog, runID, Clients{
		Store:  filesystem.NewOSStore(),
		Git:    git.NewGoGitClient(),
		GitHub: gh,
	})
}

// NewContextWithClients builds a context from an already loaded configuration
// and the given clients
func NewContextWithClients(cfg *config.Config, splog *tui.Splog, runID string, clients Clients) (*Context, error) {
	policy, err := git.ParsePolicy(cfg.Pipeline.Policy)
	if err != nil {
		return nil, err
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	author := git.Author{Name: cfg.Author.Name, Email: cfg.Author.Email}
	gitOp := git.NewOperator(clients.Git, github.NewGitCredentials(clients.GitHub), author)
	pipeline := git.NewPipeline(gitOp, policy, splog)

	orch := repository.New(repository.Dependencies{
		Filesystem:           filesystem.NewOperator(clients.Store),
		Git:                  gitOp,
		Pipeline:             pipeline,
		GitHub:               github.NewOperator(clients.GitHub, splog),
		Settler:              newSettler(cfg.Settle, clients.GitHub, splog),
		Splog:                splog,
		Layout:               paths.NewLayout(cfg.RepositoriesRoot),
		GitIgnoreTemplate:    cfg.GitIgnoreTemplate,
		InitialCommitMessage: cfg.Commit.InitialMessage,
	})

	return &Context{
		Config:       cfg,
		Splog:        splog,
		RunID:        runID,
		GitHub:       clients.GitHub,
		Pipeline:     pipeline,
		Orchestrator: orch,
	}, nil
}

func newSettler(cfg config.SettleConfig, client github.Client, splog *tui.Splog) github.Settler {
	switch strings.ToLower(cfg.Strategy) {
	case config.SettleFixed:
		return github.NewFixedSettler(cfg.Delay)
	default:
		s := github.NewPollSettler(client, splog)
		if cfg.InitialInterval > 0 {
			s.InitialInterval = cfg.InitialInterval
		}
		if cfg.MaxInterval > 0 {
			s.MaxInterval = cfg.MaxInterval
		}
		if cfg.MaxElapsed > 0 {
			s.MaxElapsed = cfg.MaxElapsed
		}
		return s
	}
}

// Close releases the log file
func (c *Context) Close() error {
	if err := c.Splog.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
