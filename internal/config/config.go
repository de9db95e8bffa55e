package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settle strategies
const (
	SettlePoll  = "poll"
	SettleFixed = "fixed"
)

// Pipeline policies
const (
	PolicyContinue = "continue"
	PolicyAbort    = "abort"
)

// Defaults
const (
	DefaultInitialCommitMessage = "Initial commit."
	DefaultAuthorName           = "reposmith"
	DefaultAuthorEmail          = "reposmith@users.noreply.github.com"
	DefaultSettleDelay          = 3 * time.Second
	DefaultInitialInterval      = 250 * time.Millisecond
	DefaultMaxInterval          = 2 * time.Second
	DefaultMaxElapsed           = 30 * time.Second
)

// Environment variables read by Load
const (
	EnvConfig         = "REPOSMITH_CONFIG"
	EnvRoot           = "REPOSMITH_ROOT"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvPipelinePolicy = "REPOSMITH_PIPELINE_POLICY"
)

// Config is the reposmith configuration
type Config struct {
	RepositoriesRoot  string         `yaml:"repositories_root"`
	GitIgnoreTemplate string         `yaml:"gitignore_template,omitempty"`
	GitHub            GitHubConfig   `yaml:"github"`
	Author            AuthorConfig   `yaml:"author"`
	Commit            CommitConfig   `yaml:"commit"`
	Pipeline          PipelineConfig `yaml:"pipeline"`
	Settle            SettleConfig   `yaml:"settle"`
}

// GitHubConfig selects the GitHub host and token
type GitHubConfig struct {
	Host  string `yaml:"host,omitempty"`
	Token string `yaml:"token,omitempty"`
}

// AuthorConfig is the commit author
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// CommitConfig configures the initial commit
type CommitConfig struct {
	InitialMessage string `yaml:"initial_message"`
}

// PipelineConfig configures the push pipeline
type PipelineConfig struct {
	// Policy is continue or abort
	Policy string `yaml:"policy"`
}

// SettleConfig configures waiting for a new repository to become visible
type SettleConfig struct {
	// Strategy is poll or fixed
	Strategy        string        `yaml:"strategy"`
	Delay           time.Duration `yaml:"delay"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	MaxElapsed      time.Duration `yaml:"max_elapsed"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	root := "repositories"
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, "repositories")
	}
	return &Config{
		RepositoriesRoot: root,
		Author:           AuthorConfig{Name: DefaultAuthorName, Email: DefaultAuthorEmail},
		Commit:           CommitConfig{InitialMessage: DefaultInitialCommitMessage},
		Pipeline:         PipelineConfig{Policy: PolicyContinue},
		Settle: SettleConfig{
			Strategy:        SettlePoll,
			Delay:           DefaultSettleDelay,
			InitialInterval: DefaultInitialInterval,
			MaxInterval:     DefaultMaxInterval,
			MaxElapsed:      DefaultMaxElapsed,
		},
	}
}

// DefaultPath returns $REPOSMITH_CONFIG, or ~/.config/reposmith/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reposmith", "config.yaml"), nil
}

// Load reads the configuration at path, or at DefaultPath when path is
// empty. Keys missing from the file keep their defaults. Environment
// overrides are applied and the result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.RepositoriesRoot = expandHome(cfg.RepositoriesRoot)
	cfg.GitIgnoreTemplate = expandHome(cfg.GitIgnoreTemplate)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRoot); v != "" {
		c.RepositoriesRoot = v
	}
	if v := os.Getenv(EnvGitHubToken); v != "" {
		c.GitHub.Token = v
	}
	if v := os.Getenv(EnvPipelinePolicy); v != "" {
		c.Pipeline.Policy = v
	}
}

// Validate rejects unusable settings
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.RepositoriesRoot) == "" {
		errs = append(errs, errors.New("repositories_root cannot be empty"))
	}

	switch strings.ToLower(c.Pipeline.Policy) {
	case "", PolicyContinue, PolicyAbort:
	default:
		errs = append(errs, fmt.Errorf("unknown pipeline.policy %q (want %s or %s)", c.Pipeline.Policy, PolicyContinue, PolicyAbort))
	}

	switch strings.ToLower(c.Settle.Strategy) {
	case "", SettlePoll, SettleFixed:
	default:
		errs = append(errs, fmt.Errorf("unknown settle.strategy %q (want %s or %s)", c.Settle.Strategy, SettlePoll, SettleFixed))
	}

	for _, d := range []struct {
		key   string
		value time.Duration
	}{
		{"settle.delay", c.Settle.Delay},
		{"settle.initial_interval", c.Settle.InitialInterval},
		{"settle.max_interval", c.Settle.MaxInterval},
		{"settle.max_elapsed", c.Settle.MaxElapsed},
	} {
		if d.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", d.key, d.value))
		}
	}

	return errors.Join(errs...)
}

// Save writes the configuration as YAML, creating the parent directory
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
