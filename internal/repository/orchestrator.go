package repository

import (
	_ "embed"
	"fmt"
	"io"

	rserrors "reposmith.dev/reposmith/internal/errors"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/git"
	"reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// DefaultInitialCommitMessage is used when none is configured
const DefaultInitialCommitMessage = "Initial commit."

//go:embed templates/gitignore.tmpl
var defaultGitIgnoreTemplate []byte

// Dependencies are the collaborators an Orchestrator is built from
type Dependencies struct {
	Filesystem *filesystem.Operator
	Git        *git.Operator
	Pipeline   *git.Pipeline
	GitHub     *github.Operator
	Settler    github.Settler
	Splog      *tui.Splog

	Layout paths.Layout
	// GitIgnoreTemplate is a template file path; empty uses the built-in
	// template
	GitIgnoreTemplate    string
	InitialCommitMessage string
}

// Orchestrator runs the repository lifecycle workflows
type Orchestrator struct {
	fs       *filesystem.Operator
	git      *git.Operator
	pipeline *git.Pipeline
	github   *github.Operator
	settler  github.Settler
	splog    *tui.Splog

	layout               paths.Layout
	gitIgnoreTemplate    string
	initialCommitMessage string
}

// New creates an orchestrator
func New(deps Dependencies) *Orchestrator {
	splog := deps.Splog
	if splog == nil {
		splog = tui.NewSplogWithWriter(io.Discard)
	}
	message := deps.InitialCommitMessage
	if message == "" {
		message = DefaultInitialCommitMessage
	}
	settler := deps.Settler
	if settler == nil {
		settler = github.NewFixedSettler(0)
	}
	return &Orchestrator{
		fs:                   deps.Filesystem,
		git:                  deps.Git,
		pipeline:             deps.Pipeline,
		github:               deps.GitHub,
		settler:              settler,
		splog:                splog,
		layout:               deps.Layout,
		gitIgnoreTemplate:    deps.GitIgnoreTemplate,
		initialCommitMessage: message,
	}
}

// Layout returns the repository layout
func (o *Orchestrator) Layout() paths.Layout {
	return o.layout
}

// RepositoryDirectory returns the local directory of owner/name
func (o *Orchestrator) RepositoryDirectory(owner, name string) string {
	return o.layout.RepositoryDirectory(owner, name)
}

// validateNames declares failure on r when owner or name is unusable
func validateNames[T any](r *result.Result[T], owner, name string) bool {
	if err := paths.ValidateName("owner", owner); err != nil {
		r.DeclareFailure(fmt.Sprintf("Invalid owner name: %q", owner), rserrors.NewPreconditionError("name", err))
		return false
	}
	if err := paths.ValidateName("repository", name); err != nil {
		r.DeclareFailure(fmt.Sprintf("Invalid repository name: %q", name), rserrors.NewPreconditionError("name", err))
		return false
	}
	return true
}
