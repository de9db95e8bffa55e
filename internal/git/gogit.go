package git

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

// GoGitClient implements Client with go-git
type GoGitClient struct {
	// DefaultBranch is used when cloning an empty remote
	DefaultBranch plumbing.ReferenceName
}

var _ Client = (*GoGitClient)(nil)

// NewGoGitClient creates a client that initialises empty clones on main
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{DefaultBranch: plumbing.Main}
}

func open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: false})
	if err != nil {
		return nil, rserrors.NewVCSError("open", path, err)
	}
	return repo, nil
}

// Clone clones url into destination. Cloning a remote without commits
// initialises an empty working copy with origin pointing at url.
func (c *GoGitClient) Clone(ctx context.Context, url, destination string, creds Credentials) error {
	_, err := git.PlainCloneContext(ctx, destination, false, &git.CloneOptions{
		URL:        url,
		RemoteName: DefaultRemoteName,
		Auth:       creds.authMethod(),
	})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return c.initEmpty(destination, url)
	}
	if err != nil {
		return rserrors.NewVCSError("clone", destination, err)
	}
	return nil
}

func (c *GoGitClient) initEmpty(destination, url string) error {
	branch := c.DefaultBranch
	if branch == "" {
		branch = plumbing.Main
	}
	repo, err := git.PlainInitWithOptions(destination, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: branch},
	})
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(destination)
	}
	if err != nil {
		return rserrors.NewVCSError("init", destination, err)
	}
	if _, err := repo.Remote(DefaultRemoteName); err == nil {
		return nil
	}
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: DefaultRemoteName,
		URLs: []string{url},
	})
	if err != nil {
		return rserrors.NewVCSError("add remote", destination, err)
	}
	return nil
}

// StageAllUnstaged stages every modified, deleted and untracked path
func (c *GoGitClient) StageAllUnstaged(_ context.Context, path string) error {
	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return rserrors.NewVCSError("worktree", path, err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return rserrors.NewVCSError("add", path, err)
	}
	return nil
}

// Commit records the staged changes. Nothing staged is not an error.
func (c *GoGitClient) Commit(_ context.Context, path, message string, author Author) error {
	repo, err := open(path)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return rserrors.NewVCSError("worktree", path, err)
	}

	status, err := wt.Status()
	if err != nil {
		return rserrors.NewVCSError("status", path, err)
	}
	if !hasStagedChanges(status) {
		return nil
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if errors.Is(err, git.ErrEmptyCommit) {
		return nil
	}
	if err != nil {
		return rserrors.NewVCSError("commit", path, err)
	}
	return nil
}

func hasStagedChanges(status git.Status) bool {
	for _, s := range status {
		if s.Staging != git.Unmodified && s.Staging != git.Untracked {
			return true
		}
	}
	return false
}

// Push pushes the current branch to origin. An up-to-date remote is not an
// error.
func (c *GoGitClient) Push(ctx context.Context, path string, creds Credentials) error {
	repo, err := open(path)
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return rserrors.NewVCSError("push", path, fmt.Errorf("no commits to push: %w", err))
	}

	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", head.Name(), head.Name()))
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: DefaultRemoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       creds.authMethod(),
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return rserrors.NewVCSError("push", path, err)
	}
	return nil
}

// HasUnpushedChanges reports whether the working copy holds anything the
// remote does not: uncommitted changes, or commits beyond the
// remote-tracking branch.
func (c *GoGitClient) HasUnpushedChanges(_ context.Context, path string) (bool, error) {
	repo, err := open(path)
	if err != nil {
		return false, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return false, rserrors.NewVCSError("worktree", path, err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, rserrors.NewVCSError("status", path, err)
	}
	if !status.IsClean() {
		return true, nil
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// no commits and a clean tree
		return false, nil
	}
	if err != nil {
		return false, rserrors.NewVCSError("head", path, err)
	}
	if !head.Name().IsBranch() {
		return false, nil
	}

	remoteName := plumbing.NewRemoteReferenceName(DefaultRemoteName, head.Name().Short())
	remote, err := repo.Reference(remoteName, true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return true, nil
	}
	if err != nil {
		return false, rserrors.NewVCSError("remote ref", path, err)
	}
	if remote.Hash() == head.Hash() {
		return false, nil
	}

	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return false, rserrors.NewVCSError("head commit", path, err)
	}
	remoteCommit, err := repo.CommitObject(remote.Hash())
	if err != nil {
		// remote-tracking ref points at an object we do not have
		return true, nil
	}
	behind, err := headCommit.IsAncestor(remoteCommit)
	if err != nil {
		return false, rserrors.NewVCSError("ancestry", path, err)
	}
	return !behind, nil
}
