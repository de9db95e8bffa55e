package testhelpers

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a repository on disk inspected through go-git
type GitRepo struct {
	Dir  string
	repo *git.Repository
}

// NewBareRemote initializes an empty bare repository under t.TempDir() to
// act as a clone source
func NewBareRemote(t *testing.T) *GitRepo {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "remote.git")
	repo, err := git.PlainInit(dir, true)
	require.NoError(t, err, "failed to init bare remote")
	return &GitRepo{Dir: dir, repo: repo}
}

// OpenGitRepo opens the repository at dir
func OpenGitRepo(t *testing.T, dir string) *GitRepo {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	require.NoError(t, err, "failed to open repository %s", dir)
	return &GitRepo{Dir: dir, repo: repo}
}

// HasBranch reports whether the branch exists
func (r *GitRepo) HasBranch(branch string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}

// BranchHash returns the commit the branch points at
func (r *GitRepo) BranchHash(t *testing.T, branch string) plumbing.Hash {
	t.Helper()
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(t, err, "branch %s not found in %s", branch, r.Dir)
	return ref.Hash()
}

// CommitMessages lists the trimmed commit messages reachable from branch,
// newest first
func (r *GitRepo) CommitMessages(t *testing.T, branch string) []string {
	t.Helper()
	iter, err := r.repo.Log(&git.LogOptions{From: r.BranchHash(t, branch)})
	require.NoError(t, err)

	var messages []string
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, strings.TrimSpace(c.Message))
		return nil
	}))
	return messages
}

// Files lists the paths in the tree of branch's head commit, sorted
func (r *GitRepo) Files(t *testing.T, branch string) []string {
	t.Helper()
	commit, err := r.repo.CommitObject(r.BranchHash(t, branch))
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)

	var files []string
	require.NoError(t, tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	}))
	sort.Strings(files)
	return files
}
