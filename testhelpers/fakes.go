package testhelpers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	rserrors "reposmith.dev/reposmith/internal/errors"
	"reposmith.dev/reposmith/internal/filesystem"
	"reposmith.dev/reposmith/internal/git"
	githubpkg "reposmith.dev/reposmith/internal/github"
)

// FakeGitHub is an in-memory githubpkg.Client
type FakeGitHub struct {
	Login string
	Token string

	// Errors injected into the matching calls
	ExistsErr error
	CreateErr error
	DeleteErr error
	AuthErr   error

	// HiddenChecks hides a newly created repository from this many
	// existence checks
	HiddenChecks int

	// CloneURL overrides the clone URL of existing repositories
	CloneURL func(owner, name string) string

	mu     sync.Mutex
	repos  map[string]int64
	hidden map[string]int
	nextID int64
	calls  []string
}

var _ githubpkg.Client = (*FakeGitHub)(nil)

// NewFakeGitHub creates an empty fake authenticated as octocat
func NewFakeGitHub() *FakeGitHub {
	return &FakeGitHub{
		Login:  "octocat",
		Token:  MockToken,
		repos:  make(map[string]int64),
		hidden: make(map[string]int),
		nextID: 1,
	}
}

func (f *FakeGitHub) record(call string) {
	f.calls = append(f.calls, call)
}

// Calls returns the calls made so far, such as "exists acme/widgets"
func (f *FakeGitHub) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Add registers an existing repository
func (f *FakeGitHub) Add(owner, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repos[owner+"/"+name] = f.nextID
	f.nextID++
}

// Has reports whether owner/name exists
func (f *FakeGitHub) Has(owner, name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.repos[owner+"/"+name]
	return ok
}

// CreateRepository implements githubpkg.Client
func (f *FakeGitHub) CreateRepository(_ context.Context, spec githubpkg.RepositorySpecification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := spec.OwnedName()
	f.record("create " + key)
	if f.CreateErr != nil {
		return 0, rserrors.NewRemoteError("create", spec.Organization, spec.Name, f.CreateErr)
	}
	if _, ok := f.repos[key]; ok {
		return 0, rserrors.NewRemoteError("create", spec.Organization, spec.Name, rserrors.NewAlreadyExistsError(key))
	}
	id := f.nextID
	f.nextID++
	f.repos[key] = id
	if f.HiddenChecks > 0 {
		f.hidden[key] = f.HiddenChecks
	}
	return id, nil
}

// DeleteRepository implements githubpkg.Client
func (f *FakeGitHub) DeleteRepository(_ context.Context, owner, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := owner + "/" + name
	f.record("delete " + key)
	if f.DeleteErr != nil {
		return rserrors.NewRemoteError("delete", owner, name, f.DeleteErr)
	}
	if _, ok := f.repos[key]; !ok {
		return rserrors.NewRemoteError("delete", owner, name, rserrors.NewNotFoundError(key))
	}
	delete(f.repos, key)
	return nil
}

// RepositoryExists implements githubpkg.Client
func (f *FakeGitHub) RepositoryExists(_ context.Context, owner, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := owner + "/" + name
	f.record("exists " + key)
	if f.ExistsErr != nil {
		return false, rserrors.NewRemoteError("get", owner, name, f.ExistsErr)
	}
	if n := f.hidden[key]; n > 0 {
		f.hidden[key] = n - 1
		return false, nil
	}
	_, ok := f.repos[key]
	return ok, nil
}

// GetCloneURL implements githubpkg.Client
func (f *FakeGitHub) GetCloneURL(_ context.Context, owner, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := owner + "/" + name
	f.record("clone-url " + key)
	if _, ok := f.repos[key]; !ok {
		return "", rserrors.NewRemoteError("get clone url", owner, name, rserrors.NewNotFoundError(key))
	}
	if f.CloneURL != nil {
		return f.CloneURL(owner, name), nil
	}
	return fmt.Sprintf("https://github.com/%s.git", key), nil
}

// GetAuthentication implements githubpkg.Client
func (f *FakeGitHub) GetAuthentication(context.Context) (githubpkg.Authentication, error) {
	if f.AuthErr != nil {
		return githubpkg.Authentication{}, f.AuthErr
	}
	return githubpkg.Authentication{Username: f.Login, Token: f.Token}, nil
}

// FakeGit is a git.Client that materialises clones as directories in a
// filesystem store and records every call
type FakeGit struct {
	Store filesystem.Store

	// Unpushed is returned by HasUnpushedChanges
	Unpushed bool

	// Errors injected into the matching calls
	CloneErr  error
	CheckErr  error
	StageErr  error
	CommitErr error
	PushErr   error

	mu          sync.Mutex
	calls       []string
	Credentials []git.Credentials
}

var _ git.Client = (*FakeGit)(nil)

// NewFakeGit creates a fake cloning into store
func NewFakeGit(store filesystem.Store) *FakeGit {
	return &FakeGit{Store: store}
}

func (f *FakeGit) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// Calls returns the recorded call names in order
func (f *FakeGit) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Clone implements git.Client
func (f *FakeGit) Clone(_ context.Context, url, destination string, creds git.Credentials) error {
	f.record("clone")
	f.mu.Lock()
	f.Credentials = append(f.Credentials, creds)
	f.mu.Unlock()
	if f.CloneErr != nil {
		return rserrors.NewVCSError("clone", destination, f.CloneErr)
	}
	if url == "" {
		return rserrors.NewVCSError("clone", destination, errors.New("empty url"))
	}
	return f.Store.CreateDirectory(destination)
}

// Commit implements git.Client
func (f *FakeGit) Commit(_ context.Context, path, _ string, _ git.Author) error {
	f.record("commit")
	if f.CommitErr != nil {
		return rserrors.NewVCSError("commit", path, f.CommitErr)
	}
	return nil
}

// Push implements git.Client
func (f *FakeGit) Push(_ context.Context, path string, creds git.Credentials) error {
	f.record("push")
	f.mu.Lock()
	f.Credentials = append(f.Credentials, creds)
	f.mu.Unlock()
	if f.PushErr != nil {
		return rserrors.NewVCSError("push", path, f.PushErr)
	}
	return nil
}

// HasUnpushedChanges implements git.Client
func (f *FakeGit) HasUnpushedChanges(_ context.Context, path string) (bool, error) {
	f.record("check")
	if f.CheckErr != nil {
		return false, rserrors.NewVCSError("status", path, f.CheckErr)
	}
	return f.Unpushed, nil
}

// StageAllUnstaged implements git.Client
func (f *FakeGit) StageAllUnstaged(_ context.Context, path string) error {
	f.record("stage")
	if f.StageErr != nil {
		return rserrors.NewVCSError("add", path, f.StageErr)
	}
	return nil
}
