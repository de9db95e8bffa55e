package github

import (
	"context"
	"sync"

	"reposmith.dev/reposmith/internal/git"
)

// GitCredentials supplies the GitHub login and token to git operations.
// The first successful lookup is reused.
type GitCredentials struct {
	client Client

	mu     sync.Mutex
	cached *git.Credentials
}

var _ git.CredentialsProvider = (*GitCredentials)(nil)

// NewGitCredentials creates a provider backed by client
func NewGitCredentials(client Client) *GitCredentials {
	return &GitCredentials{client: client}
}

// Credentials returns the GitHub login as user name and the token as password
func (g *GitCredentials) Credentials(ctx context.Context) (git.Credentials, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cached != nil {
		return *g.cached, nil
	}

	auth, err := g.client.GetAuthentication(ctx)
	if err != nil {
		return git.Credentials{}, err
	}
	creds := git.Credentials{Username: auth.Username, Password: auth.Token}
	g.cached = &creds
	return creds, nil
}
