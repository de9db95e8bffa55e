package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultRemoteName is the remote that clone sets up and push targets
const DefaultRemoteName = "origin"

// Credentials authenticate against the remote over HTTPS
type Credentials struct {
	Username string
	Password string
}

// IsEmpty reports whether no credentials are set
func (c Credentials) IsEmpty() bool {
	return c.Username == "" && c.Password == ""
}

// authMethod returns nil for empty credentials so that anonymous and
// file-based remotes keep working
func (c Credentials) authMethod() transport.AuthMethod {
	if c.IsEmpty() {
		return nil
	}
	username := c.Username
	if username == "" {
		// GitHub accepts any non-empty user name alongside a token
		username = "x-access-token"
	}
	return &http.BasicAuth{Username: username, Password: c.Password}
}

// CredentialsProvider supplies credentials when an operation needs them
type CredentialsProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials is a CredentialsProvider returning fixed credentials
type StaticCredentials Credentials

// Credentials returns the fixed credentials
func (s StaticCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Author identifies who commits
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Client is the version-control collaborator. It returns errors for faults
// and assumes path is a valid working copy for everything except Clone.
type Client interface {
	Clone(ctx context.Context, url, destination string, creds Credentials) error
	Commit(ctx context.Context, path, message string, author Author) error
	Push(ctx context.Context, path string, creds Credentials) error
	HasUnpushedChanges(ctx context.Context, path string) (bool, error)
	StageAllUnstaged(ctx context.Context, path string) error
}
