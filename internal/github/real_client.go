package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

// DefaultHost is the public GitHub host
const DefaultHost = "github.com"

// ClientOptions configure a RealClient
type ClientOptions struct {
	// Host is github.com or a GitHub Enterprise host
	Host string
	// Token overrides GITHUB_TOKEN and the gh CLI
	Token string
}

// RealClient implements Client using the GitHub REST API
type RealClient struct {
	client *github.Client
	token  string

	mu    sync.Mutex
	login string
}

var _ Client = (*RealClient)(nil)

// NewRealClient creates a client for the configured host. The token comes
// from opts, then GITHUB_TOKEN, then `gh auth token`.
func NewRealClient(ctx context.Context, opts ClientOptions) (*RealClient, error) {
	token, err := resolveToken(ctx, opts.Token)
	if err != nil {
		return nil, err
	}

	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	client, err := createGitHubClient(ctx, host, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return NewRealClientFrom(client, token), nil
}

// NewRealClientFrom wraps an already configured go-github client
func NewRealClientFrom(client *github.Client, token string) *RealClient {
	return &RealClient{client: client, token: token}
}

// createGitHubClient creates a GitHub client configured for the given hostname
// Supports both github.com and GitHub Enterprise instances
func createGitHubClient(ctx context.Context, hostname, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	if hostname != DefaultHost {
		// REST API: https://hostname/api/v3/
		// Upload API: https://hostname/api/uploads/
		baseURL, err := url.Parse(fmt.Sprintf("https://%s/api/v3/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL for hostname %s: %w", hostname, err)
		}
		uploadURL, err := url.Parse(fmt.Sprintf("https://%s/api/uploads/", hostname))
		if err != nil {
			return nil, fmt.Errorf("failed to parse upload URL for hostname %s: %w", hostname, err)
		}

		client.BaseURL = baseURL
		client.UploadURL = uploadURL
	}

	return client, nil
}

// resolveToken gets the GitHub token from the explicit value, the
// environment or the gh CLI
func resolveToken(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	output, err := runGHCommand(ctx, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("%w: no GITHUB_TOKEN and gh auth token failed: %w", rserrors.ErrAuthentication, err)
	}
	token := strings.TrimSpace(output)
	if token == "" {
		return "", fmt.Errorf("%w: empty GitHub token", rserrors.ErrAuthentication)
	}
	return token, nil
}

func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

func isUnauthorized(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusUnauthorized
}

// tagStatus marks err with the sentinel matching the response status
func tagStatus(resp *github.Response, err error) error {
	switch {
	case isUnauthorized(resp):
		return fmt.Errorf("%w: %w", rserrors.ErrAuthentication, err)
	case isNotFound(resp, err):
		return fmt.Errorf("%w: %w", rserrors.ErrNotFound, err)
	}
	return err
}

func (c *RealClient) currentLogin(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.login != "" {
		return c.login, nil
	}

	user, resp, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", rserrors.NewRemoteError("get user", "", "", tagStatus(resp, err))
	}
	c.login = user.GetLogin()
	return c.login, nil
}

// GetAuthentication returns the authenticated login and the token
func (c *RealClient) GetAuthentication(ctx context.Context) (Authentication, error) {
	login, err := c.currentLogin(ctx)
	if err != nil {
		return Authentication{}, err
	}
	return Authentication{Username: login, Token: c.token}, nil
}

// CreateRepository creates the repository under the authenticated user when
// the organization is the user's own login, otherwise under the organization
func (c *RealClient) CreateRepository(ctx context.Context, spec RepositorySpecification) (int64, error) {
	login, err := c.currentLogin(ctx)
	if err != nil {
		return 0, err
	}

	org := spec.Organization
	if strings.EqualFold(org, login) {
		org = ""
	}

	repo := &github.Repository{
		Name:     github.String(spec.Name),
		Private:  github.Bool(spec.Visibility.IsPrivate()),
		AutoInit: github.Bool(spec.InitializeWithReadMe),
	}
	if spec.Description != "" {
		repo.Description = github.String(spec.Description)
	}
	if spec.License != NoLicense {
		repo.LicenseTemplate = github.String(string(spec.License))
	}

	created, resp, err := c.client.Repositories.Create(ctx, org, repo)
	if err != nil {
		return 0, rserrors.NewRemoteError("create", spec.Organization, spec.Name, tagStatus(resp, err))
	}
	return created.GetID(), nil
}

// DeleteRepository deletes owner/name
func (c *RealClient) DeleteRepository(ctx context.Context, owner, name string) error {
	resp, err := c.client.Repositories.Delete(ctx, owner, name)
	if err != nil {
		return rserrors.NewRemoteError("delete", owner, name, tagStatus(resp, err))
	}
	return nil
}

// RepositoryExists reports whether owner/name exists. A 404 is "does not
// exist"; every other failure is an error.
func (c *RealClient) RepositoryExists(ctx context.Context, owner, name string) (bool, error) {
	_, resp, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, rserrors.NewRemoteError("get", owner, name, tagStatus(resp, err))
	}
	return true, nil
}

// GetCloneURL returns the HTTPS clone URL of owner/name
func (c *RealClient) GetCloneURL(ctx context.Context, owner, name string) (string, error) {
	repo, resp, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return "", rserrors.NewRemoteError("get clone url", owner, name, tagStatus(resp, err))
	}
	if repo.GetCloneURL() == "" {
		return "", rserrors.NewRemoteError("get clone url", owner, name, errors.New("repository has no clone URL"))
	}
	return repo.GetCloneURL(), nil
}
