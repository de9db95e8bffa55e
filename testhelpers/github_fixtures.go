package testhelpers

import (
	"testing"

	githubpkg "reposmith.dev/reposmith/internal/github"
)

// MockToken is the token the mock-backed clients authenticate with
const MockToken = "ghp_mocktoken"

// NewMockRealClient returns a RealClient talking to a fresh mock server
func NewMockRealClient(t *testing.T, config *MockGitHubServerConfig) *githubpkg.RealClient {
	t.Helper()
	return githubpkg.NewRealClientFrom(NewMockGitHubClient(t, config), MockToken)
}

// SampleSpecification returns the specification of acme/widgets
func SampleSpecification() githubpkg.RepositorySpecification {
	return githubpkg.RepositorySpecification{
		Organization:         "acme",
		Name:                 "widgets",
		Description:          "Widgets for everyone",
		Visibility:           githubpkg.Private,
		InitializeWithReadMe: false,
		License:              githubpkg.MIT,
	}
}
