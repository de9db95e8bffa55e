// Package github provides the hosted repository service collaborator for
// GitHub and the operator that reports its calls as results.
package github

import (
	"context"
	"fmt"
	"strings"
)

// Visibility of a hosted repository
type Visibility int

const (
	// Public repositories are visible to everyone
	Public Visibility = iota
	// Private repositories are visible to collaborators only
	Private
)

// IsPrivate reports whether v is Private
func (v Visibility) IsPrivate() bool {
	return v == Private
}

func (v Visibility) String() string {
	if v == Private {
		return "private"
	}
	return "public"
}

// License is a GitHub license template identifier. The empty License
// creates a repository without a license file.
type License string

// Common license templates
const (
	NoLicense License = ""
	MIT       License = "mit"
	Apache2   License = "apache-2.0"
	GPL3      License = "gpl-3.0"
	BSD3      License = "bsd-3-clause"
	Unlicense License = "unlicense"
)

// ParseLicense normalises a license identifier
func ParseLicense(s string) License {
	return License(strings.ToLower(strings.TrimSpace(s)))
}

// RepositorySpecification describes a repository to create
type RepositorySpecification struct {
	// Organization is the owner: an organization or the authenticated user
	Organization         string
	Name                 string
	Description          string
	Visibility           Visibility
	InitializeWithReadMe bool
	License              License
}

// OwnedName returns owner/name
func (s RepositorySpecification) OwnedName() string {
	return fmt.Sprintf("%s/%s", s.Organization, s.Name)
}

// Authentication is the authenticated user and the token it used
type Authentication struct {
	Username string
	Token    string
}

// Client is an interface for the GitHub API calls reposmith makes.
// Implementations return errors for faults and never report results.
type Client interface {
	// CreateRepository creates a repository and returns its id
	CreateRepository(ctx context.Context, spec RepositorySpecification) (int64, error)

	// DeleteRepository deletes owner/name
	DeleteRepository(ctx context.Context, owner, name string) error

	// RepositoryExists reports whether owner/name exists
	RepositoryExists(ctx context.Context, owner, name string) (bool, error)

	// GetCloneURL returns the HTTPS clone URL of owner/name
	GetCloneURL(ctx context.Context, owner, name string) (string, error)

	// GetAuthentication returns the authenticated user and token
	GetAuthentication(ctx context.Context) (Authentication, error)
}
