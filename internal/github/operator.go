package github

import (
	"context"
	"fmt"
	"io"

	"reposmith.dev/reposmith/internal/guard"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// Operator runs Client calls and reports each one as a result
type Operator struct {
	client Client
	splog  *tui.Splog
}

// NewOperator creates an operator. A nil splog discards progress output.
func NewOperator(client Client, splog *tui.Splog) *Operator {
	if splog == nil {
		splog = tui.NewSplogWithWriter(io.Discard)
	}
	return &Operator{client: client, splog: splog}
}

// Client returns the underlying client
func (o *Operator) Client() Client {
	return o.client
}

// CreateRepositoryNonIdempotent creates the repository. The value is the
// new repository id. Creating an existing repository fails.
func (o *Operator) CreateRepositoryNonIdempotent(ctx context.Context, spec RepositorySpecification) *result.Result[int64] {
	ownedName := spec.OwnedName()
	r := result.NewOf[int64]("Create New GitHub Repository").
		WithMetadata("Owner", spec.Organization).
		WithMetadata("Name", spec.Name).
		WithMetadata("Visibility", spec.Visibility.String())
	if spec.License != NoLicense {
		r.WithMetadata("License", string(spec.License))
	}

	id, err := o.client.CreateRepository(ctx, spec)
	if err != nil {
		return r.DeclareFailure(fmt.Sprintf("GitHub repository creation failed: %s", ownedName), err)
	}
	return r.WithValue(id).DeclareSuccess(fmt.Sprintf("Created new GitHub repository: %s", ownedName))
}

// RepositoryExists checks whether owner/name exists
func (o *Operator) RepositoryExists(ctx context.Context, owner, name string) *result.Result[bool] {
	ownedName := paths.OwnedName(owner, name)
	r := result.NewOf[bool]("Check GitHub Repository Exists").WithMetadata("Repository", ownedName)

	exists, err := o.client.RepositoryExists(ctx, owner, name)
	if err != nil {
		return r.DeclareFailure(fmt.Sprintf("Repository existence check failed: %s", ownedName), err)
	}
	r.WithValue(exists)
	if exists {
		return r.DeclareSuccess(fmt.Sprintf("GitHub repository exists: %s", ownedName))
	}
	return r.DeclareSuccess(fmt.Sprintf("GitHub repository does not exist: %s", ownedName))
}

// DeleteRepositoryNonIdempotent deletes owner/name. Deleting a missing
// repository fails.
func (o *Operator) DeleteRepositoryNonIdempotent(ctx context.Context, owner, name string) *result.Result[result.None] {
	ownedName := paths.OwnedName(owner, name)
	r := result.New("Delete GitHub Repository").WithMetadata("Repository", ownedName)

	if err := o.client.DeleteRepository(ctx, owner, name); err != nil {
		return r.DeclareFailure(fmt.Sprintf("Unable to delete GitHub repository: %s", ownedName), err)
	}
	return r.DeclareSuccess(fmt.Sprintf("Deleted GitHub repository: %s", ownedName))
}

// DeleteRepositoryIdempotent deletes owner/name if it exists. The value is
// true when a repository was deleted. A failed existence check is a
// failure: nothing is deleted on a guess.
func (o *Operator) DeleteRepositoryIdempotent(ctx context.Context, owner, name string) *result.Result[bool] {
	ownedName := paths.OwnedName(owner, name)
	return guard.Remove(ctx, guard.Spec{
		Title:  "Delete GitHub Repository Idempotent",
		Target: ownedName,
		Exists: func(ctx context.Context) *result.Result[bool] {
			return o.RepositoryExists(ctx, owner, name)
		},
		Act: func(ctx context.Context) result.Node {
			return o.DeleteRepositoryNonIdempotent(ctx, owner, name)
		},
		OnCheckFailure: guard.FailOnCheckError,
		Messages: guard.Messages{
			AlreadyDone: fmt.Sprintf("Repository '%s' already did not exist, no need to delete", ownedName),
			Done:        fmt.Sprintf("Deleted GitHub repository: %s", ownedName),
			Failed:      fmt.Sprintf("Unable to delete GitHub repository: %s", ownedName),
		},
	})
}

// VerifyRepositoryDoesNotExist succeeds only if owner/name is confirmed
// absent
func (o *Operator) VerifyRepositoryDoesNotExist(ctx context.Context, owner, name string) *result.Result[result.None] {
	ownedName := paths.OwnedName(owner, name)
	r := result.New(fmt.Sprintf("Verify GitHub repository does not exist: %s.", ownedName))

	o.splog.InSuccessFailureLogContext(
		fmt.Sprintf("%s: Verifying GitHub repository does not exist...", ownedName),
		fmt.Sprintf("%s: GitHub repository does not exist.", ownedName),
		fmt.Sprintf("%s: GitHub repository already exists, or its existence could not be checked.", ownedName),
		func() bool {
			checked := o.RepositoryExists(ctx, owner, name)
			r.WithChild(checked)
			if !checked.IsSuccess() {
				r.DeclareFailure(fmt.Sprintf("Unable to verify GitHub repository does not exist: %s.", ownedName), checked.Failures()...)
				return false
			}
			r.DeclareOutcome(!checked.Value(),
				fmt.Sprintf("GitHub repository does not exist: %s.", ownedName),
				fmt.Sprintf("GitHub repository already exists: %s.", ownedName))
			return r.IsSuccess()
		})

	return r
}

// GetCloneURL looks up the HTTPS clone URL of owner/name
func (o *Operator) GetCloneURL(ctx context.Context, owner, name string) *result.Result[string] {
	ownedName := paths.OwnedName(owner, name)
	r := result.NewOf[string]("Get Clone URL").WithMetadata("Repository", ownedName)

	url, err := o.client.GetCloneURL(ctx, owner, name)
	if err != nil {
		return r.DeclareFailure(fmt.Sprintf("Unable to get clone URL: %s", ownedName), err)
	}
	return r.WithValue(url).DeclareSuccess(fmt.Sprintf("Clone URL of %s: %s", ownedName, url))
}
