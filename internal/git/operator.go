package git

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/result"
)

// Operator runs Client calls and reports each one as a result
type Operator struct {
	client      Client
	credentials CredentialsProvider
	author      Author
}

// NewOperator creates an operator. Credentials are resolved lazily, once
// per clone or push.
func NewOperator(client Client, credentials CredentialsProvider, author Author) *Operator {
	if credentials == nil {
		credentials = StaticCredentials{}
	}
	return &Operator{client: client, credentials: credentials, author: author}
}

// Author returns the configured commit author
func (o *Operator) Author() Author {
	return o.author
}

// Clone clones url into destination. The value is the destination.
func (o *Operator) Clone(ctx context.Context, url, destination, ownedName string) *result.Result[string] {
	r := result.NewOf[string]("Clone Repository Locally").
		WithMetadata("Clone URL", url).
		WithMetadata("Repository directory path", destination)

	creds, err := o.credentials.Credentials(ctx)
	if err != nil {
		return r.DeclareFailure("Unable to obtain credentials for clone.", err)
	}
	r.WithMetadata("Username", creds.Username)

	if err := o.client.Clone(ctx, url, destination, creds); err != nil {
		return r.DeclareFailure(fmt.Sprintf("Failed to clone repository '%s' to local directory:\n%s", ownedName, destination), err)
	}
	return r.WithValue(destination).
		DeclareSuccess(fmt.Sprintf("Cloned repository '%s' to local directory:\n%s", ownedName, destination))
}

// Commit commits the staged changes with the configured author
func (o *Operator) Commit(ctx context.Context, path, message string) *result.Result[result.None] {
	r := result.New("Commit Changes").
		WithMetadata("Repository directory path", path).
		WithMetadata("Commit message", message).
		WithMetadata("Author", o.author.String())

	if err := o.client.Commit(ctx, path, message, o.author); err != nil {
		return r.DeclareFailure("Git failure: commit changes failed.", err)
	}
	return r.DeclareSuccess("Git success: committed changes.")
}

// Push pushes the current branch
func (o *Operator) Push(ctx context.Context, path string) *result.Result[result.None] {
	r := result.New("Push Changes").WithMetadata("Repository directory path", path)

	creds, err := o.credentials.Credentials(ctx)
	if err != nil {
		return r.DeclareFailure("Git failure: no credentials for push.", err)
	}
	r.WithMetadata("Username", creds.Username)

	if err := o.client.Push(ctx, path, creds); err != nil {
		return r.DeclareFailure("Git failure: push changes failed.", err)
	}
	return r.DeclareSuccess("Git success: pushed changes.")
}

// HasUnpushedChanges checks for changes the remote does not have
func (o *Operator) HasUnpushedChanges(ctx context.Context, path string) *result.Result[bool] {
	r := result.NewOf[bool]("Check if Any Unpushed Changes").
		WithMetadata("Repository directory path", path)

	has, err := o.client.HasUnpushedChanges(ctx, path)
	if err != nil {
		return r.DeclareFailure("Git failure: check of any unpushed changes failed.", err)
	}
	return r.WithValue(has).DeclareSuccess("Git success: check of any unpushed changes succeeded.")
}

// StageAllUnstaged stages every unstaged path
func (o *Operator) StageAllUnstaged(ctx context.Context, path string) *result.Result[result.None] {
	r := result.New("Stage All Unstaged Paths").
		WithMetadata("Repository directory path", path)

	if err := o.client.StageAllUnstaged(ctx, path); err != nil {
		return r.DeclareFailure("Git failure: staging all unstaged paths failed.", err)
	}
	return r.DeclareSuccess("Git success: staging all unstaged paths succeeded.")
}
