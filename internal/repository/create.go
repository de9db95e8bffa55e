package repository

import (
	"context"
	"errors"
	"fmt"

	rserrors "reposmith.dev/reposmith/internal/errors"
	"reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// CreateNew creates the remote repository, waits for it to become visible
// and clones it locally. The value is the local directory, set up front.
// CreateNew is not idempotent: creating an existing repository fails.
func (o *Orchestrator) CreateNew(ctx context.Context, spec github.RepositorySpecification) *result.Result[string] {
	ownedName := spec.OwnedName()
	dir := o.layout.RepositoryDirectory(spec.Organization, spec.Name)
	r := result.NewOf[string]("Create New Repository").
		WithValue(dir).
		WithMetadata("Repository", ownedName)
	if !validateNames(r, spec.Organization, spec.Name) {
		return r
	}

	created := tui.InLogContextValue(o.splog,
		fmt.Sprintf("Creating new remote GitHub repository '%s'...", ownedName),
		fmt.Sprintf("Finished creating remote GitHub repository '%s'.", ownedName),
		func() *result.Result[int64] {
			return o.github.CreateRepositoryNonIdempotent(ctx, spec)
		})
	r.WithChild(created).WithReason(created.ToReason(
		"Created remote repository.",
		"Failed to create remote repository."))
	if !created.IsSuccess() {
		if errors.Is(created.Err(), rserrors.ErrAlreadyExists) {
			o.splog.Tip("Run 'reposmith verify %s %s' to see where the repository already exists.", spec.Organization, spec.Name)
		}
		return r.DeclareFailure(fmt.Sprintf("Remote repository was not created, nothing cloned: %s", ownedName), created.Failures()...)
	}

	settled := o.settler.Settle(ctx, spec.Organization, spec.Name)
	r.WithChild(settled)
	if settled.IsSuccess() {
		r.WithReason(result.Success("Remote repository is ready."))
	} else {
		r.WithReason(result.Success("Remote repository readiness was not confirmed, cloning anyway."))
	}

	cloned := tui.InLogContextValue(o.splog,
		"Cloning to local directory repository...",
		"Finished cloning to local directory repository.",
		func() *result.Result[string] {
			return o.cloneLocal(ctx, spec.Organization, spec.Name, dir)
		})
	r.WithChild(cloned).WithReason(cloned.ToReason(
		"Cloned remote repository to local directory.",
		"Failed to clone remote repository to local directory."))

	if !cloned.IsSuccess() {
		return r.DeclareFailure(fmt.Sprintf("Remote repository created but not cloned: %s", ownedName), cloned.Failures()...)
	}
	o.splog.Info("New empty repository created.")
	return r.DeclareSuccess(fmt.Sprintf("Created new repository %s at %s", ownedName, dir))
}

// cloneLocal looks up the clone URL and clones into dir
func (o *Orchestrator) cloneLocal(ctx context.Context, owner, name, dir string) *result.Result[string] {
	ownedName := paths.OwnedName(owner, name)
	r := result.NewOf[string]("Clone GitHub Repository Locally").WithMetadata("Repository", ownedName)

	url := o.github.GetCloneURL(ctx, owner, name)
	r.WithChild(url)
	if !url.IsSuccess() {
		return r.DeclareFailure(fmt.Sprintf("Unable to find clone URL of GitHub repository '%s'", ownedName), url.Failures()...)
	}

	cloned := o.git.Clone(ctx, url.Value(), dir, ownedName)
	r.WithChild(cloned)
	if !cloned.IsSuccess() {
		return r.DeclareFailure(fmt.Sprintf("Failed to clone GitHub repository '%s' to local directory:\n%s", ownedName, dir), cloned.Failures()...)
	}
	return r.WithValue(cloned.Value()).
		DeclareSuccess(fmt.Sprintf("Cloned GitHub repository '%s' to local directory:\n%s", ownedName, dir))
}
