package repository

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/internal/result"
)

// Provision creates a repository end to end: it verifies absence, creates
// and clones the repository, sets it up and pushes the initial commit. It
// stops when verification or creation fails. The value is the local
// directory.
func (o *Orchestrator) Provision(ctx context.Context, spec github.RepositorySpecification) *result.Result[string] {
	ownedName := spec.OwnedName()
	dir := o.layout.RepositoryDirectory(spec.Organization, spec.Name)
	r := result.NewOf[string]("Provision Repository").
		WithValue(dir).
		WithMetadata("Repository", ownedName)

	verified := o.VerifyAbsence(ctx, spec.Organization, spec.Name)
	r.WithChild(verified).WithReason(verified.ToReason(
		"Verified repository does not exist.",
		"Repository already exists or absence could not be verified."))
	if !verified.IsSuccess() {
		if len(verified.Failures()) == 0 {
			o.splog.Tip("Run 'reposmith delete %s %s' to remove the existing repository, then provision again.", spec.Organization, spec.Name)
		}
		return r.DeclareFailure(fmt.Sprintf("Not creating %s.", ownedName), verified.Failures()...)
	}
	o.splog.Newline()

	created := o.CreateNew(ctx, spec)
	r.WithChild(created).WithReason(created.ToReason(
		"Created and cloned repository.",
		"Failed to create repository."))
	if !created.IsSuccess() {
		return r.DeclareFailure(fmt.Sprintf("Provisioning %s stopped after creation failed.", ownedName), created.Failures()...)
	}
	o.splog.Newline()

	setup := o.SetupRepository(ctx, created.Value())
	r.WithChild(setup).WithReason(setup.ToReason(
		"Set up repository.",
		"Failed to set up repository."))
	o.splog.Newline()

	committed := o.PerformInitialCommit(ctx, created.Value())
	r.WithChild(committed).WithReason(committed.ToReason(
		"Pushed initial commit.",
		"Failed to push initial commit."))

	return r.DeclareOutcomeOf(
		fmt.Sprintf("Provisioned repository %s at %s", ownedName, dir),
		fmt.Sprintf("Repository %s was created but provisioning is incomplete.", ownedName),
		verified, created, setup, committed)
}
