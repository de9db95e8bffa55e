package repository

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
)

// VerifyLocalRepositoryDoesNotExist succeeds only if the local directory of
// owner/name is absent. The value is the directory path.
func (o *Orchestrator) VerifyLocalRepositoryDoesNotExist(owner, name string) *result.Result[string] {
	dir := o.layout.RepositoryDirectory(owner, name)
	r := result.NewOf[string](fmt.Sprintf("Verify local repository does not exist: %s", dir)).WithValue(dir)

	o.splog.InSuccessFailureLogContext(
		fmt.Sprintf("Verifying local repository does not exist...\n\t%s", dir),
		fmt.Sprintf("Local repository does not exist.\n\t%s", dir),
		fmt.Sprintf("Local repository already exists.\n\t%s", dir),
		func() bool {
			checked := o.fs.DirectoryExists(dir)
			r.WithChild(checked)
			r.DeclareOutcome(!checked.Value(),
				fmt.Sprintf("Local repository does not exist: %s", dir),
				fmt.Sprintf("Local repository already exists: %s", dir))
			return r.IsSuccess()
		})

	return r
}

// VerifyAbsence succeeds only if owner/name exists neither remotely nor
// locally. Both checks always run.
func (o *Orchestrator) VerifyAbsence(ctx context.Context, owner, name string) *result.Result[result.None] {
	ownedName := paths.OwnedName(owner, name)
	r := result.New(fmt.Sprintf("Verify repository does not exist: %s.", ownedName))
	if !validateNames(r, owner, name) {
		return r
	}

	remote := o.github.VerifyRepositoryDoesNotExist(ctx, owner, name)
	local := o.VerifyLocalRepositoryDoesNotExist(owner, name)

	r.WithReasons(
		remote.ToReason(
			fmt.Sprintf("Remote repository does not exist: %s.", ownedName),
			fmt.Sprintf("Remote repository already exists, or could not be checked: %s.", ownedName)),
		local.ToReason(
			fmt.Sprintf("Local repository does not exist: %s.", local.Value()),
			fmt.Sprintf("Local repository already exists: %s.", local.Value())),
	).WithChildren(remote, local)

	return r.DeclareOutcomeOf(
		fmt.Sprintf("Repository does not exist: %s.", ownedName),
		fmt.Sprintf("Repository is not absent: %s.", ownedName),
		remote, local)
}
