package repository

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// Removal reports what DeleteIdempotent actually removed
type Removal struct {
	Local  bool
	Remote bool
}

// DeleteIdempotent removes the local directory and the remote repository of
// owner/name, whichever exist. Both removals are always attempted, and
// repeating the call succeeds without removing anything.
func (o *Orchestrator) DeleteIdempotent(ctx context.Context, owner, name string) *result.Result[Removal] {
	ownedName := paths.OwnedName(owner, name)
	dir := o.layout.RepositoryDirectory(owner, name)
	r := result.NewOf[Removal]("Delete Repository").
		WithMetadata("Repository", ownedName).
		WithMetadata("Repository directory path", dir)
	if !validateNames(r, owner, name) {
		return r
	}

	o.splog.Info("Deleting repository '%s'...", ownedName)

	local := tui.InLogContextValue(o.splog,
		"Deleting local directory repository...",
		"Finished deleting local directory repository.",
		func() *result.Result[bool] { return o.fs.DeleteDirectoryIdempotent(ctx, dir) })
	r.WithReason(narrateRemoval(local,
		fmt.Sprintf("Deleted local repository directory: %s", dir),
		fmt.Sprintf("Local repository directory already did not exist. No need to delete: %s", dir),
		fmt.Sprintf("Unable to delete local repository directory: %s", dir)))

	remote := tui.InLogContextValue(o.splog,
		"Deleting remote GitHub repository...",
		"Finished deleting remote GitHub repository.",
		func() *result.Result[bool] { return o.github.DeleteRepositoryIdempotent(ctx, owner, name) })
	r.WithReason(narrateRemoval(remote,
		fmt.Sprintf("Deleted remote repository: %s", ownedName),
		fmt.Sprintf("Remote repository already did not exist. No need to delete: %s", ownedName),
		fmt.Sprintf("Unable to delete remote repository: %s", ownedName)))

	r.WithChildren(local, remote).WithValue(Removal{Local: local.Value(), Remote: remote.Value()})

	return r.DeclareOutcomeOf(
		fmt.Sprintf("Repository '%s' does not exist locally or remotely.", ownedName),
		fmt.Sprintf("Repository '%s' was not fully deleted.", ownedName),
		local, remote)
}

// narrateRemoval words a guarded removal from its own result
func narrateRemoval(removed *result.Result[bool], deleted, alreadyAbsent, failed string) result.Reason {
	if !removed.IsSuccess() {
		return result.Failure(failed, removed.Err())
	}
	if removed.Value() {
		return result.Success(deleted)
	}
	return result.Success(alreadyAbsent)
}
