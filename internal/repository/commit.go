package repository

import (
	"context"

	"reposmith.dev/reposmith/internal/result"
)

// PerformInitialCommit stages, commits and pushes everything in dir with
// the initial commit message. The value is true when there was anything to
// push.
func (o *Orchestrator) PerformInitialCommit(ctx context.Context, dir string) *result.Result[bool] {
	r := result.NewOf[bool]("Perform Initial Commit").WithMetadata("Repository directory path", dir)

	pushed := o.pipeline.PushAllChanges(ctx, dir, o.initialCommitMessage)
	r.WithChild(pushed).WithValue(pushed.Value())

	if !pushed.IsSuccess() {
		return r.DeclareFailure("Push all changes failed.", pushed.Failures()...)
	}
	return r.DeclareSuccess("Push all changes succeeded.")
}

// PushAllChanges pushes everything in dir with the given message
func (o *Orchestrator) PushAllChanges(ctx context.Context, dir, message string) *result.Result[bool] {
	return o.pipeline.PushAllChanges(ctx, dir, message)
}
