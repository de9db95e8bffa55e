// Package guard wraps side-effecting actions in an existence check so that
// repeating them converges on the same state instead of repeating the effect.
package guard

import (
	"context"
	"fmt"

	"reposmith.dev/reposmith/internal/result"
)

// CheckFailurePolicy decides what a guard does when the existence check
// itself fails
type CheckFailurePolicy int

const (
	// TreatAsAbsent continues as if the resource does not exist and narrates
	// the failed check as a qualified success
	TreatAsAbsent CheckFailurePolicy = iota
	// FailOnCheckError declares failure without acting
	FailOnCheckError
)

// Messages narrate each branch of a guard. Empty fields fall back to
// messages built from the target.
type Messages struct {
	// AlreadyDone is used when no action is needed
	AlreadyDone string
	// Done is used when the action ran and succeeded
	Done string
	// Failed is used when the action ran and failed
	Failed string
}

// Spec describes one guarded resource
type Spec struct {
	Title  string
	Target string

	// Exists reports whether the resource exists. It must be read-only.
	Exists func(ctx context.Context) *result.Result[bool]
	// Act creates or removes the resource
	Act func(ctx context.Context) result.Node

	OnCheckFailure CheckFailurePolicy
	Messages       Messages
}

// Ensure runs the action only if the resource does not exist yet.
// The value is true when the action ran and false when the resource was
// already present.
func Ensure(ctx context.Context, spec Spec) *result.Result[bool] {
	msgs := spec.Messages
	if msgs.AlreadyDone == "" {
		msgs.AlreadyDone = fmt.Sprintf("Already exists, no need to create it: %s", spec.Target)
	}
	if msgs.Done == "" {
		msgs.Done = fmt.Sprintf("Created: %s", spec.Target)
	}
	if msgs.Failed == "" {
		msgs.Failed = fmt.Sprintf("Failed to create: %s", spec.Target)
	}
	return run(ctx, spec, msgs, true)
}

// Remove runs the action only if the resource exists.
// The value is true when the action ran and false when the resource was
// already absent.
func Remove(ctx context.Context, spec Spec) *result.Result[bool] {
	msgs := spec.Messages
	if msgs.AlreadyDone == "" {
		msgs.AlreadyDone = fmt.Sprintf("Already did not exist, nothing to remove: %s", spec.Target)
	}
	if msgs.Done == "" {
		msgs.Done = fmt.Sprintf("Removed: %s", spec.Target)
	}
	if msgs.Failed == "" {
		msgs.Failed = fmt.Sprintf("Failed to remove: %s", spec.Target)
	}
	return run(ctx, spec, msgs, false)
}

// run acts when the existence of the resource differs from wantPresent
func run(ctx context.Context, spec Spec, msgs Messages, wantPresent bool) *result.Result[bool] {
	r := result.NewOf[bool](spec.Title).WithMetadata("Target", spec.Target)

	exists, proceed := check(ctx, r, spec)
	if !proceed {
		return r.WithValue(false)
	}

	if exists == wantPresent {
		return r.WithValue(false).DeclareSuccess(msgs.AlreadyDone)
	}

	acted := spec.Act(ctx)
	r.WithValue(true).WithChild(acted)
	if acted.IsSuccess() {
		return r.DeclareSuccess(msgs.Done)
	}
	return r.DeclareFailure(msgs.Failed, acted.Failures()...)
}

func check(ctx context.Context, r *result.Result[bool], spec Spec) (exists bool, proceed bool) {
	checked := spec.Exists(ctx)
	r.WithChild(checked)

	if checked.IsSuccess() {
		exists = checked.Value()
		r.WithReason(result.Success(fmt.Sprintf("Existence check succeeded, exists: %t", exists)))
		return exists, true
	}

	if spec.OnCheckFailure == FailOnCheckError {
		r.DeclareFailure(fmt.Sprintf("Existence check failed, not acting: %s", spec.Target), checked.Failures()...)
		return false, false
	}

	r.WithReason(result.Success(fmt.Sprintf("Existence check failed, treating as absent: %s", spec.Target)))
	return false, true
}
