package git

import (
	"context"
	"fmt"
	"io"
	"strings"

	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// Policy decides whether the pipeline keeps going after a failed step
type Policy int

const (
	// ContinueOnFailure attempts every step exactly once, in order
	ContinueOnFailure Policy = iota
	// AbortOnFailure stops at the first failed step
	AbortOnFailure
)

func (p Policy) String() string {
	switch p {
	case ContinueOnFailure:
		return "continue"
	case AbortOnFailure:
		return "abort"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "continue" or "abort". The empty string is
// ContinueOnFailure.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return ContinueOnFailure, nil
	case "abort":
		return AbortOnFailure, nil
	default:
		return ContinueOnFailure, fmt.Errorf("unknown pipeline policy %q (want continue or abort)", s)
	}
}

// Pipeline stages, commits and pushes all outstanding changes of a working
// copy
type Pipeline struct {
	op     *Operator
	policy Policy
	splog  *tui.Splog
}

// NewPipeline creates a pipeline. A nil splog discards progress output.
func NewPipeline(op *Operator, policy Policy, splog *tui.Splog) *Pipeline {
	if splog == nil {
		splog = tui.NewSplogWithWriter(io.Discard)
	}
	return &Pipeline{op: op, policy: policy, splog: splog}
}

// Policy returns the configured failure policy
func (p *Pipeline) Policy() Policy {
	return p.policy
}

type pipelineStep struct {
	name    string
	run     func(ctx context.Context) result.Node
	success string
	failure string
}

// PushAllChanges pushes everything the remote does not have yet. The value
// is true when there were changes to push, regardless of whether pushing
// them worked; the outcome is success only if every attempted step
// succeeded.
func (p *Pipeline) PushAllChanges(ctx context.Context, path, message string) *result.Result[bool] {
	r := result.NewOf[bool]("Push All Changes").
		WithMetadata("Repository directory path", path).
		WithMetadata("Commit message", message).
		WithMetadata("Policy", p.policy.String())

	p.splog.Info("Checking whether repository has any unpushed changes...\n\t%s", path)
	checked := p.op.HasUnpushedChanges(ctx, path)
	hasChanges := checked.Value()
	p.splog.Info("Checked whether repository has any unpushed changes.\n\t%s", path)

	r.WithChild(checked).WithReason(checked.ToReason(
		fmt.Sprintf("Unpushed changes check succeeded. Any unpushed changes: %t", hasChanges),
		"Unpushed changes check failed."))

	if !checked.IsSuccess() {
		return r.WithValue(false).
			DeclareFailure("Unable to tell whether there are unpushed changes, nothing was pushed.", checked.Failures()...)
	}

	if !hasChanges {
		p.splog.Info("No unpushed changes detected. No need to push changes.")
		return r.WithValue(false).DeclareSuccess("No unpushed changes detected. No need to push changes.")
	}

	p.splog.Info("Unpushed changes detected.")
	r.WithValue(true)

	steps := []pipelineStep{
		{
			name:    "stage all unstaged paths",
			run:     func(ctx context.Context) result.Node { return p.op.StageAllUnstaged(ctx, path) },
			success: "All unstaged paths staged.",
			failure: "Failed to stage all unstaged paths.",
		},
		{
			name:    "commit changes",
			run:     func(ctx context.Context) result.Node { return p.op.Commit(ctx, path, message) },
			success: "Committed changes.",
			failure: "Failed to commit changes.",
		},
		{
			name:    "push changes",
			run:     func(ctx context.Context) result.Node { return p.op.Push(ctx, path) },
			success: "Pushed changes.",
			failure: "Failed to push changes.",
		},
	}

	var causes []error
	failed := false
	for _, step := range steps {
		if failed && p.policy == AbortOnFailure {
			r.WithReason(result.Failure(fmt.Sprintf("Skipped after an earlier failure: %s", step.name), nil))
			continue
		}

		stepResult := step.run(ctx)
		r.WithChild(stepResult)
		if stepResult.IsSuccess() {
			r.WithReason(result.Success(step.success))
			continue
		}

		failed = true
		causes = append(causes, stepResult.Failures()...)
		p.splog.Warn("%s", step.failure)
		r.WithReason(result.Failure(step.failure, nil))
	}

	if failed {
		return r.DeclareFailure("Not all unpushed changes were pushed.", causes...)
	}
	return r.DeclareSuccess("Unpushed changes pushed.")
}
