// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
)

// ErrWorkflowFailed is returned after a failed result tree was reported
var ErrWorkflowFailed = errors.New("workflow failed")

// GlobalOptions are the persistent flags of the root command
type GlobalOptions struct {
	ConfigPath string
	JSON       bool
	Quiet      bool
	NoColor    bool
}

// ContextFactory builds the runtime context for a command
type ContextFactory func(ctx context.Context, opts runtime.Options) (*runtime.Context, error)

// Run provides a runtime context to a workflow, tags the result with the
// run id and reports it. A failed workflow yields ErrWorkflowFailed.
func Run[T any](cmd *cobra.Command, factory ContextFactory, opts *GlobalOptions, fn func(ctx context.Context, rc *runtime.Context) *result.Result[T]) error {
	tui.ConfigureColor(opts.NoColor || opts.JSON)

	rc, err := factory(cmd.Context(), runtime.Options{
		ConfigPath: opts.ConfigPath,
		Quiet:      opts.Quiet || opts.JSON,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	r := fn(cmd.Context(), rc)
	r.WithMetadata("Run", rc.RunID)
	return Report(cmd.OutOrStdout(), r, opts.JSON)
}

// Report writes the result tree to w, as JSON or as a rendered tree
// followed by a step summary
func Report(w io.Writer, n result.Node, asJSON bool) error {
	if asJSON {
		data, err := result.MarshalNode(n)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, tui.RenderResult(n, tui.DefaultRenderOptions)); err != nil {
			return err
		}
		if len(n.Children()) > 0 {
			if _, err := fmt.Fprintln(w, tui.RenderSummary(n)); err != nil {
				return err
			}
		}
	}

	if !n.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrWorkflowFailed, n.Title())
	}
	return nil
}
