package cli

import (
	"context"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
)

const defaultPushMessage = "Update repository."

// newPushCmd creates the push command
func newPushCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "push <path> | <owner> <name>",
		Short: "Stage, commit and push every change in a repository",
		Long: `Stage, commit and push every change in a repository.

Nothing happens when the remote already has everything. The pipeline policy
decides whether a failed step stops the remaining ones.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: helpers.CompleteOwnerAndName(&a.opts.ConfigPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[bool] {
				return rc.Orchestrator.PushAllChanges(ctx, repositoryPath(rc, args), message)
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", defaultPushMessage, "Commit message.")

	return cmd
}
