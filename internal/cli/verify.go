package cli

import (
	"context"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
)

// newVerifyCmd creates the verify command
func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <owner> <name>",
		Short: "Verify a repository exists neither on GitHub nor locally",
		Long: `Verify a repository exists neither on GitHub nor locally.

Both checks always run. The command fails if either the GitHub repository or
the local directory exists, or if GitHub could not be asked.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteOwnerAndName(&a.opts.ConfigPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[result.None] {
				return rc.Orchestrator.VerifyAbsence(ctx, args[0], args[1])
			})
		},
	}
}
