package cli

import (
	"context"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
)

// newNewCmd creates the new command
func newNewCmd(a *app) *cobra.Command {
	var flags specFlags

	cmd := &cobra.Command{
		Use:   "new <owner> <name>",
		Short: "Provision a repository end to end",
		Long: `Provision a repository end to end.

Verifies the repository does not exist, creates and clones it, writes the
.gitignore file and source directory, then commits and pushes them. Nothing
is created when the repository already exists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[string] {
				return rc.Orchestrator.Provision(ctx, flags.specification(cmd, rc, args[0], args[1]))
			})
		},
	}
	flags.register(cmd)

	return cmd
}
