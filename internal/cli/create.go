package cli

import (
	"context"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
)

// newCreateCmd creates the create command
func newCreateCmd(a *app) *cobra.Command {
	var flags specFlags

	cmd := &cobra.Command{
		Use:   "create <owner> <name>",
		Short: "Create a GitHub repository and clone it locally",
		Long: `Create a GitHub repository and clone it to <repositories_root>/<owner>/<name>.

The owner may be an organization or the authenticated user. Creating a
repository that already exists fails; run 'reposmith verify' first or use
'reposmith new' for the whole workflow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[string] {
				return rc.Orchestrator.CreateNew(ctx, flags.specification(cmd, rc, args[0], args[1]))
			})
		},
	}
	flags.register(cmd)

	return cmd
}
