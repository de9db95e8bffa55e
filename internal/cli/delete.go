package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/repository"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
	"reposmith.dev/reposmith/internal/tui"
)

// newDeleteCmd creates the delete command
func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <owner> <name>",
		Short: "Delete a repository locally and on GitHub",
		Long: `Delete a repository locally and on GitHub.

Whatever exists is removed; whatever is already gone is skipped, so running
delete again succeeds. Prompts for confirmation unless --yes is given.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: helpers.CompleteOwnerAndName(&a.opts.ConfigPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name := args[0], args[1]
			canceled := false

			err := helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[repository.Removal] {
				if !yes {
					confirmed, err := tui.ConfirmDeletion(paths.OwnedName(owner, name), rc.Orchestrator.RepositoryDirectory(owner, name))
					if err != nil {
						return result.NewOf[repository.Removal]("Delete Repository").
							DeclareFailure("Deletion was not confirmed.", err)
					}
					if !confirmed {
						canceled = true
						return result.NewOf[repository.Removal]("Delete Repository").
							DeclareSuccess("Deletion canceled, nothing was removed.")
					}
				}
				return rc.Orchestrator.DeleteIdempotent(ctx, owner, name)
			})
			if err == nil && canceled {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Canceled.")
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation.")

	return cmd
}
