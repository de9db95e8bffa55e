package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/cli/helpers"
	"reposmith.dev/reposmith/internal/repository"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/runtime"
)

// newSetupCmd creates the setup command
func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup <path> | <owner> <name>",
		Short: "Ensure a repository has a .gitignore file and a source directory",
		Long: `Ensure a repository has a .gitignore file and a source directory.

Existing files are left alone, so running setup again changes nothing.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: helpers.CompleteOwnerAndName(&a.opts.ConfigPath),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, a.factory, &a.opts, func(ctx context.Context, rc *runtime.Context) *result.Result[repository.SetupPaths] {
				return rc.Orchestrator.SetupRepository(ctx, repositoryPath(rc, args))
			})
		},
	}
}

// repositoryPath resolves either a path argument or an owner and name
func repositoryPath(rc *runtime.Context, args []string) string {
	if len(args) == 2 {
		return rc.Orchestrator.RepositoryDirectory(args[0], args[1])
	}
	if abs, err := filepath.Abs(args[0]); err == nil {
		return abs
	}
	return args[0]
}
