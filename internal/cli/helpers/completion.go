package helpers

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reposmith.dev/reposmith/internal/config"
)

// CompleteOwnerAndName returns a cobra.ValidArgsFunction completing the
// owner from the directories under the repositories root, then the
// repository name from the directories under that owner
func CompleteOwnerAndName(configPath *string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= 2 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		dir := cfg.RepositoriesRoot
		if len(args) == 1 {
			dir = filepath.Join(dir, args[0])
		}
		return subdirectories(dir, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func subdirectories(dir, prefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") && strings.HasPrefix(e.Name(), prefix) {
			names = append(names, e.Name())
		}
	}
	return names
}
