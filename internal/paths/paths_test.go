package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/paths"
)

func TestLayout(t *testing.T) {
	layout := paths.NewLayout("/repos/")

	require.Equal(t, filepath.Join("/repos", "acme"), layout.OwnerDirectory("acme"))
	require.Equal(t, filepath.Join("/repos", "acme", "widgets"), layout.RepositoryDirectory("acme", "widgets"))

	repoDir := layout.RepositoryDirectory("acme", "widgets")
	require.Equal(t, filepath.Join(repoDir, ".gitignore"), paths.GitIgnoreFile(repoDir))
	require.Equal(t, filepath.Join(repoDir, "source"), paths.SourceDirectory(repoDir))
	require.Equal(t, "acme/widgets", paths.OwnedName("acme", "widgets"))
}

func TestDirectoryName(t *testing.T) {
	tests := map[string]string{
		"widgets":   "widgets",
		"a/b":       "a_b",
		"..hidden":  "hidden",
		"  spaced ": "spaced",
		"":          "_",
	}
	for in, want := range tests {
		require.Equal(t, want, paths.DirectoryName(in), "input %q", in)
	}
}

func TestValidateName(t *testing.T) {
	require.NoError(t, paths.ValidateName("repository", "my-repo_1.0"))
	require.Error(t, paths.ValidateName("repository", ""))
	require.Error(t, paths.ValidateName("repository", ".."))
	require.Error(t, paths.ValidateName("owner", "acme corp"))
	require.Error(t, paths.ValidateName("owner", "a/b"))
}
