// Package testhelpers provides testing utilities for reposmith: fakes of
// the GitHub and git collaborators, an httptest GitHub API, on-disk
// scenes and result assertions.
package testhelpers

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/result"
)

// Must is a generic helper function that panics if err is not nil,
// otherwise returns the value. This is useful for test setup code
// where errors are not expected and should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// RequireSuccess asserts that n declared success, printing its failure
// reasons otherwise
func RequireSuccess(t *testing.T, n result.Node) {
	t.Helper()
	require.True(t, n.IsSuccess(), "%s failed:\n%s", n.Title(), strings.Join(FailureMessages(n), "\n"))
}

// RequireFailure asserts that n declared failure and that one of the
// failure reasons in its tree contains substr
func RequireFailure(t *testing.T, n result.Node, substr string) {
	t.Helper()
	require.False(t, n.IsSuccess(), "%s succeeded", n.Title())
	messages := FailureMessages(n)
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return
		}
	}
	require.Failf(t, "missing failure reason", "no failure reason contains %q:\n%s", substr, strings.Join(messages, "\n"))
}

// FailureMessages collects every failure reason in the tree of n, depth
// first
func FailureMessages(n result.Node) []string {
	var messages []string
	result.Walk(n, func(_ int, node result.Node) bool {
		for _, r := range node.Reasons() {
			if !r.IsSuccess() {
				messages = append(messages, r.Message)
			}
		}
		return true
	})
	return messages
}

// ExpectFiles asserts that the branch of repo contains exactly the expected
// files, in any order
func ExpectFiles(t *testing.T, repo *GitRepo, branch string, expected []string) {
	t.Helper()
	expected = append([]string(nil), expected...)
	sort.Strings(expected)
	require.Equal(t, expected, repo.Files(t, branch), "files do not match")
}
