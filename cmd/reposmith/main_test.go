package main_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m)
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(testhelpers.GetSharedBinaryPath(t), args...)
	cmd.Env = append(os.Environ(), "REPOSMITH_TEST_NO_INTERACTIVE=1", "NO_COLOR=1", "REPOSMITH_LOG_FILE="+filepath.Join(t.TempDir(), "reposmith.log"))
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err)
	}
	return stdout.String(), stderr.String(), code
}

func TestVersion(t *testing.T) {
	stdout, _, code := run(t, "version")
	require.Equal(t, 0, code)
	require.Equal(t, "reposmith dev (commit none, built unknown)\n", stdout)
}

func TestInvalidConfigExitsNonZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settle:\n  strategy: hope\n"), 0o600))

	_, stderr, code := run(t, "verify", "acme", "widgets", "--config", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "Error:")
	require.Contains(t, stderr, "settle.strategy")
}

func TestUnknownCommand(t *testing.T) {
	_, stderr, code := run(t, "frobnicate")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown command")
}
