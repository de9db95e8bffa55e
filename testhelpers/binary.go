package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var sharedBinaryPath string

// GetSharedBinaryPath returns the reposmith binary built by TestMain
func GetSharedBinaryPath(t *testing.T) string {
	t.Helper()
	if sharedBinaryPath == "" {
		t.Fatal("reposmith binary not built; call testhelpers.TestMain from TestMain")
	}
	return sharedBinaryPath
}

// TestMain builds the reposmith binary once, runs the tests and removes the
// binary again. Packages that run the binary call it from their TestMain.
func TestMain(m *testing.M) {
	path, cleanup, err := buildBinary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build reposmith binary: %v\n", err)
		os.Exit(1)
	}
	sharedBinaryPath = path

	code := m.Run()
	cleanup()
	os.Exit(code)
}

// buildBinary builds ./cmd/reposmith into a temporary directory
func buildBinary() (string, func(), error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	moduleRoot := findModuleRoot(wd)
	if moduleRoot == "" {
		return "", nil, fmt.Errorf("could not find module root (go.mod) starting from %s", wd)
	}

	tmpDir, err := os.MkdirTemp("", "reposmith-test-binary-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	binaryPath := filepath.Join(tmpDir, "reposmith")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/reposmith")
	cmd.Dir = moduleRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to build: %s: %w", string(output), err)
	}

	return binaryPath, cleanup, nil
}

// findModuleRoot walks up from startDir to the directory holding go.mod
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
