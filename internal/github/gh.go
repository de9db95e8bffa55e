package github

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

// DefaultCommandTimeout bounds gh invocations without a deadline
const DefaultCommandTimeout = 30 * time.Second

// ghBinary is the gh executable; tests point it elsewhere
var ghBinary = "gh"

// runGHCommand executes the gh CLI and returns its trimmed stdout
func runGHCommand(ctx context.Context, args ...string) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, ghBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = ctx.Err()
		}
		return "", rserrors.NewCommandError(ghBinary, args, strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
