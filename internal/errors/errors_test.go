package errors_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"io", rserrors.NewIOError("mkdir", "/x", fs.ErrPermission), rserrors.ErrIO},
		{"vcs", rserrors.NewVCSError("commit", "/x", errors.New("conflict")), rserrors.ErrVCS},
		{"remote", rserrors.NewRemoteError("create", "acme", "widgets", errors.New("502")), rserrors.ErrRemote},
		{"already exists", rserrors.NewAlreadyExistsError("acme/widgets"), rserrors.ErrPrecondition},
		{"not found", rserrors.NewNotFoundError("acme/widgets"), rserrors.ErrPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestWrappedCausesRemainReachable(t *testing.T) {
	err := rserrors.NewIOError("remove", "/repos/acme", fs.ErrPermission)
	require.ErrorIs(t, err, fs.ErrPermission)
	require.EqualError(t, err, "remove /repos/acme: permission denied")

	pre := rserrors.NewAlreadyExistsError("acme/widgets")
	require.ErrorIs(t, pre, rserrors.ErrAlreadyExists)
	require.NotErrorIs(t, pre, rserrors.ErrNotFound)

	var remote *rserrors.RemoteError
	wrapped := errors.Join(errors.New("other"), rserrors.NewRemoteError("delete", "acme", "w", errors.New("403")))
	require.ErrorAs(t, wrapped, &remote)
	require.Equal(t, "delete", remote.Op)
}
