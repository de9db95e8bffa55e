package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	rserrors "reposmith.dev/reposmith/internal/errors"
)

type failingCredentials struct{}

func (failingCredentials) Credentials(context.Context) (Credentials, error) {
	return Credentials{}, rserrors.ErrAuthentication
}

func TestOperator(t *testing.T) {
	ctx := context.Background()

	t.Run("clone reports the destination", func(t *testing.T) {
		client := &scriptedClient{}
		op := NewOperator(client, nil, Author{})

		r := op.Clone(ctx, "https://github.com/acme/widgets.git", "/repos/acme/widgets", "acme/widgets")

		require.True(t, r.IsSuccess())
		require.Equal(t, "/repos/acme/widgets", r.Value())
	})

	t.Run("clone failure keeps no value", func(t *testing.T) {
		client := &scriptedClient{cloneErr: errors.New("repository not found")}
		op := NewOperator(client, nil, Author{})

		r := op.Clone(ctx, "https://github.com/acme/widgets.git", "/repos/acme/widgets", "acme/widgets")

		require.False(t, r.IsSuccess())
		require.False(t, r.HasValue())
		require.ErrorContains(t, r.Err(), "repository not found")
	})

	t.Run("missing credentials fail the push without calling the client", func(t *testing.T) {
		client := &scriptedClient{}
		op := NewOperator(client, failingCredentials{}, Author{})

		r := op.Push(ctx, "/repos/acme/widgets")

		require.False(t, r.IsSuccess())
		require.ErrorIs(t, r.Err(), rserrors.ErrAuthentication)
		require.Empty(t, client.calls)
	})

	t.Run("commit records author metadata", func(t *testing.T) {
		client := &scriptedClient{}
		op := NewOperator(client, nil, Author{Name: "Octo Cat", Email: "octo@example.com"})

		r := op.Commit(ctx, "/repos/acme/widgets", "Initial commit.")

		require.True(t, r.IsSuccess())
		author, ok := r.MetadataValue("Author")
		require.True(t, ok)
		require.Equal(t, "Octo Cat <octo@example.com>", author)
	})
}

func TestCredentialsAuthMethod(t *testing.T) {
	require.Nil(t, Credentials{}.authMethod())
	require.NotNil(t, Credentials{Password: "token"}.authMethod())
}
