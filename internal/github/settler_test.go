package github_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rserrors "reposmith.dev/reposmith/internal/errors"
	githubpkg "reposmith.dev/reposmith/internal/github"
	"reposmith.dev/reposmith/testhelpers"
)

func fastPollSettler(client githubpkg.Client) *githubpkg.PollSettler {
	s := githubpkg.NewPollSettler(client, nil)
	s.InitialInterval = time.Millisecond
	s.MaxInterval = 5 * time.Millisecond
	s.MaxElapsed = 2 * time.Second
	return s
}

func TestPollSettler(t *testing.T) {
	ctx := context.Background()

	t.Run("returns once the repository is visible", func(t *testing.T) {
		fake := testhelpers.NewFakeGitHub()
		fake.HiddenChecks = 2
		_, err := fake.CreateRepository(ctx, testhelpers.SampleSpecification())
		require.NoError(t, err)

		r := fastPollSettler(fake).Settle(ctx, "acme", "widgets")

		require.True(t, r.IsSuccess())
		attempts, _ := r.MetadataValue("Attempts")
		require.Equal(t, 3, attempts)
	})

	t.Run("gives up after the time budget", func(t *testing.T) {
		fake := testhelpers.NewFakeGitHub()
		s := fastPollSettler(fake)
		s.MaxElapsed = 20 * time.Millisecond

		r := s.Settle(ctx, "acme", "never")
		require.False(t, r.IsSuccess())
	})

	t.Run("authentication errors are not retried", func(t *testing.T) {
		fake := testhelpers.NewFakeGitHub()
		fake.ExistsErr = rserrors.ErrAuthentication

		r := fastPollSettler(fake).Settle(ctx, "acme", "widgets")

		require.False(t, r.IsSuccess())
		require.Len(t, fake.Calls(), 1)
	})
}

func TestFixedSettler(t *testing.T) {
	t.Run("defaults to three seconds", func(t *testing.T) {
		require.Equal(t, 3*time.Second, githubpkg.NewFixedSettler(0).Delay)
	})

	t.Run("waits for the delay", func(t *testing.T) {
		r := githubpkg.NewFixedSettler(time.Millisecond).Settle(context.Background(), "acme", "widgets")
		require.True(t, r.IsSuccess())
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := githubpkg.NewFixedSettler(time.Hour).Settle(ctx, "acme", "widgets")
		require.False(t, r.IsSuccess())
		require.True(t, errors.Is(r.Err(), context.Canceled))
	})
}
