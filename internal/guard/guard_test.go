package guard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/guard"
	"reposmith.dev/reposmith/internal/result"
)

// resource is an in-memory resource with call counters
type resource struct {
	exists    bool
	checkErr  error
	actErr    error
	checks    int
	actions   int
	removeAct bool
}

func (r *resource) spec() guard.Spec {
	return guard.Spec{
		Title:  "Guarded",
		Target: "thing",
		Exists: func(context.Context) *result.Result[bool] {
			r.checks++
			res := result.NewOf[bool]("Check Exists")
			if r.checkErr != nil {
				return res.DeclareFailure("check failed", r.checkErr)
			}
			return res.WithValue(r.exists).DeclareSuccess("checked")
		},
		Act: func(context.Context) result.Node {
			r.actions++
			res := result.New("Act")
			if r.actErr != nil {
				return res.DeclareFailure("act failed", r.actErr)
			}
			r.exists = !r.removeAct
			return res.DeclareSuccess("acted")
		},
	}
}

func TestEnsure(t *testing.T) {
	ctx := context.Background()

	t.Run("creates when absent then converges", func(t *testing.T) {
		res := &resource{}

		first := guard.Ensure(ctx, res.spec())
		require.True(t, first.IsSuccess())
		require.True(t, first.Value())
		require.Len(t, first.Children(), 2)

		second := guard.Ensure(ctx, res.spec())
		require.True(t, second.IsSuccess())
		require.False(t, second.Value())
		require.Len(t, second.Children(), 1)

		require.Equal(t, 1, res.actions)
		require.Equal(t, 2, res.checks)
	})

	t.Run("action failure fails the guard", func(t *testing.T) {
		cause := errors.New("disk full")
		res := &resource{actErr: cause}

		r := guard.Ensure(ctx, res.spec())
		require.False(t, r.IsSuccess())
		require.True(t, r.Value())
		require.ErrorIs(t, r.Err(), cause)
	})

	t.Run("check failure is treated as absent by default", func(t *testing.T) {
		res := &resource{checkErr: errors.New("permission denied")}

		r := guard.Ensure(ctx, res.spec())
		require.True(t, r.IsSuccess())
		require.Equal(t, 1, res.actions)

		var qualified bool
		for _, reason := range r.Reasons() {
			if reason.Message == "Existence check failed, treating as absent: thing" {
				qualified = true
				require.True(t, reason.IsSuccess())
			}
		}
		require.True(t, qualified)
	})

	t.Run("check failure aborts when configured", func(t *testing.T) {
		cause := errors.New("network unreachable")
		res := &resource{checkErr: cause}
		spec := res.spec()
		spec.OnCheckFailure = guard.FailOnCheckError

		r := guard.Ensure(ctx, spec)
		require.False(t, r.IsSuccess())
		require.False(t, r.Value())
		require.Zero(t, res.actions)
		require.ErrorIs(t, r.Err(), cause)
	})

	t.Run("custom messages", func(t *testing.T) {
		res := &resource{exists: true}
		spec := res.spec()
		spec.Messages.AlreadyDone = "already there"

		r := guard.Ensure(ctx, spec)
		reasons := r.Reasons()
		require.Equal(t, "already there", reasons[len(reasons)-1].Message)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes when present then converges", func(t *testing.T) {
		res := &resource{exists: true, removeAct: true}

		first := guard.Remove(ctx, res.spec())
		require.True(t, first.IsSuccess())
		require.True(t, first.Value())

		second := guard.Remove(ctx, res.spec())
		require.True(t, second.IsSuccess())
		require.False(t, second.Value())
		require.Equal(t, 1, res.actions)
	})

	t.Run("absent resource is a no-op", func(t *testing.T) {
		res := &resource{removeAct: true}
		r := guard.Remove(ctx, res.spec())
		require.True(t, r.IsSuccess())
		require.False(t, r.Value())
		require.Zero(t, res.actions)
	})
}
