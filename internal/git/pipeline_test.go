package git

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// scriptedClient records calls and fails the ones it is told to
type scriptedClient struct {
	calls      []string
	unpushed   bool
	checkErr   error
	stageErr   error
	commitErr  error
	pushErr    error
	cloneErr   error
	pushedWith Credentials
}

func (c *scriptedClient) Clone(_ context.Context, _, _ string, _ Credentials) error {
	c.calls = append(c.calls, "clone")
	return c.cloneErr
}

func (c *scriptedClient) Commit(_ context.Context, _, _ string, _ Author) error {
	c.calls = append(c.calls, "commit")
	return c.commitErr
}

func (c *scriptedClient) Push(_ context.Context, _ string, creds Credentials) error {
	c.calls = append(c.calls, "push")
	c.pushedWith = creds
	return c.pushErr
}

func (c *scriptedClient) HasUnpushedChanges(_ context.Context, _ string) (bool, error) {
	c.calls = append(c.calls, "check")
	return c.unpushed, c.checkErr
}

func (c *scriptedClient) StageAllUnstaged(_ context.Context, _ string) error {
	c.calls = append(c.calls, "stage")
	return c.stageErr
}

func newTestPipeline(client *scriptedClient, policy Policy) (*Pipeline, *bytes.Buffer) {
	var buf bytes.Buffer
	op := NewOperator(client, StaticCredentials{Username: "octocat", Password: "token"}, Author{Name: "Octo Cat", Email: "octo@example.com"})
	return NewPipeline(op, policy, tui.NewSplogWithWriter(&buf)), &buf
}

func childTitles(n result.Node) []string {
	var titles []string
	for _, c := range n.Children() {
		titles = append(titles, c.Title())
	}
	return titles
}

func TestPushAllChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("no unpushed changes runs no steps", func(t *testing.T) {
		client := &scriptedClient{unpushed: false}
		p, _ := newTestPipeline(client, ContinueOnFailure)

		r := p.PushAllChanges(ctx, "/repos/acme/widgets", "Initial commit.")

		require.True(t, r.IsSuccess())
		require.False(t, r.Value())
		require.Equal(t, []string{"check"}, client.calls)
		require.Len(t, r.Children(), 1)
	})

	t.Run("unpushed changes stage, commit and push in order", func(t *testing.T) {
		client := &scriptedClient{unpushed: true}
		p, buf := newTestPipeline(client, ContinueOnFailure)

		r := p.PushAllChanges(ctx, "/repos/acme/widgets", "Initial commit.")

		require.True(t, r.IsSuccess())
		require.True(t, r.Value())
		require.Equal(t, []string{"check", "stage", "commit", "push"}, client.calls)
		require.Equal(t, []string{
			"Check if Any Unpushed Changes",
			"Stage All Unstaged Paths",
			"Commit Changes",
			"Push Changes",
		}, childTitles(r))
		require.Equal(t, "octocat", client.pushedWith.Username)
		require.Contains(t, buf.String(), "Unpushed changes detected.")
	})

	t.Run("continue policy attempts every step after a failure", func(t *testing.T) {
		client := &scriptedClient{unpushed: true, stageErr: errors.New("index locked")}
		p, _ := newTestPipeline(client, ContinueOnFailure)

		r := p.PushAllChanges(ctx, "/repos/acme/widgets", "msg")

		require.False(t, r.IsSuccess())
		require.True(t, r.Value(), "value reports that changes existed")
		require.Equal(t, []string{"check", "stage", "commit", "push"}, client.calls)
		require.Len(t, r.Children(), 4)
		require.ErrorContains(t, r.Err(), "index locked")
	})

	t.Run("abort policy stops at the first failure", func(t *testing.T) {
		client := &scriptedClient{unpushed: true, commitErr: errors.New("no author")}
		p, _ := newTestPipeline(client, AbortOnFailure)

		r := p.PushAllChanges(ctx, "/repos/acme/widgets", "msg")

		require.False(t, r.IsSuccess())
		require.True(t, r.Value())
		require.Equal(t, []string{"check", "stage", "commit"}, client.calls)
		require.Len(t, r.Children(), 3)

		var skipped []string
		for _, reason := range r.Reasons() {
			if reason.Message == "Skipped after an earlier failure: push changes" {
				skipped = append(skipped, reason.Message)
			}
		}
		require.Len(t, skipped, 1)
	})

	t.Run("failed check declares failure and runs no steps", func(t *testing.T) {
		client := &scriptedClient{checkErr: errors.New("not a repository")}
		p, _ := newTestPipeline(client, ContinueOnFailure)

		r := p.PushAllChanges(ctx, "/repos/acme/widgets", "msg")

		require.False(t, r.IsSuccess())
		require.False(t, r.Value())
		require.Equal(t, []string{"check"}, client.calls)
		require.ErrorContains(t, r.Err(), "not a repository")
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", ContinueOnFailure, false},
		{"continue", ContinueOnFailure, false},
		{"ABORT", AbortOnFailure, false},
		{"sometimes", ContinueOnFailure, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, got.String(), map[Policy]string{ContinueOnFailure: "continue", AbortOnFailure: "abort"}[got])
		})
	}
}
