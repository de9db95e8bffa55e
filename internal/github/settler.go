package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v5"

	rserrors "reposmith.dev/reposmith/internal/errors"
	"reposmith.dev/reposmith/internal/paths"
	"reposmith.dev/reposmith/internal/result"
	"reposmith.dev/reposmith/internal/tui"
)

// Settle defaults
const (
	DefaultSettleDelay           = 3 * time.Second
	DefaultSettleInitialInterval = 250 * time.Millisecond
	DefaultSettleMaxInterval     = 2 * time.Second
	DefaultSettleMaxElapsed      = 30 * time.Second
)

// Settler waits until a newly created repository is visible to subsequent
// requests
type Settler interface {
	Settle(ctx context.Context, owner, name string) *result.Result[result.None]
}

var errNotVisibleYet = errors.New("repository not visible yet")

// PollSettler polls for the repository with exponential backoff
type PollSettler struct {
	client          Client
	splog           *tui.Splog
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// NewPollSettler creates a settler with the default intervals
func NewPollSettler(client Client, splog *tui.Splog) *PollSettler {
	if splog == nil {
		splog = tui.NewSplogWithWriter(io.Discard)
	}
	return &PollSettler{
		client:          client,
		splog:           splog,
		InitialInterval: DefaultSettleInitialInterval,
		MaxInterval:     DefaultSettleMaxInterval,
		MaxElapsed:      DefaultSettleMaxElapsed,
	}
}

// Settle returns once the repository exists, the time budget is spent, or
// ctx is done
func (s *PollSettler) Settle(ctx context.Context, owner, name string) *result.Result[result.None] {
	ownedName := paths.OwnedName(owner, name)
	r := result.New("Wait For GitHub Repository").
		WithMetadata("Repository", ownedName).
		WithMetadata("Strategy", "poll")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.InitialInterval
	b.MaxInterval = s.MaxInterval

	attempts := 0
	start := time.Now()
	_, err := backoff.Retry(ctx, func() (bool, error) {
		attempts++
		exists, err := s.client.RepositoryExists(ctx, owner, name)
		if errors.Is(err, rserrors.ErrAuthentication) {
			return false, backoff.Permanent(err)
		}
		if err != nil {
			return false, err
		}
		if !exists {
			return false, errNotVisibleYet
		}
		return true, nil
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(s.MaxElapsed),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.splog.Debug("%s: %v, retrying in %s", ownedName, err, next)
		}),
	)

	r.WithMetadata("Attempts", attempts).WithMetadata("Waited", time.Since(start).Round(time.Millisecond).String())
	if err != nil {
		return r.DeclareFailure(fmt.Sprintf("GitHub repository did not become visible: %s", ownedName), err)
	}
	return r.DeclareSuccess(fmt.Sprintf("GitHub repository is visible: %s", ownedName))
}

// FixedSettler sleeps for a flat delay
type FixedSettler struct {
	Delay time.Duration
}

// NewFixedSettler creates a settler sleeping for delay, or the default 3s
// when delay is not positive
func NewFixedSettler(delay time.Duration) *FixedSettler {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	return &FixedSettler{Delay: delay}
}

// Settle sleeps for the delay or until ctx is done
func (s *FixedSettler) Settle(ctx context.Context, owner, name string) *result.Result[result.None] {
	ownedName := paths.OwnedName(owner, name)
	r := result.New("Wait For GitHub Repository").
		WithMetadata("Repository", ownedName).
		WithMetadata("Strategy", "fixed").
		WithMetadata("Delay", s.Delay.String())

	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return r.DeclareSuccess(fmt.Sprintf("Waited %s for GitHub repository: %s", s.Delay, ownedName))
	case <-ctx.Done():
		return r.DeclareFailure(fmt.Sprintf("Interrupted while waiting for GitHub repository: %s", ownedName), ctx.Err())
	}
}
