package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"veilchat/internal/auth"
	"veilchat/internal/domain"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestGate_Accepts(t *testing.T) {
	g := auth.Gate{Auth: auth.None{}, Timeout: time.Second, Logger: quietLogger()}
	_, err := g.Verify(context.Background())
	require.NoError(t, err)
}

func TestGate_Rejects(t *testing.T) {
	g := auth.Gate{
		Auth:    auth.Func(func(context.Context) (bool, error) { return false, nil }),
		Timeout: time.Second,
		Logger:  quietLogger(),
	}
	_, err := g.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestGate_AuthenticatorError(t *testing.T) {
	boom := errors.New("camera unavailable")
	g := auth.Gate{
		Auth:   auth.Func(func(context.Context) (bool, error) { return false, boom }),
		Logger: quietLogger(),
	}
	_, err := g.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	require.ErrorIs(t, err, boom)
}

func TestGate_LateSuccessExpires(t *testing.T) {
	// Ignores its context and succeeds after the bound.
	slow := auth.Func(func(context.Context) (bool, error) {
		time.Sleep(120 * time.Millisecond)
		return true, nil
	})
	g := auth.Gate{Auth: slow, Timeout: 50 * time.Millisecond, Logger: quietLogger()}

	elapsed, err := g.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthExpired)
	require.Greater(t, elapsed, 50*time.Millisecond)
}

func TestGate_ContextBoundExpires(t *testing.T) {
	waiting := auth.Func(func(ctx context.Context) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	})
	g := auth.Gate{Auth: waiting, Timeout: 50 * time.Millisecond, Logger: quietLogger()}

	start := time.Now()
	_, err := g.Verify(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthExpired)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestGate_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := auth.Gate{
		Auth:    auth.Func(func(ctx context.Context) (bool, error) { return false, ctx.Err() }),
		Timeout: time.Second,
		Logger:  quietLogger(),
	}
	_, err := g.Verify(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
