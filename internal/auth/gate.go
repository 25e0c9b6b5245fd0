package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"veilchat/internal/domain"
)

// DefaultTimeout bounds operator authentication.
const DefaultTimeout = 30 * time.Second

// Gate runs an Authenticator within Timeout. A zero Timeout means no bound.
type Gate struct {
	Auth    domain.Authenticator
	Timeout time.Duration
	Logger  *slog.Logger
}

// Verify authenticates the operator and returns how long it took.
//
// The authenticator sees a context that expires after Timeout. Elapsed
// time is checked as well: an authenticator that ignores its context and
// succeeds late still yields domain.ErrAuthExpired.
func (g Gate) Verify(ctx context.Context) (time.Duration, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	actx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	start := time.Now()
	ok, err := g.Auth.Authenticate(actx)
	elapsed := time.Since(start)

	switch {
	case ctx.Err() != nil:
		return elapsed, fmt.Errorf("authentication interrupted: %w", ctx.Err())
	case g.Timeout > 0 && (elapsed > g.Timeout || errors.Is(err, context.DeadlineExceeded)):
		logger.Warn("authentication expired", "elapsed", elapsed, "limit", g.Timeout)
		return elapsed, fmt.Errorf("%w: took %s, limit %s",
			domain.ErrAuthExpired, elapsed.Round(100*time.Millisecond), g.Timeout)
	case err != nil:
		return elapsed, fmt.Errorf("%w: %w", domain.ErrAuthFailed, err)
	case !ok:
		logger.Warn("authentication rejected", "elapsed", elapsed)
		return elapsed, domain.ErrAuthFailed
	}
	logger.Info("operator authenticated", "elapsed", elapsed)
	return elapsed, nil
}
