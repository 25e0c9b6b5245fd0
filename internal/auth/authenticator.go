package auth

import (
	"context"

	"veilchat/internal/domain"
)

// Method names accepted by configuration.
const (
	MethodTOTP = "totp"
	MethodNone = "none"
)

// Func adapts a function to domain.Authenticator.
type Func func(ctx context.Context) (bool, error)

func (f Func) Authenticate(ctx context.Context) (bool, error) { return f(ctx) }

// None accepts every operator. It exists for development setups that
// have no enrollment.
type None struct{}

func (None) Authenticate(context.Context) (bool, error) { return true, nil }

var (
	_ domain.Authenticator = Func(nil)
	_ domain.Authenticator = None{}
)
