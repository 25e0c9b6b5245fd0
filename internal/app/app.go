package app

import (
	"context"
	"fmt"
	"log/slog"

	"veilchat/internal/auth"
	"veilchat/internal/crypto"
	"veilchat/internal/domain"
	"veilchat/internal/session"
	"veilchat/internal/transport"
	"veilchat/internal/util/memzero"
)

// App runs the two ends of a conversation with a resolved Config.
type App struct {
	Config Config
	Logger *slog.Logger
	*Wire
}

// New builds an App. cfg must be valid and have its paths resolved.
func New(cfg Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{Config: cfg, Logger: logger, Wire: NewWire(cfg)}
}

// Authenticator returns the configured operator authenticator. Codes are
// read from in and hints written to out.
func (a *App) Authenticator(in domain.LineReader, out domain.Printer) domain.Authenticator {
	if a.Config.Auth == auth.MethodNone {
		return auth.None{}
	}
	return &auth.TOTP{Enrollments: a.Enrollments, Input: in, Output: out}
}

// SessionConfig returns the session settings for role. Only the client
// bounds the wait for a reply; the server's wait is covered by the idle
// timeout.
func (a *App) SessionConfig(role domain.Role) session.Config {
	cfg := session.Config{
		Role:         role,
		IdleTimeout:  a.Config.IdleTimeout.D(),
		PollInterval: a.Config.PollInterval.D(),
	}
	if role == domain.RoleClient {
		cfg.ResponseTimeout = a.Config.ResponseTimeout.D()
	}
	return cfg
}

// Listen binds the configured server address.
func (a *App) Listen() (*transport.TCPListener, error) {
	return transport.Listen(a.Config.Listen, a.Logger)
}

// Serve waits on ln for one client within the accept timeout and runs the
// server side of the conversation with it. ln is closed on return.
func (a *App) Serve(
	ctx context.Context,
	ln *transport.TCPListener,
	passphrase string,
	in domain.LineReader,
	out domain.Printer,
) error {
	defer ln.Close()

	channel, err := a.channel(passphrase)
	if err != nil {
		return err
	}

	timeout := a.Config.AcceptTimeout.D()
	out.Notice("Server started on %s. Waiting for client... (timeout: %s)", ln.Address(), timeout)
	conn, err := ln.AcceptOne(ctx, timeout)
	if err != nil {
		return err
	}
	out.Notice("Connected to client at %s", conn.RemoteAddr())

	s := session.New(conn, channel, in, out, a.SessionConfig(domain.RoleServer), session.WithLogger(a.Logger))
	return s.Run(ctx)
}

// Connect authenticates the operator, dials address within the connect
// timeout and runs the client side of the conversation.
func (a *App) Connect(
	ctx context.Context,
	address string,
	passphrase string,
	in domain.LineReader,
	out domain.Printer,
) error {
	if address == "" {
		address = a.Config.Address
	}

	gate := auth.Gate{
		Auth:    a.Authenticator(in, out),
		Timeout: a.Config.AuthTimeout.D(),
		Logger:  a.Logger,
	}
	out.Notice("Authenticating... (timeout: %s)", gate.Timeout)
	elapsed, err := gate.Verify(ctx)
	if err != nil {
		return err
	}
	out.Notice("Authentication successful in %.1fs. Connecting to %s...", elapsed.Seconds(), address)

	channel, err := a.channel(passphrase)
	if err != nil {
		return err
	}

	dialer := &transport.TCPDialer{Timeout: a.Config.ConnectTimeout.D()}
	conn, err := dialer.DialContext(ctx, address)
	if err != nil {
		return err
	}
	out.Notice("Connected to server. Start typing messages.")

	s := session.New(conn, channel, in, out, a.SessionConfig(domain.RoleClient), session.WithLogger(a.Logger))
	return s.Run(ctx)
}

func (a *App) channel(passphrase string) (*crypto.Channel, error) {
	key, err := a.Keys.LoadKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key[:])

	ch, err := crypto.NewChannel(key)
	if err != nil {
		return nil, fmt.Errorf("session key: %w", err)
	}
	a.Logger.Debug("session key loaded", "fingerprint", crypto.Fingerprint(key).String())
	return ch, nil
}
