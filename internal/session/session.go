package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"veilchat/internal/crypto"
	"veilchat/internal/domain"
	"veilchat/internal/transport"
	"veilchat/internal/wire"
)

const (
	// MaxMessageSize is the largest plaintext a single message may carry.
	MaxMessageSize = 64 << 10

	// DefaultMaxFrameSize admits a MaxMessageSize plaintext plus frame overhead.
	DefaultMaxFrameSize = MaxMessageSize + crypto.Overhead

	// DefaultPrompt is shown when the local side has the turn.
	DefaultPrompt = "You: "
)

// Config controls one session. Zero durations disable the matching timeout.
type Config struct {
	Role            domain.Role
	ResponseTimeout time.Duration
	IdleTimeout     time.Duration
	PollInterval    time.Duration
	MaxFrameSize    int
	Prompt          string
}

// Stats counts the messages exchanged so far.
type Stats struct {
	Sent     int64
	Received int64
}

// Session is one half-duplex conversation over conn. It owns conn: Run
// closes it on every exit path.
type Session struct {
	id      string
	conn    net.Conn
	cipher  domain.Cipher
	in      domain.LineReader
	out     domain.Printer
	cfg     Config
	logger  *slog.Logger
	monitor *Monitor

	turn     atomic.Int32
	sent     atomic.Int64
	received atomic.Int64
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the base logger; session and role attributes are added.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the random session id used in log lines.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New prepares a session. Nothing happens on the wire until Run.
func New(
	conn net.Conn,
	cipher domain.Cipher,
	in domain.LineReader,
	out domain.Printer,
	cfg Config,
	opts ...Option,
) *Session {
	if cfg.MaxFrameSize <= 0 {
		cfg.MaxFrameSize = DefaultMaxFrameSize
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	s := &Session{
		id:     uuid.NewString(),
		conn:   conn,
		cipher: cipher,
		in:     in,
		out:    out,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("session", s.id, "role", cfg.Role.String())
	s.monitor = NewMonitor(conn, cfg.IdleTimeout,
		WithPollInterval(cfg.PollInterval),
		WithMonitorLogger(s.logger),
	)

	initial := domain.WaitingForLocalInput
	if cfg.Role == domain.RoleServer {
		initial = domain.WaitingForRemoteReply
	}
	s.turn.Store(int32(initial))
	return s
}

// ID returns the session id used in log lines.
func (s *Session) ID() string { return s.id }

// Turn reports whose turn it is.
func (s *Session) Turn() domain.Turn { return domain.Turn(s.turn.Load()) }

// Stats returns the message counters.
func (s *Session) Stats() Stats {
	return Stats{Sent: s.sent.Load(), Received: s.received.Load()}
}

// Run drives the conversation until local input ends (nil error) or a
// terminal failure occurs. Cancelling ctx closes the connection and Run
// returns an error wrapping the context error.
func (s *Session) Run(ctx context.Context) (err error) {
	s.monitor.Start()
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })

	defer func() {
		stop()
		s.monitor.Stop()
		_ = s.conn.Close()

		st := s.Stats()
		if err != nil {
			s.logger.Error("session ended", "err", err, "sent", st.Sent, "received", st.Received)
			return
		}
		s.logger.Info("session ended", "sent", st.Sent, "received", st.Received)
	}()

	s.logger.Info("session started", "remote", s.conn.RemoteAddr().String())

	for {
		switch s.Turn() {
		case domain.WaitingForLocalInput:
			finished, err := s.localTurn(ctx)
			if err != nil || finished {
				return err
			}
		case domain.WaitingForRemoteReply:
			if err := s.remoteTurn(ctx); err != nil {
				return err
			}
		}
	}
}

// localTurn reads lines until a non-empty one is sent. It reports true
// when local input is exhausted.
func (s *Session) localTurn(ctx context.Context) (bool, error) {
	for {
		line, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if line == "" {
			continue
		}
		if len(line) > MaxMessageSize {
			s.out.Notice("Message too long (%d bytes, limit %d). Not sent.", len(line), MaxMessageSize)
			continue
		}

		frame, err := s.cipher.Encrypt([]byte(line))
		if err != nil {
			return false, fmt.Errorf("encrypt: %w", err)
		}
		if err := wire.WriteFrame(s.conn, frame, s.cfg.MaxFrameSize); err != nil {
			return false, s.classify(ctx, err)
		}
		s.monitor.Touch()
		s.sent.Add(1)
		s.turn.Store(int32(domain.WaitingForRemoteReply))
		return false, nil
	}
}

// readLine reads local input on a helper goroutine so that an interrupt
// or an idle expiry can abandon a blocked prompt.
func (s *Session) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := s.in.ReadLine(s.cfg.Prompt)
		ch <- result{line, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && !errors.Is(r.err, io.EOF) {
			if ctx.Err() != nil {
				return "", s.classify(ctx, r.err)
			}
			return "", fmt.Errorf("read input: %w", r.err)
		}
		return r.line, r.err
	case <-ctx.Done():
		return "", s.classify(ctx, ctx.Err())
	case <-s.monitor.Done():
		return "", s.classify(ctx, net.ErrClosed)
	}
}

func (s *Session) remoteTurn(ctx context.Context) error {
	var deadline time.Time
	if s.cfg.ResponseTimeout > 0 {
		s.out.Notice("Waiting for %s response... (timeout: %s)",
			strings.ToLower(s.cfg.Role.Peer()), s.cfg.ResponseTimeout)
		deadline = time.Now().Add(s.cfg.ResponseTimeout)
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return s.classify(ctx, err)
	}

	frame, err := wire.ReadFrame(s.conn, s.cfg.MaxFrameSize)
	if err != nil {
		return s.classify(ctx, err)
	}
	plaintext, err := s.cipher.Decrypt(frame)
	if err != nil {
		return err
	}

	s.monitor.Touch()
	s.received.Add(1)
	s.out.Message(s.cfg.Role.Peer(), string(plaintext))
	s.turn.Store(int32(domain.WaitingForLocalInput))
	return nil
}

// classify maps an I/O failure to the session error that caused it. Idle
// expiry and interrupts close the connection themselves, so they are
// checked before the error is looked at.
func (s *Session) classify(ctx context.Context, err error) error {
	switch {
	case s.monitor.Expired(), transport.IsClosedError(err) && s.monitor.Due():
		return fmt.Errorf("%w: no activity for %s", domain.ErrIdleTimeout, s.cfg.IdleTimeout)
	case ctx.Err() != nil:
		return fmt.Errorf("session interrupted: %w", ctx.Err())
	case errors.Is(err, domain.ErrIntegrity):
		return err
	case transport.IsTimeout(err):
		return fmt.Errorf("%w: %s did not reply within %s",
			domain.ErrResponseTimeout, strings.ToLower(s.cfg.Role.Peer()), s.cfg.ResponseTimeout)
	case transport.IsClosedError(err):
		return fmt.Errorf("%w: %v", domain.ErrPeerDisconnected, err)
	default:
		return fmt.Errorf("connection: %w", err)
	}
}
