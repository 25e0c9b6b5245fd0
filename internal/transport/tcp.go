package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"syscall"
	"time"

	"veilchat/internal/domain"
)

// DefaultPort is the port both peers use unless configured otherwise.
const DefaultPort = "1234"

// TCPDialer opens the client side of a session.
type TCPDialer struct {
	// Timeout bounds the TCP handshake. Zero means only the context
	// deadline applies.
	Timeout time.Duration
}

// DialContext connects to address (host:port).
func (d *TCPDialer) DialContext(ctx context.Context, address string) (net.Conn, error) {
	conn, err := (&net.Dialer{Timeout: d.Timeout}).DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, classifyDial(address, d.Timeout, err)
	}
	return conn, nil
}

func classifyDial(address string, timeout time.Duration, err error) error {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("%w: %s", domain.ErrConnectionRefused, address)
	case isTimeout(err):
		return fmt.Errorf("%w: no answer from %s within %s", domain.ErrConnectTimeout, address, timeout)
	default:
		return fmt.Errorf("dial %s: %w", address, err)
	}
}

// TCPListener accepts the server side of a session.
type TCPListener struct {
	listener *net.TCPListener
	logger   *slog.Logger
}

// Listen binds address (e.g. ":1234" for all interfaces, "127.0.0.1:0" for
// a random loopback port).
func Listen(address string, logger *slog.Logger) (*TCPListener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TCPListener{listener: ln.(*net.TCPListener), logger: logger}, nil
}

// Address returns the bound address in host:port form.
func (l *TCPListener) Address() string {
	return l.listener.Addr().String()
}

// AcceptOne waits up to timeout for a single client, then closes the
// listener regardless of the outcome. A zero timeout waits until ctx is
// done.
func (l *TCPListener) AcceptOne(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	defer l.Close()

	if timeout > 0 {
		if err := l.listener.SetDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
	}
	stop := context.AfterFunc(ctx, func() { l.listener.Close() })
	defer stop()

	conn, err := l.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("accept: %w", ctx.Err())
		}
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: no client within %s", domain.ErrAcceptTimeout, timeout)
		}
		return nil, fmt.Errorf("accept: %w", err)
	}
	l.logger.Info("client connected", "remote", conn.RemoteAddr().String())
	return conn, nil
}

// Close stops listening. It is safe to call more than once.
func (l *TCPListener) Close() error {
	err := l.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
