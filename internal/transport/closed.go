package transport

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// IsClosedError reports whether err is a normal connection termination:
// EOF, a truncated stream, a closed connection, broken pipe, or connection
// reset. A peer that goes away mid-conversation produces one of these on
// the surviving side.
func IsClosedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE || errno == syscall.ECONNRESET
	}
	return false
}

// IsTimeout reports whether err is an I/O deadline expiry.
func IsTimeout(err error) bool { return isTimeout(err) }
