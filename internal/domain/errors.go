package domain

import "errors"

// Session failures. Every one of them is terminal: the session closes and
// the cause is reported, nothing is retried.
var (
	// ErrConnectTimeout is returned when the server did not answer a dial in time.
	ErrConnectTimeout = errors.New("connect timeout")
	// ErrConnectionRefused is returned when the server actively rejected the dial.
	ErrConnectionRefused = errors.New("connection refused")
	// ErrAcceptTimeout is returned when no client connected in time.
	ErrAcceptTimeout = errors.New("accept timeout")
	// ErrResponseTimeout is returned when the peer did not reply in time.
	ErrResponseTimeout = errors.New("response timeout")
	// ErrIdleTimeout is returned when the activity monitor closed the connection.
	ErrIdleTimeout = errors.New("idle timeout")
	// ErrPeerDisconnected is returned when the peer closed or reset the connection.
	ErrPeerDisconnected = errors.New("peer disconnected")
	// ErrIntegrity is returned when a frame fails authentication or is malformed.
	ErrIntegrity = errors.New("frame integrity check failed")
	// ErrAuthExpired is returned when operator authentication exceeded its bound.
	ErrAuthExpired = errors.New("authentication expired")
	// ErrAuthFailed is returned when the operator could not be authenticated.
	ErrAuthFailed = errors.New("authentication failed")
	// ErrKeyUnavailable is returned when no key record could be loaded.
	ErrKeyUnavailable = errors.New("session key unavailable")
)
