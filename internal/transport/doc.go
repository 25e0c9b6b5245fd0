// Package transport establishes the single TCP connection a session runs on.
//
// [TCPDialer] connects to a server with a bounded wait and maps failures to
// domain.ErrConnectTimeout and domain.ErrConnectionRefused. [TCPListener]
// binds an address, accepts exactly one client with a bounded wait
// (domain.ErrAcceptTimeout), then stops listening: there is no fan-out.
//
// Connections returned here are ordinary net.Conn values. The Go runtime
// poller already multiplexes them, so readiness waits are expressed with
// deadlines rather than select(2).
package transport
