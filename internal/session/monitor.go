package session

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is how often the monitor checks the idle deadline.
const DefaultPollInterval = time.Second

const (
	monitorIdle int32 = iota
	monitorRunning
	monitorStopped
)

// Monitor closes a connection that has been idle for longer than its
// timeout. Touch pushes the deadline forward; it is safe to call from any
// goroutine while the watchdog runs.
//
// The monitor moves from running to stopped exactly once, either because
// the deadline passed (the connection is closed and Expired reports true)
// or because Stop was called (the connection is left alone).
type Monitor struct {
	conn     io.Closer
	timeout  time.Duration
	poll     time.Duration
	logger   *slog.Logger
	deadline atomic.Int64 // unix nanos
	state    atomic.Int32
	expired  atomic.Bool
	stop     chan struct{}
	done     chan struct{}
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithPollInterval sets how often the deadline is checked.
func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.poll = d
		}
	}
}

// WithMonitorLogger sets the logger used to report expiry.
func WithMonitorLogger(l *slog.Logger) MonitorOption {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMonitor returns a stopped-until-started monitor for conn. A
// non-positive timeout never expires.
func NewMonitor(conn io.Closer, timeout time.Duration, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		conn:    conn,
		timeout: timeout,
		poll:    DefaultPollInterval,
		logger:  slog.Default(),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start arms the deadline and launches the watchdog. Calling Start more
// than once, or after Stop, does nothing.
func (m *Monitor) Start() {
	if !m.state.CompareAndSwap(monitorIdle, monitorRunning) {
		return
	}
	m.Touch()
	go m.watch()
}

// Touch records activity: the deadline becomes now + timeout.
func (m *Monitor) Touch() {
	m.deadline.Store(time.Now().Add(m.timeout).UnixNano())
}

// Stop halts the watchdog without closing the connection and waits for it
// to exit. It is idempotent.
func (m *Monitor) Stop() {
	switch {
	case m.state.CompareAndSwap(monitorRunning, monitorStopped):
		close(m.stop)
	case m.state.CompareAndSwap(monitorIdle, monitorStopped):
		close(m.done)
		return
	}
	<-m.done
}

// Expired reports whether the monitor closed the connection for idleness.
func (m *Monitor) Expired() bool { return m.expired.Load() }

// Due reports whether the idle deadline passes within the next poll
// interval. A peer that closes at that point is closing for idleness too.
// A timeout no longer than the poll interval is never due early: the
// window would cover the whole idle period.
func (m *Monitor) Due() bool {
	if m.timeout <= m.poll {
		return false
	}
	return time.Now().Add(m.poll).UnixNano() >= m.deadline.Load()
}

// Done is closed once the monitor has stopped, by expiry or by Stop.
func (m *Monitor) Done() <-chan struct{} { return m.done }

func (m *Monitor) watch() {
	defer close(m.done)

	ticker := time.NewTicker(m.poll)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			if m.timeout <= 0 || now.UnixNano() < m.deadline.Load() {
				continue
			}
			if !m.state.CompareAndSwap(monitorRunning, monitorStopped) {
				return
			}
			m.expired.Store(true)
			m.logger.Warn("connection idle, closing", "idle_timeout", m.timeout)
			_ = m.conn.Close()
			return
		}
	}
}
