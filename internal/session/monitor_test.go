package session_test

import (
	"sync/atomic"
	"testing"
	"time"

	"veilchat/internal/session"
)

type countingCloser struct{ n atomic.Int32 }

func (c *countingCloser) Close() error {
	c.n.Add(1)
	return nil
}

func waitDone(t *testing.T, m *session.Monitor, within time.Duration) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(within):
		t.Fatalf("monitor not stopped after %s", within)
	}
}

func TestMonitor_ExpiresWithinOnePollInterval(t *testing.T) {
	const (
		timeout = 100 * time.Millisecond
		poll    = 25 * time.Millisecond
	)
	c := &countingCloser{}
	m := session.NewMonitor(c, timeout, session.WithPollInterval(poll))

	start := time.Now()
	m.Start()
	waitDone(t, m, 2*time.Second)
	elapsed := time.Since(start)

	if !m.Expired() {
		t.Fatal("Expired() = false after idle closure")
	}
	if got := c.n.Load(); got != 1 {
		t.Fatalf("Close called %d times, want 1", got)
	}
	if elapsed < timeout {
		t.Fatalf("closed after %s, before the %s timeout", elapsed, timeout)
	}
	// One poll interval of lateness plus scheduling slack.
	if limit := timeout + poll + 200*time.Millisecond; elapsed > limit {
		t.Fatalf("closed after %s, want within %s", elapsed, limit)
	}

	m.Stop()
	if got := c.n.Load(); got != 1 {
		t.Fatalf("Stop after expiry closed again (%d)", got)
	}
}

func TestMonitor_TouchKeepsAlive(t *testing.T) {
	c := &countingCloser{}
	m := session.NewMonitor(c, 150*time.Millisecond, session.WithPollInterval(10*time.Millisecond))
	m.Start()
	defer m.Stop()

	for i := 0; i < 15; i++ {
		time.Sleep(20 * time.Millisecond)
		m.Touch()
	}
	if m.Expired() || c.n.Load() != 0 {
		t.Fatal("monitor expired despite activity")
	}
}

func TestMonitor_StopIsIdempotentAndLeavesConnOpen(t *testing.T) {
	c := &countingCloser{}
	m := session.NewMonitor(c, 50*time.Millisecond, session.WithPollInterval(10*time.Millisecond))
	m.Start()
	m.Stop()
	m.Stop()

	waitDone(t, m, time.Second)
	time.Sleep(100 * time.Millisecond)
	if m.Expired() {
		t.Fatal("Expired() = true after Stop")
	}
	if got := c.n.Load(); got != 0 {
		t.Fatalf("Close called %d times after Stop", got)
	}
}

func TestMonitor_StopWithoutStart(t *testing.T) {
	m := session.NewMonitor(&countingCloser{}, time.Second)
	m.Stop()
	waitDone(t, m, time.Second)

	// Start after Stop is a no-op.
	m.Start()
	if m.Expired() {
		t.Fatal("Expired() = true")
	}
}

func TestMonitor_ZeroTimeoutNeverExpires(t *testing.T) {
	c := &countingCloser{}
	m := session.NewMonitor(c, 0, session.WithPollInterval(5*time.Millisecond))
	m.Start()
	time.Sleep(60 * time.Millisecond)
	m.Stop()
	if m.Expired() || c.n.Load() != 0 {
		t.Fatal("monitor with zero timeout expired")
	}
}
