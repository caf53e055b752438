package pagedesk

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*LoginLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLoginLimiter(limit, window)
	l.now = clock.now
	t.Cleanup(l.Close)
	return l, clock
}

func TestLoginLimiterBlocksAfterLimitFailures(t *testing.T) {
	l, _ := newTestLimiter(t, 2, time.Minute)
	ip := "203.0.113.10"

	if left := l.Record(ip); left != 1 {
		t.Fatalf("expected 1 attempt left, got %d", left)
	}
	if !l.Check(ip) {
		t.Fatalf("expected ip to be allowed after one failure")
	}
	if left := l.Record(ip); left != 0 {
		t.Fatalf("expected 0 attempts left, got %d", left)
	}
	if l.Check(ip) {
		t.Fatalf("expected ip to be blocked after two failures")
	}
}

func TestLoginLimiterCheckDoesNotCount(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.40"

	for i := 0; i < 3; i++ {
		if !l.Check(ip) {
			t.Fatalf("check %d should pass without failures", i)
		}
	}
}

func TestLoginLimiterWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(t, 2, time.Minute)
	ip := "203.0.113.20"

	l.Record(ip)
	clock.t = clock.t.Add(40 * time.Second)
	l.Record(ip)
	if l.Check(ip) {
		t.Fatalf("expected ip to be blocked inside the window")
	}

	clock.t = clock.t.Add(30 * time.Second)
	if !l.Check(ip) {
		t.Fatalf("expected the oldest failure to have expired")
	}
	if l.Record(ip) != 0 {
		t.Fatalf("expected the newer failure to still count")
	}
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)

	l.Record("203.0.113.30")
	if !l.Check("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if l.Check("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked")
	}
}

func TestLoginLimiterResetClearsFailures(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.50"

	l.Record(ip)
	l.Reset(ip)
	if !l.Check(ip) {
		t.Fatalf("expected ip to be allowed after reset")
	}
}

func TestLoginLimiterSweepForgetsExpired(t *testing.T) {
	l, clock := newTestLimiter(t, 3, time.Minute)
	l.Record("203.0.113.60")
	clock.t = clock.t.Add(30 * time.Second)
	l.Record("203.0.113.61")

	l.sweep(clock.t.Add(45 * time.Second))

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.failures["203.0.113.60"]; ok {
		t.Fatalf("expected expired ip to be forgotten")
	}
	if len(l.failures["203.0.113.61"]) != 1 {
		t.Fatalf("expected recent failure to be kept")
	}
}
