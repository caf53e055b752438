package pagedesk

import (
	"sync"
	"time"
)

// LoginLimiter counts failed admin logins per client IP inside a sliding
// window. A successful login clears the client's failures.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

// NewLoginLimiter allows limit failed logins per IP within window and
// starts a goroutine that forgets expired failures until Close.
func NewLoginLimiter(limit int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		failures: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// recent prunes and returns the failures of ip newer than the window.
// The caller holds l.mu.
func (l *LoginLimiter) recent(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	hits := l.failures[ip]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == len(hits) {
		delete(l.failures, ip)
		return nil
	}
	hits = hits[i:]
	l.failures[ip] = hits
	return hits
}

// Check reports whether ip may try another login.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recent(ip, l.now())) < l.limit
}

// Record counts a failed login for ip and returns how many attempts it has
// left in the current window.
func (l *LoginLimiter) Record(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	hits := append(l.recent(ip, now), now)
	l.failures[ip] = hits
	return max(l.limit-len(hits), 0)
}

// Reset forgets the failures of ip.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	delete(l.failures, ip)
	l.mu.Unlock()
}

// Close stops the cleanup goroutine.
func (l *LoginLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

func (l *LoginLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip := range l.failures {
		l.recent(ip, now)
	}
}
