// Package leaktest checks that pollers, pools and stream hubs return their
// goroutines after Stop.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	settleStep    = 10 * time.Millisecond
)

// GoroutineChecker records a baseline goroutine count
type GoroutineChecker struct {
	t        testing.TB
	baseline int
	timeout  time.Duration
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{
		t:        t,
		baseline: settled(),
		timeout:  settleTimeout,
	}
}

// WithTimeout changes how long Check waits for goroutines to exit
func (g *GoroutineChecker) WithTimeout(d time.Duration) *GoroutineChecker {
	g.timeout = d
	return g
}

// Check fails the test when, after waiting for stragglers, more than
// tolerance goroutines remain above the baseline
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.baseline + tolerance
	if n, ok := waitFor(limit, g.timeout); !ok {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d", g.baseline, n, tolerance)
	}
}

// Run fails the test when fn leaves goroutines behind
func Run(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// settled returns the goroutine count once it stops dropping
func settled() int {
	prev := runtime.NumGoroutine()
	for i := 0; i < 5; i++ {
		runtime.Gosched()
		time.Sleep(settleStep)
		n := runtime.NumGoroutine()
		if n >= prev {
			return n
		}
		prev = n
	}
	return prev
}

// waitFor polls until the goroutine count is at most limit
func waitFor(limit int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		n := runtime.NumGoroutine()
		if n <= limit {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		runtime.Gosched()
		time.Sleep(settleStep)
	}
}
