// Package leaktest checks that background goroutines started by a test have exited.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// DefaultTimeout is how long Check waits for goroutines to wind down
const DefaultTimeout = 2 * time.Second

// GoroutineChecker records the goroutine count at construction and compares against it later
type GoroutineChecker struct {
	t      testing.TB
	before int
}

// NewGoroutineChecker snapshots the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, before: runtime.NumGoroutine()}
}

// Check polls until at most tolerance extra goroutines remain, failing the test on timeout
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	if n, ok := waitFor(g.before+tolerance, DefaultTimeout); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d tolerance=%d", g.before, n, tolerance)
	}
}

// Verify runs fn and checks that every goroutine it started has exited
func Verify(t testing.TB, fn func()) {
	t.Helper()
	g := NewGoroutineChecker(t)
	fn()
	g.Check(0)
}

// waitFor returns the final count and whether it dropped to target before the timeout
func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		runtime.Gosched()
		time.Sleep(10 * time.Millisecond)
	}
}
