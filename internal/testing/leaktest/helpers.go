// Package leaktest checks that tests leave no goroutines running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	checkTimeout = time.Second
)

// GoroutineChecker records the goroutine count at creation and compares
// against it later.
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker creates a new checker and records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines are still alive
// once the exiting ones have had up to a second to finish.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	after := waitFor(target, checkTimeout)
	if after > target {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, after-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and requires the goroutine count to return
// to where it started.
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func waitFor(target int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}
