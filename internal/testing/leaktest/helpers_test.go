package leaktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures failures so a failing check can be asserted on
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }

func TestCheck_WaitsForExitingGoroutines(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(done)
	}()

	checker.Check(0)
	<-done
}

func TestCheck_Tolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	checker.Check(1)
}

func TestCheck_ReportsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec).WithTimeout(50 * time.Millisecond)

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	checker.Check(0)
	assert.True(t, rec.failed)
}

func TestRun(t *testing.T) {
	Run(t, func() {
		done := make(chan struct{})
		go close(done)
		<-done
	})
}
