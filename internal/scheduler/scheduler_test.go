package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/GardenKeeper_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_EveryStopsOnStop(t *testing.T) {
	sched := New(worker.NewPool(1, 1, 0))

	var ticks atomic.Int32
	sched.Every(5*time.Millisecond, func(time.Time) { ticks.Add(1) })

	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, 5*time.Millisecond)

	sched.Stop()
	sched.Stop()
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}
