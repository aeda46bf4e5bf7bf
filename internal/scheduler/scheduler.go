package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/logger"
	"github.com/osse101/GardenKeeper_Go/internal/worker"
)

// LogMsgJobDropped is logged when a tick finds the worker queue full
const LogMsgJobDropped = "Scheduled job dropped, worker queue full"

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule enqueues job every interval. A tick that finds the queue full is
// skipped rather than piling up behind a slow worker.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.Every(interval, func(time.Time) {
		if !s.workerPool.TryEnqueue(job) {
			logger.FromContext(context.Background()).Warn(LogMsgJobDropped)
		}
	})
}

// Every calls tick on its own goroutine at a fixed interval until Stop
func (s *Scheduler) Every(interval time.Duration, tick func(now time.Time)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				tick(now)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.wg.Wait()
	})
}
