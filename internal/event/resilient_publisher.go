package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	DeadLetter *DeadLetterWriter // optional
}

// ResilientPublisher wraps a Bus and retries failed deliveries in the
// background so a slow or failing subscriber never stalls the poller.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	wg     sync.WaitGroup
	stop   chan struct{}
	once   sync.Once
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultRetryMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
		stop:   make(chan struct{}),
	}
}

// Publish delivers the event once synchronously. On failure it schedules
// retries and returns nil; the caller is never blocked by retries.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)
	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()
	ctx := context.Background()

	attempts := 1
	for i := 1; i <= p.config.MaxRetries; i++ {
		select {
		case <-p.stop:
			p.deadLetter(event, attempts, lastErr)
			return
		case <-time.After(CalculateRetryDelay(p.config.RetryDelay, i)):
		}

		attempts++
		if lastErr = p.inner.Publish(ctx, event); lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", i)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", i, "error", lastErr)
	}

	p.deadLetter(event, attempts, lastErr)
}

func (p *ResilientPublisher) deadLetter(event Event, attempts int, lastErr error) {
	logger.Warn(LogMsgEventDeadLettered, "event_type", event.Type, "attempts", attempts, "error", lastErr)
	if p.config.DeadLetter == nil {
		return
	}
	if err := p.config.DeadLetter.Write(event, attempts, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterFailed, "error", err)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown cancels pending retries (dead-lettering their events) and waits
// for the retry goroutines to exit or ctx to expire.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
