package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/event"
)

// EventSystem is the bus the poller publishes to, wrapped with retries
type EventSystem struct {
	Bus        event.Bus
	Publisher  *event.ResilientPublisher
	DeadLetter *event.DeadLetterWriter
}

// InitializeEventSystem creates the event bus and resilient publisher.
// Zero retry settings fall back to the config defaults and the dead-letter
// directory is created when missing.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = config.DefaultEventMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = config.DefaultEventRetryDelay
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	deadLetter, err := event.NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenDeadLetter, err)
	}

	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		MaxRetries: maxRetries,
		RetryDelay: retryDelay,
		DeadLetter: deadLetter,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher, DeadLetter: deadLetter}, nil
}
