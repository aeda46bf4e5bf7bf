// Package pgtest starts a throwaway PostgreSQL container for integration tests
package pgtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	startupTimeout = 60 * time.Second
)

// Start runs a postgres container and returns its connection string. When
// Docker is unavailable it returns "" and a no-op terminate so callers can
// skip instead of failing.
func Start(ctx context.Context) (connString string, terminate func()) {
	terminate = func() {}

	// testcontainers panics when no Docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "pgtest: docker unavailable: %v\n", r)
			connString = ""
		}
	}()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase("gardenkeeper_test"),
		postgres.WithUsername("garden"),
		postgres.WithPassword("garden"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: failed to start container: %v\n", err)
		return "", terminate
	}
	terminate = func() {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "pgtest: failed to terminate container: %v\n", err)
		}
	}

	connString, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: failed to read connection string: %v\n", err)
		terminate()
		return "", func() {}
	}
	return connString, terminate
}

// Require skips t in -short mode or when no database was started
func Require(t testing.TB, connString string) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if connString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}
