package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player and plot errors
	ErrMsgInvalidPlayer = "invalid player address"
	ErrMsgInvalidPlot   = "invalid plot id"
	ErrMsgInvalidCell   = "invalid cell index"
	ErrMsgPlotLocked    = "plot is locked"

	// Seed errors
	ErrMsgSeedNotSelected = "no seed selected"
	ErrMsgSeedNotFound    = "seed not found"
	ErrMsgSeedInactive    = "seed is not available"
	ErrMsgNoSeedBalance   = "no seeds of that type"

	// Trade errors
	ErrMsgInvalidQuantity = "invalid quantity"

	// Chain errors
	ErrMsgChainUnavailable   = "chain unavailable"
	ErrMsgTokenNotConfigured = "garden token is not configured"

	// Watch list errors
	ErrMsgWatchLimitReached = "watch list is full"

	// Storage errors
	ErrMsgSnapshotNotFound = "snapshot not found"
	ErrMsgDatabaseError    = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidPlayer = errors.New(ErrMsgInvalidPlayer)
	ErrInvalidPlot   = errors.New(ErrMsgInvalidPlot)
	ErrInvalidCell   = errors.New(ErrMsgInvalidCell)
	ErrPlotLocked    = errors.New(ErrMsgPlotLocked)

	ErrSeedNotSelected = errors.New(ErrMsgSeedNotSelected)
	ErrSeedNotFound    = errors.New(ErrMsgSeedNotFound)
	ErrSeedInactive    = errors.New(ErrMsgSeedInactive)
	ErrNoSeedBalance   = errors.New(ErrMsgNoSeedBalance)

	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)

	ErrChainUnavailable   = errors.New(ErrMsgChainUnavailable)
	ErrTokenNotConfigured = errors.New(ErrMsgTokenNotConfigured)

	ErrWatchLimitReached = errors.New(ErrMsgWatchLimitReached)

	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)
	ErrDatabaseError    = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
