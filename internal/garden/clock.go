package garden

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
)

// Clock supplies the "now" used to decide readiness
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
	Basis() string
}

// WallClock reads the host clock
type WallClock struct {
	now func() time.Time
}

// NewWallClock returns a clock backed by time.Now
func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Now implements Clock
func (c *WallClock) Now(context.Context) (time.Time, error) {
	return c.now(), nil
}

// Basis implements Clock
func (c *WallClock) Basis() string { return ClockBasisWall }

// ChainClock uses the latest block timestamp, which is what the contract
// compares against when a harvest is submitted
type ChainClock struct {
	reader chain.Reader
}

// NewChainClock returns a clock that asks the chain for its head time
func NewChainClock(reader chain.Reader) *ChainClock {
	return &ChainClock{reader: reader}
}

// Now implements Clock
func (c *ChainClock) Now(ctx context.Context) (time.Time, error) {
	return c.reader.HeadTime(ctx)
}

// Basis implements Clock
func (c *ChainClock) Basis() string { return ClockBasisChain }

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now implements Clock
func (c FixedClock) Now(context.Context) (time.Time, error) { return c.At, nil }

// Basis implements Clock
func (c FixedClock) Basis() string { return ClockBasisWall }

// NewClock builds the clock named by source ("wall" or "chain")
func NewClock(source string, reader chain.Reader) (Clock, error) {
	switch source {
	case "", ClockBasisWall:
		return NewWallClock(), nil
	case ClockBasisChain:
		return NewChainClock(reader), nil
	default:
		return nil, fmt.Errorf("unknown clock source %q", source)
	}
}
