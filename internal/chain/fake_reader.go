package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
)

// Token defaults of a new FakeReader
const (
	FakeTokenAddress  = "0x3333333333333333333333333333333333333333"
	FakeTokenDecimals = 18
)

// FakeReader is a stateful in-memory Reader for tests and local runs
// without an RPC endpoint. Plots and balances are keyed by lowercased address.
type FakeReader struct {
	mu         sync.Mutex
	plots      map[string][domain.CellsPerPlot]*big.Int
	limits     map[string]uint16
	balances   map[string]*big.Int
	tokens     map[string]*big.Int
	decimals   uint8
	noToken    bool
	seeds      map[domain.SeedType]domain.SeedConfig
	head       time.Time
	failures   map[string]error
	callCounts map[string]int
}

// NewFakeReader creates an empty FakeReader whose chain head is the given time
func NewFakeReader(head time.Time) *FakeReader {
	return &FakeReader{
		plots:      make(map[string][domain.CellsPerPlot]*big.Int),
		limits:     make(map[string]uint16),
		balances:   make(map[string]*big.Int),
		tokens:     make(map[string]*big.Int),
		decimals:   FakeTokenDecimals,
		seeds:      make(map[domain.SeedType]domain.SeedConfig),
		head:       head,
		failures:   make(map[string]error),
		callCounts: make(map[string]int),
	}
}

// SetCell stores a packed value for one cell
func (f *FakeReader) SetCell(player string, plotID uint16, cell int, packed *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := plotKey(player, plotID)
	cells := f.plots[key]
	cells[cell] = packed
	f.plots[key] = cells
}

// SetPlotsLimit sets the number of unlocked plots for a player
func (f *FakeReader) SetPlotsLimit(player string, limit uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits[strings.ToLower(player)] = limit
}

// SetBalance sets an ERC-1155 balance
func (f *FakeReader) SetBalance(player string, tokenID uint64, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[balanceKey(player, tokenID)] = big.NewInt(amount)
}

// SetTokenBalance sets a raw GARDEN balance
func (f *FakeReader) SetTokenBalance(player string, raw *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[strings.ToLower(player)] = new(big.Int).Set(raw)
}

// SetTokenDecimals changes the decimals the token reports
func (f *FakeReader) SetTokenDecimals(decimals uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decimals = decimals
}

// DisableToken makes TokenBalance behave as if no token address was configured
func (f *FakeReader) DisableToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noToken = true
}

// SetSeedConfig stores an on-chain seed configuration
func (f *FakeReader) SetSeedConfig(cfg domain.SeedConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeds[cfg.Type] = cfg
}

// SetHead moves the chain clock
func (f *FakeReader) SetHead(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.head = t
}

// FailOn makes every call to method return err (nil clears it)
func (f *FakeReader) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, method)
		return
	}
	f.failures[method] = err
}

// Calls returns how many times method was invoked
func (f *FakeReader) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCounts[method]
}

func (f *FakeReader) enter(method string) error {
	f.callCounts[method]++
	if err, ok := f.failures[method]; ok {
		return fmt.Errorf("%w: %s: %w", domain.ErrChainUnavailable, method, err)
	}
	return nil
}

// PlotCells implements Reader
func (f *FakeReader) PlotCells(ctx context.Context, player string, plotID uint16) ([domain.CellsPerPlot]*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out [domain.CellsPerPlot]*big.Int
	if err := f.enter(MethodGetPlotCells); err != nil {
		return out, err
	}
	if _, err := ParseAddress(player); err != nil {
		return out, err
	}
	cells := f.plots[plotKey(player, plotID)]
	for i := range out {
		if cells[i] == nil {
			out[i] = new(big.Int)
			continue
		}
		out[i] = new(big.Int).Set(cells[i])
	}
	return out, nil
}

// SeedConfig implements Reader. Unknown types return an inactive zero config,
// as the contract does.
func (f *FakeReader) SeedConfig(ctx context.Context, seedType domain.SeedType) (domain.SeedConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.enter(MethodGetSeedConfig); err != nil {
		return domain.SeedConfig{}, err
	}
	cfg, ok := f.seeds[seedType]
	if !ok {
		return domain.SeedConfig{Type: seedType, BuyPriceWei: new(big.Int), SellPriceWei: new(big.Int)}, nil
	}
	return cfg, nil
}

// PlotsLimit implements Reader
func (f *FakeReader) PlotsLimit(ctx context.Context, player string) (uint16, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.enter(MethodPlotsLimitOf); err != nil {
		return 0, err
	}
	if _, err := ParseAddress(player); err != nil {
		return 0, err
	}
	return f.limits[strings.ToLower(player)], nil
}

// BalanceOf implements Reader
func (f *FakeReader) BalanceOf(ctx context.Context, player string, tokenID uint64) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.enter(MethodBalanceOf); err != nil {
		return nil, err
	}
	if _, err := ParseAddress(player); err != nil {
		return nil, err
	}
	if bal, ok := f.balances[balanceKey(player, tokenID)]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// TokenBalance implements Reader
func (f *FakeReader) TokenBalance(ctx context.Context, player string) (domain.TokenBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.noToken {
		return domain.TokenBalance{}, domain.ErrTokenNotConfigured
	}
	if err := f.enter(MethodDecimals); err != nil {
		return domain.TokenBalance{}, err
	}
	addr, err := ParseAddress(player)
	if err != nil {
		return domain.TokenBalance{}, err
	}
	raw := new(big.Int)
	if bal, ok := f.tokens[strings.ToLower(player)]; ok {
		raw.Set(bal)
	}
	return domain.TokenBalance{
		Player:    addr.Hex(),
		Token:     FakeTokenAddress,
		Raw:       raw,
		Decimals:  f.decimals,
		Formatted: FormatUnits(raw, f.decimals),
	}, nil
}

// HeadTime implements Reader
func (f *FakeReader) HeadTime(ctx context.Context) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.enter("eth_getBlockByNumber"); err != nil {
		return time.Time{}, err
	}
	return f.head, nil
}

func plotKey(player string, plotID uint16) string {
	return fmt.Sprintf("%s:%d", strings.ToLower(player), plotID)
}

func balanceKey(player string, tokenID uint64) string {
	return fmt.Sprintf("%s:%d", strings.ToLower(player), tokenID)
}

var _ Reader = (*FakeReader)(nil)
