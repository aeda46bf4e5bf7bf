// Package chain reads GardenCore, Items1155 and GARDEN token state over
// Ethereum JSON-RPC and builds unsigned calldata for player actions.
package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
	"github.com/osse101/GardenKeeper_Go/internal/metrics"
)

// Reader is the read surface of the garden contracts
type Reader interface {
	PlotCells(ctx context.Context, player string, plotID uint16) ([domain.CellsPerPlot]*big.Int, error)
	SeedConfig(ctx context.Context, seedType domain.SeedType) (domain.SeedConfig, error)
	PlotsLimit(ctx context.Context, player string) (uint16, error)
	BalanceOf(ctx context.Context, player string, tokenID uint64) (*big.Int, error)
	HeadTime(ctx context.Context) (time.Time, error)

	// TokenBalance reads the GARDEN ERC-20 balance crop sales pay out in
	TokenBalance(ctx context.Context, player string) (domain.TokenBalance, error)
}

// Backend is the subset of ethclient.Client the reader needs
type Backend interface {
	bind.ContractCaller
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Config holds contract addresses and call limits
type Config struct {
	GardenCoreAddress string
	Items1155Address  string
	// GardenTokenAddress is optional; without it TokenBalance fails with
	// domain.ErrTokenNotConfigured
	GardenTokenAddress string
	ChainID            int64
	Timeout            time.Duration
}

// Client implements Reader on top of a JSON-RPC backend
type Client struct {
	backend    Backend
	gardenCore common.Address
	items1155  common.Address
	core       *bind.BoundContract
	items      *bind.BoundContract
	token      *bind.BoundContract
	tokenAddr  common.Address
	timeout    time.Duration
	closer     func()

	decimalsMu sync.Mutex
	decimals   *uint8
}

// Dial connects to an RPC endpoint and checks it serves the expected chain
func Dial(ctx context.Context, rpcURL string, cfg Config) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", domain.ErrChainUnavailable, rpcURL, err)
	}

	if cfg.ChainID != 0 {
		id, err := ec.ChainID(ctx)
		if err != nil {
			logger.Warn("Could not read chain id from RPC", "error", err)
		} else if id.Int64() != cfg.ChainID {
			ec.Close()
			return nil, fmt.Errorf("RPC serves chain %s, expected %d", id, cfg.ChainID)
		}
	}

	c, err := NewClient(ec, cfg)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// NewClient builds a client over an existing backend
func NewClient(backend Backend, cfg Config) (*Client, error) {
	core, err := ParseAddress(cfg.GardenCoreAddress)
	if err != nil {
		return nil, fmt.Errorf("garden core address: %w", err)
	}
	items, err := ParseAddress(cfg.Items1155Address)
	if err != nil {
		return nil, fmt.Errorf("items1155 address: %w", err)
	}

	c := &Client{
		backend:    backend,
		gardenCore: core,
		items1155:  items,
		core:       bind.NewBoundContract(core, GardenCoreABI, backend, nil, nil),
		items:      bind.NewBoundContract(items, Items1155ABI, backend, nil, nil),
		timeout:    cfg.Timeout,
	}
	if cfg.GardenTokenAddress != "" {
		token, err := ParseAddress(cfg.GardenTokenAddress)
		if err != nil {
			return nil, fmt.Errorf("garden token address: %w", err)
		}
		c.tokenAddr = token
		c.token = bind.NewBoundContract(token, ERC20ABI, backend, nil, nil)
	}
	return c, nil
}

// GardenCoreAddress returns the checksummed GardenCore address
func (c *Client) GardenCoreAddress() string {
	return c.gardenCore.Hex()
}

// Close releases the RPC connection when the client owns it
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// PlotCells reads the 12 packed cells of a plot
func (c *Client) PlotCells(ctx context.Context, player string, plotID uint16) ([domain.CellsPerPlot]*big.Int, error) {
	var cells [domain.CellsPerPlot]*big.Int

	addr, err := ParseAddress(player)
	if err != nil {
		return cells, err
	}

	out, err := c.call(ctx, c.core, MethodGetPlotCells, addr, new(big.Int).SetUint64(uint64(plotID)))
	if err != nil {
		return cells, err
	}
	cells = *abi.ConvertType(out[0], new([domain.CellsPerPlot]*big.Int)).(*[domain.CellsPerPlot]*big.Int)
	return cells, nil
}

// SeedConfig reads GardenCore.getSeedConfig. The name is left empty; callers
// take it from the seed catalog.
func (c *Client) SeedConfig(ctx context.Context, seedType domain.SeedType) (domain.SeedConfig, error) {
	out, err := c.call(ctx, c.core, MethodGetSeedConfig, uint16(seedType))
	if err != nil {
		return domain.SeedConfig{}, err
	}
	t := *abi.ConvertType(out[0], new(seedConfigTuple)).(*seedConfigTuple)
	return domain.SeedConfig{
		Type:         seedType,
		GrowDuration: t.GrowDuration,
		SeedTokenID:  uint64(t.SeedTokenId),
		CropTokenID:  uint64(t.CropTokenId),
		BuyPriceWei:  t.BuyPriceWei,
		SellPriceWei: t.SellPriceWei,
		Active:       t.Active,
	}, nil
}

// PlotsLimit reads how many plots the player has unlocked
func (c *Client) PlotsLimit(ctx context.Context, player string) (uint16, error) {
	addr, err := ParseAddress(player)
	if err != nil {
		return 0, err
	}
	out, err := c.call(ctx, c.core, MethodPlotsLimitOf, addr)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint16)).(*uint16), nil
}

// BalanceOf reads an ERC-1155 balance
func (c *Client) BalanceOf(ctx context.Context, player string, tokenID uint64) (*big.Int, error) {
	addr, err := ParseAddress(player)
	if err != nil {
		return nil, err
	}
	out, err := c.call(ctx, c.items, MethodBalanceOf, addr, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// TokenBalance reads the player's GARDEN balance. Decimals are read once and
// kept for the life of the client.
func (c *Client) TokenBalance(ctx context.Context, player string) (domain.TokenBalance, error) {
	if c.token == nil {
		return domain.TokenBalance{}, domain.ErrTokenNotConfigured
	}
	addr, err := ParseAddress(player)
	if err != nil {
		return domain.TokenBalance{}, err
	}

	decimals, err := c.tokenDecimals(ctx)
	if err != nil {
		return domain.TokenBalance{}, err
	}
	out, err := c.call(ctx, c.token, MethodBalanceOf, addr)
	if err != nil {
		return domain.TokenBalance{}, err
	}
	raw := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)

	return domain.TokenBalance{
		Player:    addr.Hex(),
		Token:     c.tokenAddr.Hex(),
		Raw:       raw,
		Decimals:  decimals,
		Formatted: FormatUnits(raw, decimals),
	}, nil
}

func (c *Client) tokenDecimals(ctx context.Context) (uint8, error) {
	c.decimalsMu.Lock()
	defer c.decimalsMu.Unlock()
	if c.decimals != nil {
		return *c.decimals, nil
	}

	out, err := c.call(ctx, c.token, MethodDecimals)
	if err != nil {
		return 0, err
	}
	d := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	c.decimals = &d
	return d, nil
}

// HeadTime returns the timestamp of the latest block
func (c *Client) HeadTime(ctx context.Context) (time.Time, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	header, err := c.backend.HeaderByNumber(ctx, nil)
	metrics.ChainCallDuration.WithLabelValues("eth_getBlockByNumber").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChainCallErrors.WithLabelValues("eth_getBlockByNumber").Inc()
		return time.Time{}, fmt.Errorf("%w: latest header: %w", domain.ErrChainUnavailable, err)
	}
	return time.Unix(int64(header.Time), 0).UTC(), nil
}

func (c *Client) call(ctx context.Context, contract *bind.BoundContract, method string, args ...interface{}) ([]interface{}, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	var out []interface{}
	err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...)
	metrics.ChainCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ChainCallErrors.WithLabelValues(method).Inc()
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrChainUnavailable, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s returned no values", domain.ErrChainUnavailable, method)
	}
	return out, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ParseAddress validates a hex address
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidPlayer, s)
	}
	return common.HexToAddress(s), nil
}

// NormalizeAddress returns the checksummed form of a hex address
func NormalizeAddress(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

var _ Reader = (*Client)(nil)
