// Package garden turns raw GardenCore state into plot views, click plans and
// shop quotes.
package garden

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/domain"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
	"github.com/osse101/GardenKeeper_Go/internal/metrics"
	"github.com/osse101/GardenKeeper_Go/internal/plotcodec"
	"github.com/osse101/GardenKeeper_Go/internal/seeds"
)

// Service defines the garden business logic
type Service interface {
	// GetPlot reads and decodes one plot of a player
	GetPlot(ctx context.Context, player string, plotID uint16) (*domain.PlotView, error)

	// ResolveClick decides what a click on a cell should do
	ResolveClick(ctx context.Context, req domain.ClickRequest) (*domain.ActionPlan, error)

	// Inventory returns seed and crop balances for every known seed type
	Inventory(ctx context.Context, player string) ([]domain.InventoryEntry, error)

	// TokenBalance returns the player's GARDEN token balance
	TokenBalance(ctx context.Context, player string) (*domain.TokenBalance, error)

	// SeedList returns the catalog merged with on-chain configuration
	SeedList(ctx context.Context) ([]domain.SeedConfig, error)

	// SeedConfig returns the merged configuration of one seed type
	SeedConfig(ctx context.Context, seedType domain.SeedType) (domain.SeedConfig, error)

	// PurgeSeedCache forgets cached on-chain seed configs so the next read
	// sees a reconfigured contract. It returns the number of entries dropped.
	PurgeSeedCache() int

	// QuoteBuySeeds prices a seed purchase and returns the payable call
	QuoteBuySeeds(ctx context.Context, seedType domain.SeedType, qty int64) (*domain.TradeQuote, error)

	// QuoteSellCrops prices a crop sale and returns the call
	QuoteSellCrops(ctx context.Context, seedType domain.SeedType, qty int64) (*domain.TradeQuote, error)
}

// Config holds service settings
type Config struct {
	GardenCoreAddress string
	SeedCacheSize     int
	SeedCacheTTL      time.Duration
}

type service struct {
	reader  chain.Reader
	catalog *seeds.Catalog
	clock   Clock
	cache   *seedCache
	to      string
}

// NewService creates a new garden service
func NewService(reader chain.Reader, catalog *seeds.Catalog, clock Clock, cfg Config) Service {
	if catalog == nil {
		catalog = seeds.Default()
	}
	if clock == nil {
		clock = NewWallClock()
	}
	return &service{
		reader:  reader,
		catalog: catalog,
		clock:   clock,
		cache:   newSeedCache(cfg.SeedCacheSize, cfg.SeedCacheTTL),
		to:      cfg.GardenCoreAddress,
	}
}

// GetPlot reads and decodes one plot of a player
func (s *service) GetPlot(ctx context.Context, player string, plotID uint16) (*domain.PlotView, error) {
	player, err := chain.NormalizeAddress(player)
	if err != nil {
		return nil, err
	}

	limit, err := s.reader.PlotsLimit(ctx, player)
	if err != nil {
		return nil, err
	}
	if plotID >= limit {
		return nil, fmt.Errorf("%w: plot %d, player owns %d", domain.ErrPlotLocked, plotID, limit)
	}

	cells, err := s.reader.PlotCells(ctx, player, plotID)
	if err != nil {
		return nil, err
	}
	now, err := s.clock.Now(ctx)
	if err != nil {
		return nil, err
	}

	view, err := BuildPlotView(player, plotID, cells, now, s.clock.Basis(), s.catalog)
	if err != nil {
		metrics.DecodeFailures.Inc()
		logger.FromContext(ctx).Error(LogMsgDecodeFailed, "player", player, "plot", plotID, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Debug(LogMsgPlotRead, "player", player, "plot", plotID, "ready", view.ReadyCount())
	return view, nil
}

// ResolveClick routes a click: ready crops are harvested, growing crops are
// left alone and empty cells are planted with the selected seed
func (s *service) ResolveClick(ctx context.Context, req domain.ClickRequest) (*domain.ActionPlan, error) {
	if req.CellIndex < 0 || req.CellIndex >= domain.CellsPerPlot {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCell, req.CellIndex)
	}

	view, err := s.GetPlot(ctx, req.Player, req.PlotID)
	if err != nil {
		return nil, err
	}
	cell := view.Cells[req.CellIndex]
	log := logger.FromContext(ctx)

	if !cell.Empty {
		if !cell.Ready() {
			log.Debug(LogMsgClickResolved, "action", domain.ActionIgnore, "cell", req.CellIndex)
			return &domain.ActionPlan{
				Action:  domain.ActionIgnore,
				Reason:  domain.ReasonGrowing,
				Cell:    cell,
				ReadyIn: cell.SecondsRemaining,
			}, nil
		}

		data, err := chain.PackHarvest(req.PlotID, req.CellIndex)
		if err != nil {
			return nil, err
		}
		log.Info(LogMsgClickResolved, "action", domain.ActionHarvest, "player", view.Player, "plot", req.PlotID, "cell", req.CellIndex)
		return &domain.ActionPlan{
			Action: domain.ActionHarvest,
			Reason: domain.ReasonReady,
			Cell:   cell,
			Call:   chain.NewContractCall(s.to, chain.MethodHarvest, data, nil, req.PlotID, req.CellIndex),
		}, nil
	}

	if req.SeedType == 0 {
		return nil, domain.ErrSeedNotSelected
	}
	cfg, err := s.SeedConfig(ctx, req.SeedType)
	if err != nil {
		return nil, err
	}
	if !cfg.Active {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeedInactive, cfg.Name)
	}

	balance, err := s.reader.BalanceOf(ctx, view.Player, cfg.SeedTokenID)
	if err != nil {
		return nil, err
	}
	if balance.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSeedBalance, cfg.Name)
	}

	data, err := chain.PackPlant(req.PlotID, req.CellIndex, req.SeedType)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgClickResolved, "action", domain.ActionPlant, "player", view.Player, "plot", req.PlotID, "cell", req.CellIndex, "seed", cfg.Name)
	return &domain.ActionPlan{
		Action: domain.ActionPlant,
		Reason: domain.ReasonEmptyCell,
		Cell:   cell,
		Call:   chain.NewContractCall(s.to, chain.MethodPlant, data, nil, req.PlotID, req.CellIndex, req.SeedType),
	}, nil
}

// Inventory returns seed and crop balances for every known seed type
func (s *service) Inventory(ctx context.Context, player string) ([]domain.InventoryEntry, error) {
	player, err := chain.NormalizeAddress(player)
	if err != nil {
		return nil, err
	}
	configs, err := s.SeedList(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.InventoryEntry, len(configs))
	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range configs {
		entries[i] = domain.InventoryEntry{SeedType: cfg.Type, Name: cfg.Name}
		g.Go(func() error {
			bal, err := s.reader.BalanceOf(gctx, player, cfg.SeedTokenID)
			if err != nil {
				return err
			}
			entries[i].SeedBalance = bal
			return nil
		})
		g.Go(func() error {
			bal, err := s.reader.BalanceOf(gctx, player, cfg.CropTokenID)
			if err != nil {
				return err
			}
			entries[i].CropBalance = bal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// TokenBalance returns the player's GARDEN token balance
func (s *service) TokenBalance(ctx context.Context, player string) (*domain.TokenBalance, error) {
	player, err := chain.NormalizeAddress(player)
	if err != nil {
		return nil, err
	}
	bal, err := s.reader.TokenBalance(ctx, player)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug(LogMsgTokenBalanceRead, "player", player, "balance", bal.Formatted)
	return &bal, nil
}

// SeedList returns every catalog seed merged with its on-chain configuration
func (s *service) SeedList(ctx context.Context) ([]domain.SeedConfig, error) {
	types := s.catalog.Types()
	out := make([]domain.SeedConfig, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range types {
		g.Go(func() error {
			cfg, err := s.SeedConfig(gctx, t)
			if err != nil {
				return err
			}
			out[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SeedConfig returns the catalog entry of a seed overridden by its on-chain
// configuration. Seeds the contract does not know are reported inactive.
func (s *service) SeedConfig(ctx context.Context, seedType domain.SeedType) (domain.SeedConfig, error) {
	if seedType == 0 || seedType > plotcodec.MaxSeedType {
		return domain.SeedConfig{}, fmt.Errorf("%w: %d", domain.ErrSeedNotFound, seedType)
	}
	if cfg, ok := s.cache.Get(seedType); ok {
		return cfg, nil
	}

	onChain, err := s.reader.SeedConfig(ctx, seedType)
	if err != nil {
		return domain.SeedConfig{}, err
	}
	static, known := s.catalog.Get(seedType)
	merged := MergeSeedConfig(static, onChain)
	merged.Name = s.catalog.Name(seedType)
	if !known && !merged.Active {
		return domain.SeedConfig{}, fmt.Errorf("%w: %d", domain.ErrSeedNotFound, seedType)
	}

	logger.FromContext(ctx).Debug(LogMsgSeedConfigFetched, "seed", merged.Name, "active", merged.Active)
	s.cache.Set(merged)
	return merged, nil
}

// PurgeSeedCache forgets every cached seed config
func (s *service) PurgeSeedCache() int {
	return s.cache.Clear()
}

// MergeSeedConfig overlays an on-chain config onto a catalog entry. A config
// with neither a grow duration nor a seed token is one the contract has never
// set, so only the catalog values remain and the seed is inactive.
func MergeSeedConfig(static, onChain domain.SeedConfig) domain.SeedConfig {
	merged := static
	merged.Type = onChain.Type
	if onChain.GrowDuration == 0 && onChain.SeedTokenID == 0 {
		merged.Active = false
		return withPrices(merged)
	}

	merged.GrowDuration = onChain.GrowDuration
	merged.SeedTokenID = onChain.SeedTokenID
	merged.CropTokenID = onChain.CropTokenID
	merged.BuyPriceWei = onChain.BuyPriceWei
	merged.SellPriceWei = onChain.SellPriceWei
	merged.Active = onChain.Active
	return withPrices(merged)
}

func withPrices(cfg domain.SeedConfig) domain.SeedConfig {
	if cfg.BuyPriceWei == nil {
		cfg.BuyPriceWei = new(big.Int)
	}
	if cfg.SellPriceWei == nil {
		cfg.SellPriceWei = new(big.Int)
	}
	return cfg
}

// QuoteBuySeeds prices a seed purchase; the total is the msg.value to send
func (s *service) QuoteBuySeeds(ctx context.Context, seedType domain.SeedType, qty int64) (*domain.TradeQuote, error) {
	cfg, err := s.tradableSeed(ctx, seedType, qty)
	if err != nil {
		return nil, err
	}
	data, err := chain.PackBuySeeds(seedType, qty)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Mul(cfg.BuyPriceWei, big.NewInt(qty))
	return &domain.TradeQuote{
		SeedType: seedType,
		Name:     cfg.Name,
		Quantity: qty,
		UnitWei:  new(big.Int).Set(cfg.BuyPriceWei),
		TotalWei: total,
		Call:     chain.NewContractCall(s.to, chain.MethodBuySeeds, data, total, seedType, qty),
	}, nil
}

// QuoteSellCrops prices a crop sale; the total is the payout the contract sends
func (s *service) QuoteSellCrops(ctx context.Context, seedType domain.SeedType, qty int64) (*domain.TradeQuote, error) {
	cfg, err := s.tradableSeed(ctx, seedType, qty)
	if err != nil {
		return nil, err
	}
	data, err := chain.PackSellCrops(seedType, qty)
	if err != nil {
		return nil, err
	}
	return &domain.TradeQuote{
		SeedType: seedType,
		Name:     cfg.Name,
		Quantity: qty,
		UnitWei:  new(big.Int).Set(cfg.SellPriceWei),
		TotalWei: new(big.Int).Mul(cfg.SellPriceWei, big.NewInt(qty)),
		Call:     chain.NewContractCall(s.to, chain.MethodSellCrops, data, nil, seedType, qty),
	}, nil
}

func (s *service) tradableSeed(ctx context.Context, seedType domain.SeedType, qty int64) (domain.SeedConfig, error) {
	if qty <= 0 {
		return domain.SeedConfig{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, qty)
	}
	cfg, err := s.SeedConfig(ctx, seedType)
	if err != nil {
		return domain.SeedConfig{}, err
	}
	if !cfg.Active {
		return domain.SeedConfig{}, fmt.Errorf("%w: %s", domain.ErrSeedInactive, cfg.Name)
	}
	return cfg, nil
}

// IsClientError reports whether err is caused by the caller's input rather
// than the chain or the store
func IsClientError(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidPlayer, domain.ErrInvalidPlot, domain.ErrInvalidCell,
		domain.ErrPlotLocked, domain.ErrSeedNotSelected, domain.ErrSeedNotFound,
		domain.ErrSeedInactive, domain.ErrNoSeedBalance, domain.ErrInvalidQuantity,
		domain.ErrInvalidInput, domain.ErrSnapshotNotFound, domain.ErrWatchLimitReached,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
