package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/GardenKeeper_Go/internal/bootstrap"
	"github.com/osse101/GardenKeeper_Go/internal/chain"
	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/garden"
	"github.com/osse101/GardenKeeper_Go/internal/handler"
	"github.com/osse101/GardenKeeper_Go/internal/poller"
	"github.com/osse101/GardenKeeper_Go/internal/seeds"
	"github.com/osse101/GardenKeeper_Go/internal/server"
	"github.com/osse101/GardenKeeper_Go/internal/sse"
)

// @title Garden Keeper API
// @version 1.0
// @description Reads on-chain garden plots, resolves clicks into contract calls and streams cell transitions.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	closeLog := initLogger(cfg)
	defer closeLog()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}

	client, err := chain.Dial(ctx, cfg.RPCURL, chain.Config{
		GardenCoreAddress:  cfg.GardenCoreAddress,
		Items1155Address:   cfg.Items1155Address,
		GardenTokenAddress: cfg.GardenTokenAddress,
		ChainID:            cfg.ChainID,
		Timeout:            cfg.RPCTimeout,
	})
	if err != nil {
		store.Close()
		return err
	}

	components := bootstrap.ShutdownComponents{Store: store, Chain: client.Close}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, components)
	}()

	catalog, found, err := seeds.LoadOrDefault(cfg.SeedCatalogPath)
	if err != nil {
		return err
	}
	if !found {
		slog.Warn("Seed catalog not found, using built-in seeds", "path", cfg.SeedCatalogPath)
	}

	clock, err := garden.NewClock(cfg.ClockSource, client)
	if err != nil {
		return err
	}
	svc := garden.NewService(client, catalog, clock, garden.Config{
		GardenCoreAddress: client.GardenCoreAddress(),
		SeedCacheTTL:      cfg.SeedCacheTTL,
	})

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	components.Events = events

	hub := sse.NewHub()
	hub.Start()
	components.Hub = hub
	if err := bootstrap.RegisterEventHandlers(events.Bus, hub); err != nil {
		return err
	}

	p := poller.New(svc, store, events.Publisher, catalog, poller.Config{
		Interval:   cfg.PollInterval,
		Workers:    cfg.PollWorkers,
		QueueSize:  cfg.PollQueueSize,
		MaxWatched: cfg.MaxWatched,
	})
	for _, target := range cfg.WatchTargets {
		if _, err := p.Watch(target.Player, target.PlotID); err != nil {
			return err
		}
	}
	p.Start(ctx)
	components.Poller = p

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		AllowedOrigins: cfg.AllowedOrigins,
	}, server.Dependencies{
		Garden: svc,
		Store:  store,
		RPC: handler.CheckFunc(func(ctx context.Context) error {
			_, err := client.HeadTime(ctx)
			return err
		}),
		Watcher: p,
		Hub:     hub,
	})
	components.Server = srv

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
