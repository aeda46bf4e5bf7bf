package main

import (
	"log/slog"

	"github.com/osse101/GardenKeeper_Go/internal/bootstrap"
	"github.com/osse101/GardenKeeper_Go/internal/config"
	"github.com/osse101/GardenKeeper_Go/internal/logger"
)

// initLogger sets up stdout plus session-file logging, falling back to
// stdout only when the log directory is not writable
func initLogger(cfg *config.Config) func() {
	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		addSource := cfg.Environment == "dev" || cfg.Environment == "development"
		logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, addSource))
		slog.Warn("File logging disabled", "dir", cfg.LogDir, "error", err)
		return func() {}
	}
	return func() { _ = logFile.Close() }
}
