package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ellavondegurechaff/geohoard/geohoard"
	"github.com/ellavondegurechaff/geohoard/geohoard/entropy"
	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
	"github.com/ellavondegurechaff/geohoard/geohoard/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Initialize custom logger
	customHandler := logger.NewHandler("GeoHoard")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting GeoHoard",
		slog.String("version", version),
		slog.String("commit", commit))

	configPath := flag.String("config", "config.toml", "path to config")
	dataPath := flag.String("data", "", "path to the GeoJSON world data (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed, 0 uses the current time")
	flag.Parse()

	cfg, err := geohoard.LoadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("No config file found, using defaults",
				slog.String("type", "sys"),
				slog.String("path", *configPath))
			cfg = geohoard.DefaultConfig()
		} else {
			logger.LogError("Failed to load configuration", err)
			os.Exit(-1)
		}
	} else {
		slog.Info("Configuration loaded successfully")
	}
	customHandler.SetLevel(cfg.Log.Level)

	rng := entropy.NewFromTime()
	if *seed != 0 {
		rng = entropy.New(*seed)
	}

	app := geohoard.New(cfg, rng, version, commit)

	worldFile := cfg.Game.DataFile
	if *dataPath != "" {
		worldFile = *dataPath
	}
	f, err := os.Open(worldFile)
	if err != nil {
		logger.LogError("Failed to open world data", err, slog.String("path", worldFile))
		os.Exit(-1)
	}
	if err := app.SetupWorld(f); err != nil {
		f.Close()
		logger.LogError("Failed to build world", err)
		os.Exit(-1)
	}
	f.Close()

	app.StartSchedulers()

	srv := web.NewServer(app.Store, app.Search, version)
	fiberApp := srv.App()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("API listening",
			slog.String("type", "web"),
			slog.String("addr", cfg.Server.Addr))
		return fiberApp.Listen(cfg.Server.Addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.LogSystem("Shutting down...")

		if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.LogError("Server shutdown failed", err)
		}
		if err := app.Shutdown(10 * time.Second); err != nil {
			logger.LogError("Scheduler shutdown failed", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.LogError("Exited with error", err)
		os.Exit(-1)
	}
	logger.LogSystem("Goodbye.")
}
