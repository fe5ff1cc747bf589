package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/yahtzee-go/internal/api"
	"github.com/mcoot/yahtzee-go/internal/config"
	"github.com/mcoot/yahtzee-go/internal/factory"
	redisstorage "github.com/mcoot/yahtzee-go/internal/storage/redis"
)

func main() {
	env, err := config.LoadServer()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(env.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:        logger,
		StorageType:   env.StorageType,
		RollLimit:     env.RollLimit,
		EnableMetrics: env.MetricsEnabled,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		redisCfg.TableTTL = env.TableTTL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerCfg := api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		ScoringService: app.ScoringService,
		HubManager:     app.HubManager,
		BotService:     app.BotService,
		Metrics:        app.Metrics,
	}
	if app.Registry != nil {
		routerCfg.Gatherer = app.Registry
	}

	server := api.NewServer(api.NewRouter(routerCfg), api.ServerConfigFromEnv(env), logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", env.StorageType),
		slog.Int("roll_limit", env.RollLimit),
		slog.Bool("metrics", env.MetricsEnabled),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		app.HubManager.CloseAll()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
