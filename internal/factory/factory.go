package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mcoot/yahtzee-go/internal/dependencies/clock"
	"github.com/mcoot/yahtzee-go/internal/dependencies/random"
	"github.com/mcoot/yahtzee-go/internal/events"
	"github.com/mcoot/yahtzee-go/internal/metrics"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/bot"
	"github.com/mcoot/yahtzee-go/internal/services/game"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
	"github.com/mcoot/yahtzee-go/internal/storage"
	"github.com/mcoot/yahtzee-go/internal/storage/memory"
	redisstorage "github.com/mcoot/yahtzee-go/internal/storage/redis"
	"github.com/mcoot/yahtzee-go/internal/web/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// MetricsNamespace prefixes every exported metric
const MetricsNamespace = "yahtzee"

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService *scoring.Service
	GameController *game.Controller
	BotService     *bot.Service
	HubManager     *ws.HubManager

	// Metrics is nil when metrics are disabled
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RollLimit is the default rolls per turn for new tables (optional)
	RollLimit int
	// EnableMetrics registers prometheus collectors on a fresh registry
	EnableMetrics bool
	// Publishers receive table events in addition to the websocket hubs (optional)
	Publishers []events.Publisher
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if cfg.EnableMetrics {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(MetricsNamespace, registry)
	}

	app := newWithDependencies(store, clock.New(), random.New(), m, cfg.RollLimit, logger, cfg.Publishers...)
	app.Registry = registry
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	m *metrics.Metrics,
	rollLimit int,
	logger *slog.Logger,
	publishers ...events.Publisher,
) *App {
	scoringService := scoring.New()
	hubManager := ws.NewHubManager(logger)

	publisher := events.Multi(append([]events.Publisher{hubManager}, publishers...))

	var opts []game.Option
	if rollLimit > 0 {
		opts = append(opts, game.WithDefaultRollLimit(rollLimit))
	}
	gameController := game.NewController(store, scoringService, publisher, m, clk, rnd, logger, opts...)

	strategies := map[string]bot.Strategy{
		model.BotStrategyGreedy: bot.NewGreedyStrategy(scoringService),
		model.BotStrategyRandom: bot.NewRandomStrategy(rnd),
	}
	botService := bot.NewService(gameController, strategies, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ScoringService: scoringService,
		GameController: gameController,
		BotService:     botService,
		HubManager:     hubManager,
		Metrics:        m,
	}
}
