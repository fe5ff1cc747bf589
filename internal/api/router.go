package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/yahtzee-go/internal/api/handler"
	apimiddleware "github.com/mcoot/yahtzee-go/internal/api/middleware"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/metrics"
	"github.com/mcoot/yahtzee-go/internal/middleware"
	"github.com/mcoot/yahtzee-go/internal/services/bot"
	"github.com/mcoot/yahtzee-go/internal/services/game"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
	"github.com/mcoot/yahtzee-go/internal/web/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController game.ControllerInterface
	ScoringService *scoring.Service
	HubManager     *ws.HubManager
	// BotService is optional; without it no bots can be seated
	BotService *bot.Service
	// Metrics and Gatherer are optional; /metrics is only served with a Gatherer
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	var bots handler.BotRunner
	if cfg.BotService != nil {
		bots = cfg.BotService
	}

	tableHandler := handler.NewTableHandler(cfg.GameController, cfg.ScoringService, cfg.HubManager, bots, cfg.Logger)
	turnHandler := handler.NewTurnHandler(cfg.GameController, bots)
	scoreHandler := handler.NewScoreHandler(cfg.ScoringService)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(apimiddleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Instrument(cfg.Metrics))

	// Table lifecycle
	api.HandleFunc("/table", tableHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/table", tableHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/table", tableHandler.Abandon).Methods(http.MethodDelete)
	api.HandleFunc("/table/players", tableHandler.AddPlayer).Methods(http.MethodPost)
	api.HandleFunc("/table/bots", tableHandler.AddBot).Methods(http.MethodPost)
	api.HandleFunc("/table/players/{username}", tableHandler.RemovePlayer).Methods(http.MethodDelete)
	api.HandleFunc("/table/start", tableHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/table/standings", tableHandler.Standings).Methods(http.MethodGet)
	api.HandleFunc("/table/events", tableHandler.Events).Methods(http.MethodGet)

	// Turn actions
	players := api.PathPrefix("/table/players/{username}").Subrouter()
	players.HandleFunc("/roll", turnHandler.Roll).Methods(http.MethodPost)
	players.HandleFunc("/hold/{index}", turnHandler.Hold).Methods(http.MethodPost)
	players.HandleFunc("/unhold/{index}", turnHandler.Unhold).Methods(http.MethodPost)
	players.HandleFunc("/select", turnHandler.Select).Methods(http.MethodPost)
	players.HandleFunc("/end-turn", turnHandler.EndTurn).Methods(http.MethodPost)

	// Stateless scoring
	api.HandleFunc("/score", scoreHandler.Score).Methods(http.MethodPost)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
