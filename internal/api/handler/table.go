package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/game"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
	"github.com/mcoot/yahtzee-go/internal/web/ws"
)

// TableHandler handles the table lifecycle endpoints
type TableHandler struct {
	gameController game.ControllerInterface
	scoringService *scoring.Service
	hubManager     *ws.HubManager
	bots           BotRunner
	logger         *slog.Logger
}

// NewTableHandler creates a new table handler
func NewTableHandler(
	gameController game.ControllerInterface,
	scoringService *scoring.Service,
	hubManager *ws.HubManager,
	bots BotRunner,
	logger *slog.Logger,
) *TableHandler {
	return &TableHandler{
		gameController: gameController,
		scoringService: scoringService,
		hubManager:     hubManager,
		bots:           bots,
		logger:         logger,
	}
}

// Create handles POST /api/v1/table
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTableRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.gameController.CreateTable(r.Context(), req.RollLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(table))
}

// Get handles GET /api/v1/table
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	table, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table))
}

// Abandon handles DELETE /api/v1/table
func (h *TableHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.gameController.Abandon(r.Context(), active.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table))
}

// AddPlayer handles POST /api/v1/table/players
func (h *TableHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.gameController.AddPlayer(r.Context(), active.ID, req.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(table))
}

// AddBot handles POST /api/v1/table/bots
func (h *TableHandler) AddBot(w http.ResponseWriter, r *http.Request) {
	if h.bots == nil {
		WriteError(w, NewInvalidRequestError("Bot players are not enabled"))
		return
	}

	req := request.AddBotRequest{Strategy: model.BotStrategyGreedy}
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.bots.AddBotToTable(r.Context(), active.ID, req.Strategy)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TableFromModel(table))
}

// RemovePlayer handles DELETE /api/v1/table/players/{username}
func (h *TableHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.gameController.RemovePlayer(r.Context(), active.ID, mux.Vars(r)["username"])
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err = playBots(r.Context(), h.bots, h.gameController, table)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table))
}

// Start handles POST /api/v1/table/start
func (h *TableHandler) Start(w http.ResponseWriter, r *http.Request) {
	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := h.gameController.Start(r.Context(), active.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err = playBots(r.Context(), h.bots, h.gameController, table)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table))
}

// Standings handles GET /api/v1/table/standings
func (h *TableHandler) Standings(w http.ResponseWriter, r *http.Request) {
	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	standings, err := h.gameController.Standings(r.Context(), active.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.StandingsResponse{
		State:     string(active.State),
		Standings: response.StandingsFromModel(standings),
	}
	if active.State == model.TableStateComplete {
		if winner := h.scoringService.DetermineWinner(standings); winner != "" {
			resp.Winner = &winner
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// Events handles GET /api/v1/table/events, upgrading to a websocket that
// receives every event for the active table
func (h *TableHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, NewInvalidRequestError("Event streaming is not enabled"))
		return
	}

	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	// Finished tables publish nothing more, so no hub is opened for them
	switch active.State {
	case model.TableStateComplete:
		WriteError(w, model.ErrGameComplete)
		return
	case model.TableStateAbandoned:
		WriteError(w, model.ErrGameAbandoned)
		return
	}

	hub := h.hubManager.GetOrCreateHub(active.ID)
	ws.ServeWS(w, r, hub, h.logger)
}
