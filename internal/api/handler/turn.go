package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/game"
)

// TurnHandler handles the current player's turn actions
type TurnHandler struct {
	gameController game.ControllerInterface
	bots           BotRunner
}

// NewTurnHandler creates a new turn handler. bots may be nil.
func NewTurnHandler(gameController game.ControllerInterface, bots BotRunner) *TurnHandler {
	return &TurnHandler{gameController: gameController, bots: bots}
}

// turnAction runs an action for the {username} player on the active table
type turnAction func(ctx context.Context, id model.TableID, username string) (*model.Table, error)

func (h *TurnHandler) serve(w http.ResponseWriter, r *http.Request, action turnAction) {
	active, err := h.gameController.ActiveTable(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	table, err := action(r.Context(), active.ID, mux.Vars(r)["username"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TableFromModel(table))
}

// Roll handles POST /api/v1/table/players/{username}/roll
func (h *TurnHandler) Roll(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.gameController.Roll)
}

// Hold handles POST /api/v1/table/players/{username}/hold/{index}
func (h *TurnHandler) Hold(w http.ResponseWriter, r *http.Request) {
	index, err := dieIndex(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.serve(w, r, func(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
		return h.gameController.Hold(ctx, id, username, index)
	})
}

// Unhold handles POST /api/v1/table/players/{username}/unhold/{index}
func (h *TurnHandler) Unhold(w http.ResponseWriter, r *http.Request) {
	index, err := dieIndex(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.serve(w, r, func(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
		return h.gameController.Unhold(ctx, id, username, index)
	})
}

// Select handles POST /api/v1/table/players/{username}/select
func (h *TurnHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req request.SelectCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.serve(w, r, func(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
		return h.gameController.SelectCategory(ctx, id, username, category)
	})
}

// EndTurn handles POST /api/v1/table/players/{username}/end-turn
func (h *TurnHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
		table, err := h.gameController.EndTurn(ctx, id, username)
		if err != nil {
			return nil, err
		}
		return playBots(ctx, h.bots, h.gameController, table)
	})
}
