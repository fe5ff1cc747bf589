package handler

import (
	"net/http"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
)

// ScoreHandler evaluates dice without touching any table
type ScoreHandler struct {
	scoringService *scoring.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoringService *scoring.Service) *ScoreHandler {
	return &ScoreHandler{scoringService: scoringService}
}

// Score handles POST /api/v1/score. With a category only that category is
// scored, otherwise every selectable category is.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if len(req.Dice) != model.DiceCount {
		WriteError(w, NewInvalidRequestError("Exactly five dice are required"))
		return
	}
	dice, err := model.ParseDice(req.Dice...)
	if err != nil {
		WriteError(w, err)
		return
	}

	var scores []model.CategoryScore
	if req.Category == "" {
		scores = h.scoringService.EvaluateAll(dice)
	} else {
		category, err := model.ParseCategory(req.Category)
		if err != nil {
			WriteError(w, err)
			return
		}
		scores = []model.CategoryScore{h.scoringService.Evaluate(category, dice)}
	}

	response.JSON(w, http.StatusOK, response.ScoreResponse{
		Dice:   req.Dice,
		Scores: response.CategoryScoresFromModel(scores),
	})
}
