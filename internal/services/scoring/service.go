package scoring

import (
	"sort"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// Service provides scoring functionality for dice and finished scorecards
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// Evaluate scores dice in a category
func (s *Service) Evaluate(category model.Category, dice []model.Dice) model.CategoryScore {
	return Evaluate(category, dice)
}

// EvaluateAll scores dice in every selectable category, in scorecard order
func (s *Service) EvaluateAll(dice []model.Dice) []model.CategoryScore {
	scores := make([]model.CategoryScore, 0, len(model.Categories()))
	for _, c := range model.UpperCategories() {
		scores = append(scores, Evaluate(c, dice))
	}
	for _, c := range model.LowerCategories() {
		scores = append(scores, Evaluate(c, dice))
	}
	return scores
}

// Rank returns standings for the players sorted by grand total, highest first.
// Players with equal totals keep their seating order.
func (s *Service) Rank(players []model.PlayerState) []model.Standing {
	standings := make([]model.Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, model.Standing{
			Username:   p.Username,
			GrandTotal: p.Totals.GrandTotal.Points,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].GrandTotal > standings[j].GrandTotal
	})

	return standings
}

// DetermineWinner returns the winner's username, or empty string if tie
func (s *Service) DetermineWinner(standings []model.Standing) string {
	if len(standings) == 0 {
		return ""
	}

	topScore := standings[0].GrandTotal
	tieCount := 0
	for _, standing := range standings {
		if standing.GrandTotal == topScore {
			tieCount++
		}
	}

	if tieCount > 1 {
		return "" // Tie
	}

	return standings[0].Username
}

// Interface for dependency injection
type ServiceInterface interface {
	Evaluate(category model.Category, dice []model.Dice) model.CategoryScore
	EvaluateAll(dice []model.Dice) []model.CategoryScore
	Rank(players []model.PlayerState) []model.Standing
	DetermineWinner(standings []model.Standing) string
}

var _ ServiceInterface = (*Service)(nil)
