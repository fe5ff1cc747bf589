package bot

import (
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// GreedyStopPoints is the score at which the greedy bot stops rolling
const GreedyStopPoints = 25

// scratchOrder ranks the boxes a greedy bot gives up first when nothing scores
var scratchOrder = []model.Category{
	model.Aces, model.Twos, model.Yahtzee, model.LargeStraight, model.FourOfAKind,
	model.Threes, model.SmallStraight, model.FullHouse, model.ThreeOfAKind,
	model.Fours, model.Fives, model.Sixes, model.Chance,
}

// GreedyStrategy chases the most common face and takes the highest score on
// offer. Bonus Yahtzee is taken at most once so the scorecard still fills.
type GreedyStrategy struct {
	scoring *scoring.Service
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(scoringService *scoring.Service) *GreedyStrategy {
	return &GreedyStrategy{scoring: scoringService}
}

// ChooseHolds keeps every die showing the most common face, preferring
// higher faces on ties. It stops once the best score reaches GreedyStopPoints
// or every die would be held.
func (s *GreedyStrategy) ChooseHolds(p *turn.Player) ([]bool, bool) {
	if _, points := s.best(p); points >= GreedyStopPoints {
		return nil, false
	}

	thrown := p.Dice()
	dice := model.Values(thrown)
	keep, keepCount := model.MinFace, 0
	for face := model.MinFace; face <= model.MaxFace; face++ {
		if n := scoring.Frequency(dice, face); n >= keepCount {
			keep, keepCount = face, n
		}
	}
	if keepCount == len(dice) {
		return nil, false
	}

	held := make([]bool, len(dice))
	for i, d := range dice {
		held[i] = d == keep
	}
	return held, true
}

// ChooseCategory returns the highest scoring open category, scratching by
// scratchOrder when nothing scores
func (s *GreedyStrategy) ChooseCategory(p *turn.Player) model.Category {
	category, points := s.best(p)
	if points > 0 {
		return category
	}

	open := s.candidates(p)
	for _, c := range scratchOrder {
		for _, o := range open {
			if o == c {
				return c
			}
		}
	}
	return category
}

// best returns the first category with the highest score
func (s *GreedyStrategy) best(p *turn.Player) (model.Category, int) {
	dice := model.Values(p.Dice())

	var (
		best   model.Category
		points = -1
	)
	for _, c := range s.candidates(p) {
		var score model.CategoryScore
		if c == model.BonusYahtzee {
			score = scoring.EvaluateBonusYahtzee(dice, p.YahtzeeBonus()+1)
		} else {
			score = s.scoring.Evaluate(c, dice)
		}
		if score.Points > points {
			best, points = c, score.Points
		}
	}
	return best, points
}

func (s *GreedyStrategy) candidates(p *turn.Player) []model.Category {
	var open []model.Category
	for _, c := range p.AvailableCategories() {
		if c == model.BonusYahtzee && p.YahtzeeBonus() > 0 {
			continue
		}
		open = append(open, c)
	}
	return open
}
