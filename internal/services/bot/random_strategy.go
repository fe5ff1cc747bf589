package bot

import (
	"github.com/mcoot/yahtzee-go/internal/dependencies/random"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// RandomStrategy holds random dice and picks a random open category
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseHolds rolls again half the time, holding each die with even odds
func (s *RandomStrategy) ChooseHolds(p *turn.Player) ([]bool, bool) {
	if s.random.Intn(2) == 0 {
		return nil, false
	}
	held := make([]bool, len(p.Dice()))
	for i := range held {
		held[i] = s.random.Intn(2) == 1
	}
	return held, true
}

// ChooseCategory picks any available category
func (s *RandomStrategy) ChooseCategory(p *turn.Player) model.Category {
	available := p.AvailableCategories()
	return available[s.random.Intn(len(available))]
}
