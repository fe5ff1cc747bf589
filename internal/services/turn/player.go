// Package turn implements a single player's turn and scorecard state machine.
//
// A turn moves through NotRolled → Rolled → (re-rolls of the free dice up to
// the roll limit) → CategorySelected → committed by EndTurn. The Player is not
// safe for concurrent use; the surrounding game owns sequencing.
package turn

import (
	"github.com/mcoot/yahtzee-go/internal/dependencies/random"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
)

// Notifier receives state changes from a Player
type Notifier interface {
	// Changed is called whenever the dice or the tentative score change
	Changed(p *Player)
	// TurnEnded is called after a score is committed, so the game can advance
	TurnEnded(p *Player)
}

// NopNotifier ignores all notifications
type NopNotifier struct{}

func (NopNotifier) Changed(*Player)   {}
func (NopNotifier) TurnEnded(*Player) {}

// Option configures a Player
type Option func(*Player)

// WithRollLimit sets the number of rolls allowed per turn
func WithRollLimit(limit int) Option {
	return func(p *Player) {
		p.rollLimit = limit
	}
}

// Player drives one player's dice, tentative score and committed scorecard
type Player struct {
	state     *model.PlayerState
	random    random.Random
	notifier  Notifier
	rollLimit int
}

// New creates a player with an empty scorecard
func New(username string, rnd random.Random, notifier Notifier, opts ...Option) (*Player, error) {
	state, err := NewState(username)
	if err != nil {
		return nil, err
	}
	return Load(state, rnd, notifier, opts...), nil
}

// NewState returns a fresh scorecard for the username
func NewState(username string) (*model.PlayerState, error) {
	if username == "" {
		return nil, model.ErrEmptyUsername
	}
	return &model.PlayerState{
		Username: username,
		Totals:   scoring.NewTotals(),
	}, nil
}

// Load wraps existing player state. Changes made through the Player are
// written to state.
func Load(state *model.PlayerState, rnd random.Random, notifier Notifier, opts ...Option) *Player {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	p := &Player{
		state:     state,
		random:    rnd,
		notifier:  notifier,
		rollLimit: model.DefaultRollLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Roll throws all five dice on the first roll of a turn, and only the dice
// not held on later rolls. A tentative category is re-scored against the new dice.
func (p *Player) Roll() error {
	if p.state.Finished() {
		return model.ErrPlayerFinished
	}
	if p.state.RollsUsed >= p.rollLimit {
		return model.ErrNoRollsLeft
	}

	if len(p.state.Dice) == 0 {
		p.state.Dice = make([]model.ThrownDice, model.DiceCount)
		for i := range p.state.Dice {
			p.state.Dice[i] = model.ThrownDice{Value: p.randomDice()}
		}
	} else {
		for i, d := range p.state.Dice {
			if !d.Held {
				p.state.Dice[i] = model.ThrownDice{Value: p.randomDice()}
			}
		}
	}
	p.state.RollsUsed++

	if p.state.Tentative != nil {
		score := p.evaluate(p.state.Tentative.Category)
		p.state.Tentative = &score
	}

	p.notifier.Changed(p)
	return nil
}

// Hold keeps the die at index out of future rolls this turn
func (p *Player) Hold(index int) error {
	return p.setHeld(index, true)
}

// Unhold returns the die at index to the free dice
func (p *Player) Unhold(index int) error {
	return p.setHeld(index, false)
}

func (p *Player) setHeld(index int, held bool) error {
	if len(p.state.Dice) == 0 {
		return model.ErrNotRolled
	}
	if index < 0 || index >= len(p.state.Dice) {
		return model.ErrInvalidDieIndex
	}
	if p.state.Dice[index].Held == held {
		return nil
	}
	p.state.Dice[index].Held = held
	p.notifier.Changed(p)
	return nil
}

// SelectCategory scores the current dice in the category and keeps the result
// as the tentative score for this turn
func (p *Player) SelectCategory(category model.Category) error {
	if len(p.state.Dice) == 0 {
		return model.ErrNotRolled
	}

	switch category.Section() {
	case model.SectionSpecial:
		return model.ErrSpecialCategory
	case model.SectionUpper, model.SectionLower:
		if category == model.BonusYahtzee {
			if !p.state.HasScored(model.Yahtzee) {
				return model.ErrBonusUnavailable
			}
		} else if p.state.HasScored(category) {
			return model.ErrCategoryUsed
		}
	default:
		return model.ErrUnknownCategory
	}

	score := p.evaluate(category)
	p.state.Tentative = &score
	p.notifier.Changed(p)
	return nil
}

// EndTurn commits the tentative score, updates the aggregates and clears the
// dice for the next turn
func (p *Player) EndTurn() error {
	tentative := p.state.Tentative
	if tentative == nil {
		return model.ErrNoCategorySelected
	}

	committed := *tentative
	if committed.Category == model.BonusYahtzee {
		if !committed.Legal {
			return model.ErrBonusUnavailable
		}
		p.commitBonusYahtzee(committed)
	} else {
		p.state.Scores = append(p.state.Scores, committed)
	}

	p.state.Totals = scoring.ApplyScore(p.state.Totals, committed)
	p.state.Dice = nil
	p.state.RollsUsed = 0
	p.state.Tentative = nil
	p.state.Turn++

	p.notifier.Changed(p)
	p.notifier.TurnEnded(p)
	return nil
}

// commitBonusYahtzee keeps a single running entry for all bonus Yahtzees
func (p *Player) commitBonusYahtzee(score model.CategoryScore) {
	if p.state.YahtzeeBonus >= 1 {
		for i := range p.state.Scores {
			if p.state.Scores[i].Category == model.BonusYahtzee {
				p.state.Scores[i].Points = scoring.BonusYahtzeePoints * (p.state.YahtzeeBonus + 1)
				p.state.Scores[i].Dice = score.Dice
			}
		}
	} else {
		p.state.Scores = append(p.state.Scores, score)
	}
	p.state.YahtzeeBonus++
}

// TotalScore sums the committed category points
func (p *Player) TotalScore() int {
	return scoring.TotalScore(p.state.Scores)
}

// AvailableCategories returns the categories that may be selected now, in
// scorecard order. Bonus Yahtzee is only offered for a legal roll.
func (p *Player) AvailableCategories() []model.Category {
	var available []model.Category
	for _, c := range model.UpperCategories() {
		if !p.state.HasScored(c) {
			available = append(available, c)
		}
	}
	for _, c := range model.LowerCategories() {
		switch {
		case c == model.BonusYahtzee:
			if p.state.HasScored(model.Yahtzee) && len(p.state.Dice) > 0 &&
				scoring.IsLegitCategory(c, model.Values(p.state.Dice)) {
				available = append(available, c)
			}
		case !p.state.HasScored(c):
			available = append(available, c)
		}
	}
	return available
}

func (p *Player) evaluate(category model.Category) model.CategoryScore {
	dice := model.Values(p.state.Dice)
	if category == model.BonusYahtzee {
		return scoring.EvaluateBonusYahtzee(dice, p.state.YahtzeeBonus+1)
	}
	return scoring.Evaluate(category, dice)
}

func (p *Player) randomDice() model.Dice {
	return model.Dice(p.random.Intn(int(model.MaxFace)) + 1)
}
