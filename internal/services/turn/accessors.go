package turn

import "github.com/mcoot/yahtzee-go/internal/model"

// Username returns the player's name
func (p *Player) Username() string {
	return p.state.Username
}

// Phase returns where the player is within the current turn
func (p *Player) Phase() model.TurnPhase {
	return p.state.Phase()
}

// Dice returns a copy of the dice on the table, in roll order
func (p *Player) Dice() []model.ThrownDice {
	return append([]model.ThrownDice(nil), p.state.Dice...)
}

// HeldDice returns the dice excluded from re-rolls
func (p *Player) HeldDice() []model.Dice {
	var held []model.Dice
	for _, d := range p.state.Dice {
		if d.Held {
			held = append(held, d.Value)
		}
	}
	return held
}

// FreeDice returns the dice that the next roll will replace
func (p *Player) FreeDice() []model.Dice {
	var free []model.Dice
	for _, d := range p.state.Dice {
		if !d.Held {
			free = append(free, d.Value)
		}
	}
	return free
}

// RollsLeft returns how many rolls remain this turn
func (p *Player) RollsLeft() int {
	left := p.rollLimit - p.state.RollsUsed
	if left < 0 {
		return 0
	}
	return left
}

// Tentative returns the previewed score, or nil if no category is selected
func (p *Player) Tentative() *model.CategoryScore {
	if p.state.Tentative == nil {
		return nil
	}
	score := *p.state.Tentative
	score.Dice = append([]model.Dice(nil), score.Dice...)
	return &score
}

// Scores returns a copy of the committed category scores, dice included
func (p *Player) Scores() []model.CategoryScore {
	scores := make([]model.CategoryScore, len(p.state.Scores))
	for i, s := range p.state.Scores {
		s.Dice = append([]model.Dice(nil), s.Dice...)
		scores[i] = s
	}
	return scores
}

// Totals returns the five aggregates
func (p *Player) Totals() model.Totals {
	return p.state.Totals
}

// TotalsList returns the five aggregates in scorecard order
func (p *Player) TotalsList() []model.CategoryScore {
	return p.state.Totals.List()
}

// Turn returns the number of completed turns
func (p *Player) Turn() int {
	return p.state.Turn
}

// YahtzeeBonus returns how many bonus Yahtzees have been committed
func (p *Player) YahtzeeBonus() int {
	return p.state.YahtzeeBonus
}

// Finished returns true once every regular category is filled
func (p *Player) Finished() bool {
	return p.state.Finished()
}

// Snapshot returns a deep copy of the player state
func (p *Player) Snapshot() model.PlayerState {
	return p.state.Clone()
}
