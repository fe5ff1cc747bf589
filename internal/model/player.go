package model

// TurnPhase is where a player is within their current turn
type TurnPhase string

const (
	PhaseNotRolled        TurnPhase = "not_rolled"        // No dice thrown yet this turn
	PhaseRolled           TurnPhase = "rolled"            // Dice on the table, no category chosen
	PhaseCategorySelected TurnPhase = "category_selected" // A tentative score is previewed
)

// PlayerState is everything a player owns for the duration of a game
type PlayerState struct {
	Username string
	Bot      string // Strategy name for computer players, empty for humans

	// Current turn
	Dice      []ThrownDice   // Empty until the first roll of the turn
	RollsUsed int            // Rolls taken this turn
	Tentative *CategoryScore // Previewed but not committed

	// Committed scorecard
	Scores       []CategoryScore // One entry per category used
	Totals       Totals
	Turn         int // Number of completed turns
	YahtzeeBonus int // Number of bonus Yahtzees committed
}

// Phase derives the current turn phase from the state
func (p *PlayerState) Phase() TurnPhase {
	switch {
	case len(p.Dice) == 0:
		return PhaseNotRolled
	case p.Tentative != nil:
		return PhaseCategorySelected
	default:
		return PhaseRolled
	}
}

// IsBot returns true for computer players
func (p *PlayerState) IsBot() bool {
	return p.Bot != ""
}

// Score returns the committed score for a category, if any
func (p *PlayerState) Score(c Category) (CategoryScore, bool) {
	for _, s := range p.Scores {
		if s.Category == c {
			return s, true
		}
	}
	return CategoryScore{}, false
}

// HasScored returns true if the category has been committed
func (p *PlayerState) HasScored(c Category) bool {
	_, ok := p.Score(c)
	return ok
}

// Finished returns true once every regular category has been committed
func (p *PlayerState) Finished() bool {
	for _, c := range RegularCategories() {
		if !p.HasScored(c) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the player state
func (p PlayerState) Clone() PlayerState {
	clone := p
	clone.Dice = append([]ThrownDice(nil), p.Dice...)
	clone.Scores = make([]CategoryScore, len(p.Scores))
	for i, s := range p.Scores {
		s.Dice = append([]Dice(nil), s.Dice...)
		clone.Scores[i] = s
	}
	if p.Tentative != nil {
		tentative := *p.Tentative
		tentative.Dice = append([]Dice(nil), p.Tentative.Dice...)
		clone.Tentative = &tentative
	}
	return clone
}
