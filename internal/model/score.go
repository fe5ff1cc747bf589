package model

// Unscored marks an empty scoreboard cell, distinct from a legitimate zero
const Unscored = -1

// CategoryScore is the result of scoring a set of dice in one category
type CategoryScore struct {
	Category Category
	Dice     []Dice // Snapshot of the scored dice, nil for special categories
	Points   int
	Legal    bool
}

// IsScored returns true unless the cell holds the Unscored sentinel
func (s CategoryScore) IsScored() bool {
	return s.Points != Unscored
}

// Totals holds the five running aggregates for a player
type Totals struct {
	UpperScore CategoryScore
	UpperBonus CategoryScore
	UpperTotal CategoryScore
	LowerTotal CategoryScore
	GrandTotal CategoryScore
}

// List returns the aggregates in scorecard order
func (t Totals) List() []CategoryScore {
	return []CategoryScore{t.UpperScore, t.UpperBonus, t.UpperTotal, t.LowerTotal, t.GrandTotal}
}

// Get returns the aggregate for a special category
func (t Totals) Get(c Category) (CategoryScore, bool) {
	switch c {
	case UpperSectionScore:
		return t.UpperScore, true
	case UpperSectionBonus:
		return t.UpperBonus, true
	case UpperSectionTotal:
		return t.UpperTotal, true
	case LowerSectionTotal:
		return t.LowerTotal, true
	case GrandTotal:
		return t.GrandTotal, true
	default:
		return CategoryScore{}, false
	}
}
