package scoring

import "github.com/mcoot/yahtzee-go/internal/model"

// Upper section bonus rules
const (
	UpperBonusThreshold = 63
	UpperBonus          = 35
)

// NewTotals returns the five aggregates for a fresh scorecard, all at zero
func NewTotals() model.Totals {
	return model.Totals{
		UpperScore: model.CategoryScore{Category: model.UpperSectionScore, Legal: true},
		UpperBonus: model.CategoryScore{Category: model.UpperSectionBonus, Legal: true},
		UpperTotal: model.CategoryScore{Category: model.UpperSectionTotal, Legal: true},
		LowerTotal: model.CategoryScore{Category: model.LowerSectionTotal, Legal: true},
		GrandTotal: model.CategoryScore{Category: model.GrandTotal, Legal: true},
	}
}

// UpdateTotals returns target with the score's points added. A bonus Yahtzee
// always adds exactly one bonus regardless of the points recorded on its entry.
func UpdateTotals(score, target model.CategoryScore) model.CategoryScore {
	if score.Category == model.BonusYahtzee {
		target.Points += BonusYahtzeePoints
	} else {
		target.Points += score.Points
	}
	return target
}

// AddBonus applies the upper section bonus once the upper score reaches the
// threshold. Applying it again is a no-op.
func AddBonus(totals model.Totals) model.Totals {
	if totals.UpperScore.Points < UpperBonusThreshold || totals.UpperBonus.Points != 0 {
		return totals
	}
	totals.UpperBonus.Points = UpperBonus
	totals.UpperTotal.Points += UpperBonus
	totals.GrandTotal.Points += UpperBonus
	return totals
}

// Reset returns the score as an empty scoreboard cell
func Reset(score model.CategoryScore) model.CategoryScore {
	score.Points = model.Unscored
	return score
}

// ApplyScore folds a newly committed score into the aggregates
func ApplyScore(totals model.Totals, score model.CategoryScore) model.Totals {
	switch score.Category.Section() {
	case model.SectionUpper:
		totals.UpperScore = UpdateTotals(score, totals.UpperScore)
		totals.UpperTotal = UpdateTotals(score, totals.UpperTotal)
		totals.GrandTotal = UpdateTotals(score, totals.GrandTotal)
		totals = AddBonus(totals)
	case model.SectionLower:
		totals.LowerTotal = UpdateTotals(score, totals.LowerTotal)
		totals.GrandTotal = UpdateTotals(score, totals.GrandTotal)
	case model.SectionSpecial:
		// Aggregates are never committed
	}
	return totals
}

// TotalScore sums the committed category points. Aggregates are derived from
// the same scores and are not part of the sum.
func TotalScore(scores []model.CategoryScore) int {
	total := 0
	for _, s := range scores {
		if s.Category.Section() == model.SectionSpecial || !s.IsScored() {
			continue
		}
		total += s.Points
	}
	return total
}
