package scoring

import (
	"sort"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// Fixed point values for the pattern categories
const (
	FullHousePoints     = 25
	SmallStraightPoints = 30
	LargeStraightPoints = 40
	YahtzeePoints       = 50
	BonusYahtzeePoints  = 100
)

// Evaluate scores the dice in a single category. Evaluation never fails:
// dice that do not match a lower category's pattern score 0 and are flagged
// as not legal.
func Evaluate(category model.Category, dice []model.Dice) model.CategoryScore {
	if category.Section() == model.SectionSpecial {
		return model.CategoryScore{Category: category, Legal: true}
	}
	return model.CategoryScore{
		Category: category,
		Dice:     append([]model.Dice(nil), dice...),
		Points:   Points(category, dice),
		Legal:    IsLegitCategory(category, dice),
	}
}

// EvaluateBonusYahtzee scores a bonus Yahtzee that is the given occurrence
// (1 for the first) of the game.
func EvaluateBonusYahtzee(dice []model.Dice, occurrences int) model.CategoryScore {
	score := Evaluate(model.BonusYahtzee, dice)
	if score.Legal {
		score.Points = BonusYahtzeePoints * occurrences
	}
	return score
}

// IsLegitCategory returns true if the dice may be scored in the category.
// Upper and special categories are always legal.
func IsLegitCategory(category model.Category, dice []model.Dice) bool {
	switch category.Section() {
	case model.SectionUpper, model.SectionSpecial:
		return true
	case model.SectionLower:
		switch category {
		case model.ThreeOfAKind:
			return hasFrequency(dice, 3)
		case model.FourOfAKind:
			return hasFrequency(dice, 4)
		case model.FullHouse:
			return isFullHouse(dice)
		case model.SmallStraight:
			return StraightLength(dice) >= 4
		case model.LargeStraight:
			return StraightLength(dice) == 5
		case model.Yahtzee, model.BonusYahtzee:
			return hasFrequency(dice, 5)
		case model.Chance:
			return true
		}
	}
	return false
}

// Points returns the points the dice are worth in the category, 0 if illegal.
// Bonus Yahtzee is worth a single occurrence here; see EvaluateBonusYahtzee.
func Points(category model.Category, dice []model.Dice) int {
	if !IsLegitCategory(category, dice) {
		return 0
	}

	switch category.Section() {
	case model.SectionUpper:
		face := category.Face()
		return Frequency(dice, face) * face.Int()
	case model.SectionLower:
		switch category {
		case model.ThreeOfAKind, model.FourOfAKind, model.Chance:
			return Sum(dice)
		case model.FullHouse:
			return FullHousePoints
		case model.SmallStraight:
			return SmallStraightPoints
		case model.LargeStraight:
			return LargeStraightPoints
		case model.Yahtzee:
			return YahtzeePoints
		case model.BonusYahtzee:
			return BonusYahtzeePoints
		}
	}
	return 0
}

// Frequency counts the dice showing the given face
func Frequency(dice []model.Dice, face model.Dice) int {
	count := 0
	for _, d := range dice {
		if d == face {
			count++
		}
	}
	return count
}

// Sum adds up all face values
func Sum(dice []model.Dice) int {
	sum := 0
	for _, d := range dice {
		sum += d.Int()
	}
	return sum
}

// StraightLength returns the longest run of consecutive distinct face values.
// Duplicates do not break a run.
func StraightLength(dice []model.Dice) int {
	if len(dice) == 0 {
		return 0
	}

	seen := make(map[model.Dice]bool, len(dice))
	values := make([]int, 0, len(dice))
	for _, d := range dice {
		if !seen[d] {
			seen[d] = true
			values = append(values, d.Int())
		}
	}
	sort.Ints(values)

	longest, run := 1, 1
	for i := 0; i < len(values)-1; i++ {
		if values[i+1] == values[i]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// hasFrequency returns true if some face appears at least n times
func hasFrequency(dice []model.Dice, n int) bool {
	for _, d := range dice {
		if Frequency(dice, d) >= n {
			return true
		}
	}
	return false
}

// isFullHouse requires one face exactly three times and another exactly twice,
// so five of a kind does not count
func isFullHouse(dice []model.Dice) bool {
	var three, two model.Dice
	for _, d := range dice {
		switch Frequency(dice, d) {
		case 3:
			three = d
		case 2:
			two = d
		}
	}
	return three != 0 && two != 0
}
