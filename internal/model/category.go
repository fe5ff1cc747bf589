package model

import "fmt"

// Section groups categories by how they are scored
type Section string

const (
	SectionUpper   Section = "upper"   // Scored by a single face value
	SectionLower   Section = "lower"   // Scored by a dice pattern
	SectionSpecial Section = "special" // Running aggregates derived from other scores
)

// Category is a box on the scorecard
type Category string

const (
	// Upper section
	Aces   Category = "aces"
	Twos   Category = "twos"
	Threes Category = "threes"
	Fours  Category = "fours"
	Fives  Category = "fives"
	Sixes  Category = "sixes"

	// Lower section
	ThreeOfAKind  Category = "three_of_a_kind"
	FourOfAKind   Category = "four_of_a_kind"
	FullHouse     Category = "full_house"
	SmallStraight Category = "small_straight"
	LargeStraight Category = "large_straight"
	Yahtzee       Category = "yahtzee"
	Chance        Category = "chance"
	BonusYahtzee  Category = "bonus_yahtzee"

	// Special aggregates
	UpperSectionScore Category = "upper_section_score"
	UpperSectionBonus Category = "upper_section_bonus"
	UpperSectionTotal Category = "upper_section_total"
	LowerSectionTotal Category = "lower_section_total"
	GrandTotal        Category = "grand_total"
)

var upperCategories = []Category{Aces, Twos, Threes, Fours, Fives, Sixes}

var lowerCategories = []Category{
	ThreeOfAKind, FourOfAKind, FullHouse, SmallStraight, LargeStraight, Yahtzee, Chance, BonusYahtzee,
}

var specialCategories = []Category{
	UpperSectionScore, UpperSectionBonus, UpperSectionTotal, LowerSectionTotal, GrandTotal,
}

// UpperCategories returns the six face categories in scorecard order
func UpperCategories() []Category {
	return append([]Category(nil), upperCategories...)
}

// LowerCategories returns the pattern categories in scorecard order
func LowerCategories() []Category {
	return append([]Category(nil), lowerCategories...)
}

// SpecialCategories returns the five aggregate categories in scorecard order
func SpecialCategories() []Category {
	return append([]Category(nil), specialCategories...)
}

// Categories returns every category in scorecard order
func Categories() []Category {
	all := make([]Category, 0, len(upperCategories)+len(lowerCategories)+len(specialCategories))
	all = append(all, upperCategories...)
	all = append(all, lowerCategories...)
	all = append(all, specialCategories...)
	return all
}

// RegularCategories returns the 13 boxes a player must fill to finish a game.
// Bonus Yahtzee is optional and the aggregates are never chosen.
func RegularCategories() []Category {
	regular := make([]Category, 0, 13)
	regular = append(regular, upperCategories...)
	for _, c := range lowerCategories {
		if c != BonusYahtzee {
			regular = append(regular, c)
		}
	}
	return regular
}

// ParseCategory converts a category name into a Category
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
	}
	return c, nil
}

// IsValid returns true for any known category
func (c Category) IsValid() bool {
	switch c {
	case Aces, Twos, Threes, Fours, Fives, Sixes,
		ThreeOfAKind, FourOfAKind, FullHouse, SmallStraight, LargeStraight, Yahtzee, Chance, BonusYahtzee,
		UpperSectionScore, UpperSectionBonus, UpperSectionTotal, LowerSectionTotal, GrandTotal:
		return true
	default:
		return false
	}
}

// Section returns which part of the scorecard the category belongs to
func (c Category) Section() Section {
	switch c {
	case Aces, Twos, Threes, Fours, Fives, Sixes:
		return SectionUpper
	case ThreeOfAKind, FourOfAKind, FullHouse, SmallStraight, LargeStraight, Yahtzee, Chance, BonusYahtzee:
		return SectionLower
	case UpperSectionScore, UpperSectionBonus, UpperSectionTotal, LowerSectionTotal, GrandTotal:
		return SectionSpecial
	default:
		return ""
	}
}

// Face returns the die face scored by an upper category, or 0 for any other category
func (c Category) Face() Dice {
	switch c {
	case Aces:
		return 1
	case Twos:
		return 2
	case Threes:
		return 3
	case Fours:
		return 4
	case Fives:
		return 5
	case Sixes:
		return 6
	default:
		return 0
	}
}

// DisplayName returns a human-readable label for the category
func (c Category) DisplayName() string {
	switch c {
	case Aces:
		return "Aces"
	case Twos:
		return "Twos"
	case Threes:
		return "Threes"
	case Fours:
		return "Fours"
	case Fives:
		return "Fives"
	case Sixes:
		return "Sixes"
	case ThreeOfAKind:
		return "Three of a Kind"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case SmallStraight:
		return "Small Straight"
	case LargeStraight:
		return "Large Straight"
	case Yahtzee:
		return "Yahtzee"
	case Chance:
		return "Chance"
	case BonusYahtzee:
		return "Bonus Yahtzee"
	case UpperSectionScore:
		return "Upper Score"
	case UpperSectionBonus:
		return "Upper Bonus"
	case UpperSectionTotal:
		return "Upper Total"
	case LowerSectionTotal:
		return "Lower Total"
	case GrandTotal:
		return "Grand Total"
	default:
		return string(c)
	}
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}
