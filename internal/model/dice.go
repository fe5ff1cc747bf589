package model

import "fmt"

// DiceCount is the number of dice rolled in a turn
const DiceCount = 5

// Dice is a single die face value between 1 and 6
type Dice int

const (
	MinFace Dice = 1
	MaxFace Dice = 6
)

// NewDice validates a face value
func NewDice(value int) (Dice, error) {
	d := Dice(value)
	if !d.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDice, value)
	}
	return d, nil
}

// ParseDice converts a list of face values into dice
func ParseDice(values ...int) ([]Dice, error) {
	dice := make([]Dice, 0, len(values))
	for _, v := range values {
		d, err := NewDice(v)
		if err != nil {
			return nil, err
		}
		dice = append(dice, d)
	}
	return dice, nil
}

// IsValid returns true if the face is within 1..6
func (d Dice) IsValid() bool {
	return d >= MinFace && d <= MaxFace
}

// Int returns the face value
func (d Dice) Int() int {
	return int(d)
}

// ThrownDice is a rolled die plus whether the player is holding it
type ThrownDice struct {
	Value Dice
	Held  bool
}

// Values returns the face values of the given thrown dice, in order
func Values(thrown []ThrownDice) []Dice {
	values := make([]Dice, len(thrown))
	for i, t := range thrown {
		values[i] = t.Value
	}
	return values
}
