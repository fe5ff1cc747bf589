package model

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps one of these so callers can
// match either the kind or the exact failure with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrPreconditionViolation = errors.New("precondition violation")
)

// Common errors used across the application
var (
	// Input errors
	ErrEmptyUsername    = fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
	ErrInvalidDice      = fmt.Errorf("%w: dice value must be between 1 and 6", ErrInvalidInput)
	ErrUnknownCategory  = fmt.Errorf("%w: unknown category", ErrInvalidInput)
	ErrInvalidRollLimit = fmt.Errorf("%w: roll limit must be at least 1", ErrInvalidInput)
	ErrUnknownStrategy  = fmt.Errorf("%w: unknown bot strategy", ErrInvalidInput)

	// Turn errors
	ErrNotRolled          = fmt.Errorf("%w: dice have not been rolled this turn", ErrPreconditionViolation)
	ErrNoRollsLeft        = fmt.Errorf("%w: no rolls left this turn", ErrPreconditionViolation)
	ErrInvalidDieIndex    = fmt.Errorf("%w: die index out of range", ErrPreconditionViolation)
	ErrCategoryUsed       = fmt.Errorf("%w: category has already been scored", ErrPreconditionViolation)
	ErrSpecialCategory    = fmt.Errorf("%w: aggregate categories cannot be selected", ErrPreconditionViolation)
	ErrBonusUnavailable   = fmt.Errorf("%w: bonus yahtzee requires a scored yahtzee and five equal dice", ErrPreconditionViolation)
	ErrNoCategorySelected = fmt.Errorf("%w: no category selected", ErrPreconditionViolation)
	ErrPlayerFinished     = fmt.Errorf("%w: player has filled every category", ErrPreconditionViolation)

	// Table errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrTableNotFound       = errors.New("table not found")
	ErrTableInProgress     = errors.New("a table is already open")
	ErrTableFull           = errors.New("table is full")
	ErrUsernameTaken       = errors.New("username is already seated")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrGameInProgress      = errors.New("game is in progress")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrGameComplete        = errors.New("game is already complete")
	ErrGameAbandoned       = errors.New("game has been abandoned")
	ErrGameNotComplete     = errors.New("game is not complete")
)
