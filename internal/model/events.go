package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Table events
	EventPlayerJoined  EventType = "player_joined"
	EventPlayerLeft    EventType = "player_left"
	EventGameStarted   EventType = "game_started"
	EventGameAbandoned EventType = "game_abandoned"

	// Turn events
	EventDiceChanged      EventType = "dice_changed"
	EventCategorySelected EventType = "category_selected"
	EventTurnEnded        EventType = "turn_ended"
	EventGameComplete     EventType = "game_complete"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	TableID   TableID
	Username  string // The player who triggered or is affected
	Payload   any    // Type-specific data
}

// DiceChangedPayload contains data for dice changed events
type DiceChangedPayload struct {
	Dice      []ThrownDice
	RollsLeft int
	Tentative *CategoryScore
}

// CategorySelectedPayload contains data for category selected events
type CategorySelectedPayload struct {
	Score CategoryScore
}

// TurnEndedPayload contains data for turn ended events
type TurnEndedPayload struct {
	Committed  CategoryScore
	Totals     Totals
	NextPlayer string
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Standings []Standing
	Winner    string // Empty if tie
}
