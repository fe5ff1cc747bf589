package model

import "time"

// MaxPlayers is the most players a single table can seat
const MaxPlayers = 6

// DefaultRollLimit is the number of rolls allowed per turn
const DefaultRollLimit = 3

// TableID uniquely identifies a table
type TableID string

// TableState represents the current phase of a table
type TableState string

const (
	TableStateWaiting   TableState = "waiting"   // Seating players
	TableStatePlaying   TableState = "playing"   // Turns in progress
	TableStateComplete  TableState = "complete"  // Every scorecard is full
	TableStateAbandoned TableState = "abandoned" // Game was cancelled
)

// Table is a single hot-seat Yahtzee game
type Table struct {
	ID        TableID
	State     TableState
	RollLimit int

	// Seated players in turn order
	Players    []PlayerState
	CurrentIdx int // Index into Players for whose turn it is

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true while the table is waiting or playing
func (t *Table) IsOpen() bool {
	return t.State == TableStateWaiting || t.State == TableStatePlaying
}

// CurrentPlayer returns the player whose turn it is, or nil if none
func (t *Table) CurrentPlayer() *PlayerState {
	if t.State != TableStatePlaying || len(t.Players) == 0 {
		return nil
	}
	return &t.Players[t.CurrentIdx]
}

// GetPlayer returns the seated player with the given username, or nil if not found
func (t *Table) GetPlayer(username string) *PlayerState {
	for i := range t.Players {
		if t.Players[i].Username == username {
			return &t.Players[i]
		}
	}
	return nil
}

// Standing is a player's position in the final results
type Standing struct {
	Username   string
	GrandTotal int
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          TableID
	Standings   []Standing
	Winner      string // Empty if tie
	CompletedAt time.Time
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	clone := *t
	clone.Players = make([]PlayerState, len(t.Players))
	for i, p := range t.Players {
		clone.Players[i] = p.Clone()
	}
	return &clone
}
