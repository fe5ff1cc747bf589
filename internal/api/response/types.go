package response

import (
	"time"

	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// Die represents one die on the table
type Die struct {
	Value int  `json:"value"`
	Held  bool `json:"held"`
}

// DiceFromModel converts thrown dice
func DiceFromModel(dice []model.ThrownDice) []Die {
	result := make([]Die, len(dice))
	for i, d := range dice {
		result[i] = Die{Value: d.Value.Int(), Held: d.Held}
	}
	return result
}

// CategoryScore represents a scored or previewed category
type CategoryScore struct {
	Category    string `json:"category"`
	DisplayName string `json:"display_name"`
	Section     string `json:"section"`
	Dice        []int  `json:"dice,omitempty"`
	Points      int    `json:"points"`
	Legal       bool   `json:"legal"`
}

// CategoryScoreFromModel converts model.CategoryScore
func CategoryScoreFromModel(s model.CategoryScore) CategoryScore {
	var dice []int
	if len(s.Dice) > 0 {
		dice = make([]int, len(s.Dice))
		for i, d := range s.Dice {
			dice[i] = d.Int()
		}
	}
	return CategoryScore{
		Category:    string(s.Category),
		DisplayName: s.Category.DisplayName(),
		Section:     string(s.Category.Section()),
		Dice:        dice,
		Points:      s.Points,
		Legal:       s.Legal,
	}
}

// CategoryScoresFromModel converts a list of scores
func CategoryScoresFromModel(scores []model.CategoryScore) []CategoryScore {
	result := make([]CategoryScore, len(scores))
	for i, s := range scores {
		result[i] = CategoryScoreFromModel(s)
	}
	return result
}

// Totals represents the five scorecard aggregates
type Totals struct {
	UpperScore int  `json:"upper_score"`
	UpperBonus int  `json:"upper_bonus"`
	BonusMet   bool `json:"bonus_met"`
	UpperTotal int  `json:"upper_total"`
	LowerTotal int  `json:"lower_total"`
	GrandTotal int  `json:"grand_total"`
}

// TotalsFromModel converts model.Totals
func TotalsFromModel(t model.Totals) Totals {
	return Totals{
		UpperScore: t.UpperScore.Points,
		UpperBonus: t.UpperBonus.Points,
		BonusMet:   t.UpperBonus.Points > 0,
		UpperTotal: t.UpperTotal.Points,
		LowerTotal: t.LowerTotal.Points,
		GrandTotal: t.GrandTotal.Points,
	}
}

// Player represents a seated player's turn and scorecard
type Player struct {
	Username     string          `json:"username"`
	Bot          string          `json:"bot,omitempty"`
	Phase        string          `json:"phase"`
	Dice         []Die           `json:"dice"`
	RollsLeft    int             `json:"rolls_left"`
	Tentative    *CategoryScore  `json:"tentative"`
	Scores       []CategoryScore `json:"scores"`
	Totals       Totals          `json:"totals"`
	Turn         int             `json:"turn"`
	YahtzeeBonus int             `json:"yahtzee_bonus"`
	Available    []string        `json:"available"`
	Finished     bool            `json:"finished"`
}

// PlayerFromModel converts model.PlayerState. Derived fields are read
// through a turn.Player with the table's roll limit.
func PlayerFromModel(state model.PlayerState, rollLimit int) Player {
	p := turn.Load(&state, nil, nil, turn.WithRollLimit(rollLimit))

	var tentative *CategoryScore
	if t := p.Tentative(); t != nil {
		ts := CategoryScoreFromModel(*t)
		tentative = &ts
	}

	available := make([]string, 0)
	for _, c := range p.AvailableCategories() {
		available = append(available, string(c))
	}

	return Player{
		Username:     p.Username(),
		Bot:          state.Bot,
		Phase:        string(p.Phase()),
		Dice:         DiceFromModel(p.Dice()),
		RollsLeft:    p.RollsLeft(),
		Tentative:    tentative,
		Scores:       CategoryScoresFromModel(p.Scores()),
		Totals:       TotalsFromModel(p.Totals()),
		Turn:         p.Turn(),
		YahtzeeBonus: p.YahtzeeBonus(),
		Available:    available,
		Finished:     p.Finished(),
	}
}

// Table represents the hot-seat table
type Table struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	RollLimit     int       `json:"roll_limit"`
	Players       []Player  `json:"players"`
	CurrentPlayer *string   `json:"current_player"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableFromModel converts model.Table
func TableFromModel(t *model.Table) Table {
	players := make([]Player, len(t.Players))
	for i, p := range t.Players {
		players[i] = PlayerFromModel(p, t.RollLimit)
	}

	var current *string
	if p := t.CurrentPlayer(); p != nil {
		name := p.Username
		current = &name
	}

	return Table{
		ID:            string(t.ID),
		State:         string(t.State),
		RollLimit:     t.RollLimit,
		Players:       players,
		CurrentPlayer: current,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// Standing represents a player's place in the results
type Standing struct {
	Username   string `json:"username"`
	GrandTotal int    `json:"grand_total"`
}

// StandingsFromModel converts model standings
func StandingsFromModel(standings []model.Standing) []Standing {
	result := make([]Standing, len(standings))
	for i, s := range standings {
		result[i] = Standing{Username: s.Username, GrandTotal: s.GrandTotal}
	}
	return result
}

// StandingsResponse is the response for the standings endpoint
type StandingsResponse struct {
	State     string     `json:"state"`
	Standings []Standing `json:"standings"`
	Winner    *string    `json:"winner,omitempty"`
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID          string     `json:"id"`
	Standings   []Standing `json:"standings"`
	Winner      *string    `json:"winner"`
	CompletedAt time.Time  `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	var winner *string
	if g.Winner != "" {
		w := g.Winner
		winner = &w
	}
	return GameSummary{
		ID:          string(g.ID),
		Standings:   StandingsFromModel(g.Standings),
		Winner:      winner,
		CompletedAt: g.CompletedAt,
	}
}

// ScoreResponse is the response for stateless dice evaluation
type ScoreResponse struct {
	Dice   []int           `json:"dice"`
	Scores []CategoryScore `json:"scores"`
}

// Event is a table notification sent to websocket subscribers
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	TableID   string    `json:"table_id"`
	Username  string    `json:"username,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// DiceChanged is the payload of a dice_changed event
type DiceChanged struct {
	Dice      []Die          `json:"dice"`
	RollsLeft int            `json:"rolls_left"`
	Tentative *CategoryScore `json:"tentative"`
}

// CategorySelected is the payload of a category_selected event
type CategorySelected struct {
	Score CategoryScore `json:"score"`
}

// TurnEnded is the payload of a turn_ended event
type TurnEnded struct {
	Committed  CategoryScore `json:"committed"`
	Totals     Totals        `json:"totals"`
	NextPlayer string        `json:"next_player,omitempty"`
}

// GameComplete is the payload of a game_complete event
type GameComplete struct {
	Standings []Standing `json:"standings"`
	Winner    *string    `json:"winner"`
}

// EventFromModel converts model.Event, mapping known payloads to their JSON shape
func EventFromModel(e model.Event) Event {
	return Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		TableID:   string(e.TableID),
		Username:  e.Username,
		Payload:   payloadFromModel(e.Payload),
	}
}

func payloadFromModel(payload any) any {
	switch p := payload.(type) {
	case nil:
		return nil
	case model.DiceChangedPayload:
		var tentative *CategoryScore
		if p.Tentative != nil {
			t := CategoryScoreFromModel(*p.Tentative)
			tentative = &t
		}
		return DiceChanged{Dice: DiceFromModel(p.Dice), RollsLeft: p.RollsLeft, Tentative: tentative}
	case model.CategorySelectedPayload:
		return CategorySelected{Score: CategoryScoreFromModel(p.Score)}
	case model.TurnEndedPayload:
		return TurnEnded{
			Committed:  CategoryScoreFromModel(p.Committed),
			Totals:     TotalsFromModel(p.Totals),
			NextPlayer: p.NextPlayer,
		}
	case model.GameCompletePayload:
		var winner *string
		if p.Winner != "" {
			w := p.Winner
			winner = &w
		}
		return GameComplete{Standings: StandingsFromModel(p.Standings), Winner: winner}
	default:
		return p
	}
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}
