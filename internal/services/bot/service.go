package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/game"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// MaxBotIterations is a safety limit on bot turns per ProcessBotActions call
const MaxBotIterations = 1000

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionRoll         BotActionType = "roll"
	ActionScore        BotActionType = "score"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during ProcessBotActions
type BotAction struct {
	Type     BotActionType
	Username string
	Dice     []model.Dice   // After a roll
	Category model.Category // Committed by a score action
	Points   int
}

// Service seats bot players and plays their turns through the game controller
type Service struct {
	gameController game.ControllerInterface
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registered strategy names in sorted order
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddBotToTable seats a bot named "Bot N" at a waiting table
func (s *Service) AddBotToTable(ctx context.Context, id model.TableID, strategy string) (*model.Table, error) {
	if _, ok := s.strategies[strategy]; !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, strategy)
	}

	table, err := s.gameController.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	// Count existing bots for naming
	botCount := 0
	for _, p := range table.Players {
		if p.IsBot() {
			botCount++
		}
	}
	name := fmt.Sprintf("Bot %d", botCount+1)
	for n := botCount + 2; table.GetPlayer(name) != nil; n++ {
		name = fmt.Sprintf("Bot %d", n)
	}

	table, err = s.gameController.AddBot(ctx, id, name, strategy)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bot added to table",
		slog.String("table_id", string(id)),
		slog.String("bot_name", name),
		slog.String("strategy", strategy),
	)

	return table, nil
}

// ProcessBotActions plays turns for as long as the current player is a bot.
// It returns every action taken so callers can report them.
func (s *Service) ProcessBotActions(ctx context.Context, id model.TableID) ([]BotAction, error) {
	var actions []BotAction

	for range MaxBotIterations {
		table, err := s.gameController.GetTable(ctx, id)
		if err != nil {
			return actions, err
		}

		if table.State == model.TableStateComplete {
			if len(actions) > 0 {
				actions = append(actions, BotAction{Type: ActionGameComplete})
			}
			break
		}

		current := table.CurrentPlayer()
		if current == nil || !current.IsBot() {
			break // Human's turn, or nothing to play
		}

		turnActions, err := s.playTurn(ctx, table, current.Username, s.strategyForPlayer(current))
		actions = append(actions, turnActions...)
		if err != nil {
			return actions, err
		}
	}

	return actions, nil
}

// playTurn rolls until the strategy stops or the rolls run out, then commits
// the chosen category
func (s *Service) playTurn(ctx context.Context, table *model.Table, username string, strategy Strategy) ([]BotAction, error) {
	var actions []BotAction

	roll := func() error {
		var err error
		if table, err = s.gameController.Roll(ctx, table.ID, username); err != nil {
			return err
		}
		actions = append(actions, BotAction{
			Type:     ActionRoll,
			Username: username,
			Dice:     model.Values(table.GetPlayer(username).Dice),
		})
		return nil
	}

	if err := roll(); err != nil {
		return actions, err
	}

	for {
		view := viewOf(table, username)
		if view.RollsLeft() == 0 {
			break
		}
		held, reroll := strategy.ChooseHolds(view)
		if !reroll {
			break
		}
		if err := s.applyHolds(ctx, table.ID, username, view.Dice(), held); err != nil {
			return actions, err
		}
		if err := roll(); err != nil {
			return actions, err
		}
	}

	category := strategy.ChooseCategory(viewOf(table, username))
	table, err := s.gameController.SelectCategory(ctx, table.ID, username, category)
	if err != nil {
		return actions, err
	}
	points := table.GetPlayer(username).Tentative.Points

	if _, err := s.gameController.EndTurn(ctx, table.ID, username); err != nil {
		return actions, err
	}
	actions = append(actions, BotAction{
		Type:     ActionScore,
		Username: username,
		Category: category,
		Points:   points,
	})

	s.logger.Debug("bot turn played",
		slog.String("table_id", string(table.ID)),
		slog.String("username", username),
		slog.String("category", string(category)),
		slog.Int("points", points),
	)

	return actions, nil
}

// applyHolds holds or releases each die to match held
func (s *Service) applyHolds(ctx context.Context, id model.TableID, username string, dice []model.ThrownDice, held []bool) error {
	for i := range dice {
		if i >= len(held) || dice[i].Held == held[i] {
			continue
		}
		var err error
		if held[i] {
			_, err = s.gameController.Hold(ctx, id, username, i)
		} else {
			_, err = s.gameController.Unhold(ctx, id, username, i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// strategyForPlayer returns the strategy for a bot player, falling back to
// the first registered strategy if the player's strategy is not found
func (s *Service) strategyForPlayer(player *model.PlayerState) Strategy {
	if st, ok := s.strategies[player.Bot]; ok {
		return st
	}
	// Fallback: use first available strategy by name
	for _, name := range s.Strategies() {
		return s.strategies[name]
	}
	return nil
}

// viewOf returns a read-only turn view of the player's state
func viewOf(table *model.Table, username string) *turn.Player {
	return turn.Load(table.GetPlayer(username), nil, nil, turn.WithRollLimit(table.RollLimit))
}
