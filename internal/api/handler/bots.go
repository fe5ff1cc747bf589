package handler

import (
	"context"

	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/bot"
	"github.com/mcoot/yahtzee-go/internal/services/game"
)

// BotRunner seats computer players and plays their turns
type BotRunner interface {
	AddBotToTable(ctx context.Context, id model.TableID, strategy string) (*model.Table, error)
	ProcessBotActions(ctx context.Context, id model.TableID) ([]bot.BotAction, error)
}

var _ BotRunner = (*bot.Service)(nil)

// playBots lets any bots whose turn it is play, then returns the fresh table.
// With no runner the table is returned unchanged.
func playBots(ctx context.Context, bots BotRunner, gameController game.ControllerInterface, table *model.Table) (*model.Table, error) {
	if bots == nil || table.State != model.TableStatePlaying {
		return table, nil
	}
	current := table.CurrentPlayer()
	if current == nil || !current.IsBot() {
		return table, nil
	}
	if _, err := bots.ProcessBotActions(ctx, table.ID); err != nil {
		return nil, err
	}
	return gameController.GetTable(ctx, table.ID)
}
