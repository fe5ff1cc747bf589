package game

import (
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// tableNotifier turns a player's notifications into table events. Events are
// held in pending until the controller has saved the table.
type tableNotifier struct {
	controller *Controller
	table      *model.Table
	changeType model.EventType
	committed  *model.CategoryScore
	pending    []model.Event
}

var _ turn.Notifier = (*tableNotifier)(nil)

func (n *tableNotifier) Changed(p *turn.Player) {
	var payload any
	switch n.changeType {
	case model.EventDiceChanged:
		payload = model.DiceChangedPayload{
			Dice:      p.Dice(),
			RollsLeft: p.RollsLeft(),
			Tentative: p.Tentative(),
		}
	case model.EventCategorySelected:
		payload = model.CategorySelectedPayload{Score: *p.Tentative()}
	default:
		return
	}
	n.pending = append(n.pending, n.controller.event(n.table, n.changeType, p.Username(), payload))
}

func (n *tableNotifier) TurnEnded(p *turn.Player) {
	more := n.controller.advanceTurn(n.table)

	payload := model.TurnEndedPayload{Totals: p.Totals()}
	if n.committed != nil {
		payload.Committed = *n.committed
	}
	if current := n.table.CurrentPlayer(); current != nil {
		payload.NextPlayer = current.Username
	}

	n.pending = append(n.pending, n.controller.event(n.table, model.EventTurnEnded, p.Username(), payload))
	n.pending = append(n.pending, more...)
}
