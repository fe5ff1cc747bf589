package bot

import (
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
)

// Strategy decides how a bot plays its turn. The Player passed in is a
// read-only view of the bot's current turn.
type Strategy interface {
	// ChooseHolds returns which dice to hold before rolling again, or
	// reroll=false to stop rolling
	ChooseHolds(p *turn.Player) (held []bool, reroll bool)
	// ChooseCategory selects one of p.AvailableCategories() to commit
	ChooseCategory(p *turn.Player) model.Category
}
