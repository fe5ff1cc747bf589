// Package game sequences a single hot-seat Yahtzee table: seating, turn
// order, and completion. Each player's turn is delegated to turn.Player.
package game

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/yahtzee-go/internal/dependencies/clock"
	"github.com/mcoot/yahtzee-go/internal/dependencies/random"
	"github.com/mcoot/yahtzee-go/internal/events"
	"github.com/mcoot/yahtzee-go/internal/metrics"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
	"github.com/mcoot/yahtzee-go/internal/services/turn"
	"github.com/mcoot/yahtzee-go/internal/storage"
)

// Controller manages the table state machine and turn rotation
type Controller struct {
	mu               sync.Mutex
	storage          storage.Storage
	scoringService   *scoring.Service
	publisher        events.Publisher
	metrics          *metrics.Metrics
	clock            clock.Clock
	random           random.Random
	logger           *slog.Logger
	defaultRollLimit int
}

// Option configures a Controller
type Option func(*Controller)

// WithDefaultRollLimit sets the roll limit used when a table is created without one
func WithDefaultRollLimit(limit int) Option {
	return func(c *Controller) {
		c.defaultRollLimit = limit
	}
}

// NewController creates a new Controller. A nil publisher discards events and
// nil metrics record nothing.
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	publisher events.Publisher,
	metrics *metrics.Metrics,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	opts ...Option,
) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	c := &Controller{
		storage:          storage,
		scoringService:   scoringService,
		publisher:        publisher,
		metrics:          metrics,
		clock:            clock,
		random:           random,
		logger:           logger,
		defaultRollLimit: model.DefaultRollLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTable opens a new table and makes it the active one. A finished
// table left over from an earlier game is discarded.
func (c *Controller) CreateTable(ctx context.Context, rollLimit int) (*model.Table, error) {
	if rollLimit == 0 {
		rollLimit = c.defaultRollLimit
	}
	if rollLimit < 1 {
		return nil, model.ErrInvalidRollLimit
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous, err := c.activeTable(ctx)
	switch {
	case errors.Is(err, model.ErrTableNotFound):
	case err != nil:
		return nil, err
	case previous.IsOpen():
		return nil, model.ErrTableInProgress
	default:
		if err := c.storage.DeleteTable(ctx, previous.ID); err != nil {
			return nil, err
		}
	}

	now := c.clock.Now()
	table := &model.Table{
		ID:        model.TableID(c.random.UUID()),
		State:     model.TableStateWaiting,
		RollLimit: rollLimit,
		Players:   []model.PlayerState{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveTable(ctx, table); err != nil {
		c.logger.Error("failed to save table",
			slog.String("table_id", string(table.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if err := c.storage.SetActiveTable(ctx, table.ID); err != nil {
		return nil, err
	}
	c.metrics.SetPlayersSeated(0)

	c.logger.Info("table created",
		slog.String("table_id", string(table.ID)),
		slog.Int("roll_limit", rollLimit),
	)

	return table, nil
}

// GetTable retrieves a table by ID
func (c *Controller) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	return c.storage.GetTable(ctx, id)
}

// ActiveTable returns the table this process is presenting
func (c *Controller) ActiveTable(ctx context.Context) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTable(ctx)
}

func (c *Controller) activeTable(ctx context.Context) (*model.Table, error) {
	id, err := c.storage.GetActiveTable(ctx)
	if err != nil {
		return nil, err
	}
	return c.storage.GetTable(ctx, id)
}

// AddPlayer seats a player at a waiting table
func (c *Controller) AddPlayer(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
	return c.seat(ctx, id, username, "")
}

// AddBot seats a computer player that plays with the named strategy
func (c *Controller) AddBot(ctx context.Context, id model.TableID, username, strategy string) (*model.Table, error) {
	if strategy == "" {
		return nil, model.ErrUnknownStrategy
	}
	return c.seat(ctx, id, username, strategy)
}

func (c *Controller) seat(ctx context.Context, id model.TableID, username, strategy string) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkSeating(table); err != nil {
		return nil, err
	}

	state, err := turn.NewState(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	state.Bot = strategy
	if table.GetPlayer(state.Username) != nil {
		return nil, model.ErrUsernameTaken
	}
	if len(table.Players) >= model.MaxPlayers {
		return nil, model.ErrTableFull
	}

	table.Players = append(table.Players, *state)
	table.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("table_id", string(table.ID)),
		slog.String("username", state.Username),
		slog.Bool("bot", state.IsBot()),
		slog.Int("player_count", len(table.Players)),
	)
	c.metrics.SetPlayersSeated(len(table.Players))
	c.publisher.Publish(c.event(table, model.EventPlayerJoined, state.Username, nil))

	return table, nil
}

// checkSeating rejects seat changes once play has begun
func checkSeating(table *model.Table) error {
	switch table.State {
	case model.TableStateWaiting:
		return nil
	case model.TableStatePlaying:
		return model.ErrGameInProgress
	case model.TableStateComplete:
		return model.ErrGameComplete
	default:
		return model.ErrGameAbandoned
	}
}

// RemovePlayer takes a player away from the table. During play the turn
// passes on if it was theirs, and the table is abandoned once empty.
func (c *Controller) RemovePlayer(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	switch table.State {
	case model.TableStateComplete:
		return nil, model.ErrGameComplete
	case model.TableStateAbandoned:
		return nil, model.ErrGameAbandoned
	}

	idx := playerIndex(table, username)
	if idx == -1 {
		return nil, model.ErrPlayerNotFound
	}

	table.Players = append(table.Players[:idx], table.Players[idx+1:]...)
	pending := []model.Event{c.event(table, model.EventPlayerLeft, username, nil)}

	if table.State == model.TableStatePlaying {
		switch {
		case len(table.Players) == 0:
			table.State = model.TableStateAbandoned
			pending = append(pending, c.event(table, model.EventGameAbandoned, "", nil))
			c.metrics.IncGamesFinished(metrics.OutcomeAbandoned)
		case idx < table.CurrentIdx:
			table.CurrentIdx--
		case idx == table.CurrentIdx:
			// The next seat now sits at the same index
			table.CurrentIdx--
			if table.CurrentIdx < 0 {
				table.CurrentIdx = len(table.Players) - 1
			}
			pending = append(pending, c.advanceTurn(table)...)
		}
	}

	table.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("player left",
		slog.String("table_id", string(table.ID)),
		slog.String("username", username),
		slog.String("state", string(table.State)),
	)
	c.metrics.SetPlayersSeated(len(table.Players))
	c.publishAll(pending)

	return table, nil
}

// Start begins play with the seated players in seating order
func (c *Controller) Start(ctx context.Context, id model.TableID) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkSeating(table); err != nil {
		return nil, err
	}
	if len(table.Players) == 0 {
		return nil, model.ErrInsufficientPlayers
	}

	table.State = model.TableStatePlaying
	table.CurrentIdx = 0
	table.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("table_id", string(table.ID)),
		slog.Int("player_count", len(table.Players)),
	)
	c.metrics.IncGamesStarted()
	c.publisher.Publish(c.event(table, model.EventGameStarted, table.Players[0].Username, nil))

	return table, nil
}

// Roll throws the current player's free dice
func (c *Controller) Roll(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
	return c.withTurn(ctx, id, username, model.EventDiceChanged, func(p *turn.Player, _ *tableNotifier) error {
		if err := p.Roll(); err != nil {
			return err
		}
		c.metrics.IncRolls()
		return nil
	})
}

// Hold keeps the die at index out of the next roll
func (c *Controller) Hold(ctx context.Context, id model.TableID, username string, index int) (*model.Table, error) {
	return c.withTurn(ctx, id, username, model.EventDiceChanged, func(p *turn.Player, _ *tableNotifier) error {
		return p.Hold(index)
	})
}

// Unhold returns the die at index to the next roll
func (c *Controller) Unhold(ctx context.Context, id model.TableID, username string, index int) (*model.Table, error) {
	return c.withTurn(ctx, id, username, model.EventDiceChanged, func(p *turn.Player, _ *tableNotifier) error {
		return p.Unhold(index)
	})
}

// SelectCategory previews the current dice in a category
func (c *Controller) SelectCategory(ctx context.Context, id model.TableID, username string, category model.Category) (*model.Table, error) {
	return c.withTurn(ctx, id, username, model.EventCategorySelected, func(p *turn.Player, _ *tableNotifier) error {
		return p.SelectCategory(category)
	})
}

// EndTurn commits the previewed score and passes the dice to the next player
func (c *Controller) EndTurn(ctx context.Context, id model.TableID, username string) (*model.Table, error) {
	return c.withTurn(ctx, id, username, "", func(p *turn.Player, n *tableNotifier) error {
		n.committed = p.Tentative()
		before := p.Totals()
		if err := p.EndTurn(); err != nil {
			return err
		}
		c.recordCommit(*n.committed, before, p.Totals())
		return nil
	})
}

func (c *Controller) recordCommit(committed model.CategoryScore, before, after model.Totals) {
	c.metrics.IncTurn(string(committed.Category))
	if committed.Legal && (committed.Category == model.Yahtzee || committed.Category == model.BonusYahtzee) {
		c.metrics.IncYahtzee()
	}
	if before.UpperBonus.Points == 0 && after.UpperBonus.Points > 0 {
		c.metrics.IncUpperBonus()
	}
}

// withTurn loads the table, checks that it is username's turn, and runs op
// against that player. Events raised by op are published once the table is saved.
func (c *Controller) withTurn(
	ctx context.Context,
	id model.TableID,
	username string,
	changeType model.EventType,
	op func(p *turn.Player, n *tableNotifier) error,
) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	switch table.State {
	case model.TableStateComplete:
		return nil, model.ErrGameComplete
	case model.TableStateAbandoned:
		return nil, model.ErrGameAbandoned
	case model.TableStateWaiting:
		return nil, model.ErrGameNotStarted
	}

	idx := playerIndex(table, username)
	if idx == -1 {
		return nil, model.ErrPlayerNotFound
	}
	if idx != table.CurrentIdx {
		return nil, model.ErrNotPlayerTurn
	}

	n := &tableNotifier{controller: c, table: table, changeType: changeType}
	player := turn.Load(&table.Players[idx], c.random, n, turn.WithRollLimit(table.RollLimit))
	if err := op(player, n); err != nil {
		return nil, err
	}

	table.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveTable(ctx, table); err != nil {
		c.logger.Error("failed to save table",
			slog.String("table_id", string(table.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.publishAll(n.pending)
	return table, nil
}

// advanceTurn hands the turn to the next player with open categories, or
// completes the table when every scorecard is full. It returns the events raised.
func (c *Controller) advanceTurn(table *model.Table) []model.Event {
	count := len(table.Players)
	for step := 1; step <= count; step++ {
		next := (table.CurrentIdx + step) % count
		if !table.Players[next].Finished() {
			table.CurrentIdx = next
			return nil
		}
	}

	table.State = model.TableStateComplete
	standings := c.scoringService.Rank(table.Players)
	winner := c.scoringService.DetermineWinner(standings)

	c.logger.Info("game completed",
		slog.String("table_id", string(table.ID)),
		slog.String("winner", winner),
		slog.Duration("duration", clock.Since(c.clock, table.CreatedAt)),
	)
	c.metrics.IncGamesFinished(metrics.OutcomeComplete)
	for _, s := range standings {
		c.metrics.ObserveGrandTotal(s.GrandTotal)
	}

	return []model.Event{c.event(table, model.EventGameComplete, winner, model.GameCompletePayload{
		Standings: standings,
		Winner:    winner,
	})}
}

// Abandon ends the table early. Finished tables are left as they are.
func (c *Controller) Abandon(ctx context.Context, id model.TableID) (*model.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if !table.IsOpen() {
		return table, nil
	}

	table.State = model.TableStateAbandoned
	table.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTable(ctx, table); err != nil {
		return nil, err
	}

	c.logger.Info("game abandoned",
		slog.String("table_id", string(id)),
		slog.Int("player_count", len(table.Players)),
	)
	c.metrics.IncGamesFinished(metrics.OutcomeAbandoned)
	c.publisher.Publish(c.event(table, model.EventGameAbandoned, "", nil))

	return table, nil
}

// Standings ranks the seated players by grand total. It may be called at
// any point to show the running order.
func (c *Controller) Standings(ctx context.Context, id model.TableID) ([]model.Standing, error) {
	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.scoringService.Rank(table.Players), nil
}

// CreateGameSummary creates a summary record for a completed game
func (c *Controller) CreateGameSummary(ctx context.Context, id model.TableID) (*model.GameSummary, error) {
	table, err := c.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if table.State != model.TableStateComplete {
		return nil, model.ErrGameNotComplete
	}

	standings := c.scoringService.Rank(table.Players)
	return &model.GameSummary{
		ID:          table.ID,
		Standings:   standings,
		Winner:      c.scoringService.DetermineWinner(standings),
		CompletedAt: table.UpdatedAt,
	}, nil
}

func (c *Controller) event(table *model.Table, eventType model.EventType, username string, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		TableID:   table.ID,
		Username:  username,
		Payload:   payload,
	}
}

func (c *Controller) publishAll(pending []model.Event) {
	for _, e := range pending {
		c.publisher.Publish(e)
	}
}

func playerIndex(table *model.Table, username string) int {
	for i := range table.Players {
		if table.Players[i].Username == username {
			return i
		}
	}
	return -1
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateTable(ctx context.Context, rollLimit int) (*model.Table, error)
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
	ActiveTable(ctx context.Context) (*model.Table, error)
	AddPlayer(ctx context.Context, id model.TableID, username string) (*model.Table, error)
	AddBot(ctx context.Context, id model.TableID, username, strategy string) (*model.Table, error)
	RemovePlayer(ctx context.Context, id model.TableID, username string) (*model.Table, error)
	Start(ctx context.Context, id model.TableID) (*model.Table, error)
	Roll(ctx context.Context, id model.TableID, username string) (*model.Table, error)
	Hold(ctx context.Context, id model.TableID, username string, index int) (*model.Table, error)
	Unhold(ctx context.Context, id model.TableID, username string, index int) (*model.Table, error)
	SelectCategory(ctx context.Context, id model.TableID, username string, category model.Category) (*model.Table, error)
	EndTurn(ctx context.Context, id model.TableID, username string) (*model.Table, error)
	Abandon(ctx context.Context, id model.TableID) (*model.Table, error)
	Standings(ctx context.Context, id model.TableID) ([]model.Standing, error)
	CreateGameSummary(ctx context.Context, id model.TableID) (*model.GameSummary, error)
}

var _ ControllerInterface = (*Controller)(nil)
