package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/factory"
	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/services/bot"
	"github.com/mcoot/yahtzee-go/internal/services/game"
	"github.com/mcoot/yahtzee-go/internal/services/scoring"
)

const playHelp = `Commands:
  roll | r                 roll the free dice
  hold | h <index>...      keep dice out of the next roll
  unhold | u <index>...    return dice to the next roll
  select | s <category>    preview a category
  end | e                  commit the selected category
  options | o              score the current dice in every category
  card | c [username]      show a scorecard
  help | ?                 show this help
  quit | q                 abandon the game`

func newPlayCmd() *cobra.Command {
	var (
		rollLimit int
		bots      []string
	)

	cmd := &cobra.Command{
		Use:   "play <username>...",
		Short: "Play a hot-seat game in this terminal",
		Long: `Play a hot-seat game without a server. Players take turns in the order given,
followed by any bots.

` + playHelp,
		Args: cobra.MaximumNArgs(model.MaxPlayers),
		// No server is needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args)+len(bots) == 0 {
				return errors.New("give at least one username or --bot")
			}
			app, err := factory.New(factory.Config{RollLimit: rollLimit})
			if err != nil {
				return err
			}

			session := &hotSeat{
				controller: app.GameController,
				scoring:    app.ScoringService,
				bots:       app.BotService,
				strategies: bots,
				out:        NewOutputTo(cmd.OutOrStdout(), cfg.Output),
				w:          cmd.OutOrStdout(),
			}
			return session.Run(cmd.Context(), cmd.InOrStdin(), args)
		},
	}

	cmd.Flags().IntVar(&rollLimit, "roll-limit", model.DefaultRollLimit, "Rolls per turn")
	cmd.Flags().StringArrayVar(&bots, "bot", nil, "Add a bot with the given strategy (greedy or random), repeatable")

	return cmd
}

// hotSeat runs a game read from line commands against an in-process controller
type hotSeat struct {
	controller game.ControllerInterface
	scoring    *scoring.Service
	bots       *bot.Service
	strategies []string // One bot is seated per entry
	out        *Output
	w          io.Writer
	table      *model.Table
}

// errQuit ends the session early
var errQuit = errors.New("quit")

// Run seats the players, then plays until the game completes or input ends.
// A game left unfinished is abandoned.
func (s *hotSeat) Run(ctx context.Context, in io.Reader, usernames []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := s.controller.CreateTable(ctx, 0)
	if err != nil {
		return err
	}
	for _, name := range usernames {
		if table, err = s.controller.AddPlayer(ctx, table.ID, name); err != nil {
			return err
		}
	}
	for _, strategy := range s.strategies {
		if s.bots == nil {
			return errors.New("bots are not available")
		}
		if table, err = s.bots.AddBotToTable(ctx, table.ID, strategy); err != nil {
			return err
		}
	}
	if s.table, err = s.controller.Start(ctx, table.ID); err != nil {
		return err
	}

	s.printf("%s\n\n", playHelp)
	if err := s.playBots(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for s.table.State == model.TableStatePlaying {
		s.printf("%s> ", s.table.CurrentPlayer().Username)
		if !scanner.Scan() {
			break
		}

		err := s.exec(ctx, strings.Fields(scanner.Text()))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			s.printf("Error: %s\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if s.table.State != model.TableStateComplete {
		_, err := s.controller.Abandon(ctx, s.table.ID)
		s.printf("\nGame abandoned\n")
		return err
	}

	return s.finish(ctx)
}

func (s *hotSeat) exec(ctx context.Context, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	username := s.table.CurrentPlayer().Username

	var (
		table *model.Table
		err   error
	)
	switch cmd {
	case "roll", "r":
		table, err = s.controller.Roll(ctx, s.table.ID, username)
	case "hold", "h":
		table, err = s.eachIndex(args, func(idx int) (*model.Table, error) {
			return s.controller.Hold(ctx, s.table.ID, username, idx)
		})
	case "unhold", "u":
		table, err = s.eachIndex(args, func(idx int) (*model.Table, error) {
			return s.controller.Unhold(ctx, s.table.ID, username, idx)
		})
	case "select", "s":
		if len(args) != 1 {
			return errors.New("select takes one category")
		}
		category, perr := model.ParseCategory(args[0])
		if perr != nil {
			return perr
		}
		table, err = s.controller.SelectCategory(ctx, s.table.ID, username, category)
	case "end", "e":
		table, err = s.controller.EndTurn(ctx, s.table.ID, username)
	case "options", "o":
		return s.printOptions()
	case "card", "c":
		return s.printCard(args)
	case "help", "?":
		s.printf("%s\n", playHelp)
		return nil
	case "quit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if table != nil {
		s.table = table
	}
	if err != nil {
		return err
	}

	if cmd == "end" || cmd == "e" {
		if err := s.playBots(ctx); err != nil {
			return err
		}
	}
	if s.table.State == model.TableStatePlaying {
		s.out.Print(response.TableFromModel(s.table))
	}
	return nil
}

// playBots lets computer players take their turns and reports each action
func (s *hotSeat) playBots(ctx context.Context) error {
	if s.bots == nil {
		return nil
	}
	current := s.table.CurrentPlayer()
	if current == nil || !current.IsBot() {
		return nil
	}

	actions, err := s.bots.ProcessBotActions(ctx, s.table.ID)
	for _, a := range actions {
		switch a.Type {
		case bot.ActionRoll:
			s.printf("%s rolled %s\n", a.Username, formatValues(a.Dice))
		case bot.ActionScore:
			s.printf("%s scored %d in %s\n", a.Username, a.Points, a.Category.DisplayName())
		}
	}
	if err != nil {
		return err
	}

	s.table, err = s.controller.GetTable(ctx, s.table.ID)
	return err
}

func formatValues(dice []model.Dice) string {
	parts := make([]string, len(dice))
	for i, d := range dice {
		parts[i] = strconv.Itoa(d.Int())
	}
	return strings.Join(parts, " ")
}

// eachIndex applies op to every index in order. On failure it still returns
// the table from the last op that succeeded, since those changes were saved.
func (s *hotSeat) eachIndex(args []string, op func(int) (*model.Table, error)) (*model.Table, error) {
	if len(args) == 0 {
		return nil, errors.New("give at least one die index")
	}
	var table *model.Table
	for _, arg := range args {
		idx, err := strconv.Atoi(arg)
		if err != nil {
			return table, fmt.Errorf("die index must be a number: %q", arg)
		}
		next, err := op(idx)
		if err != nil {
			return table, err
		}
		table = next
	}
	return table, nil
}

func (s *hotSeat) printOptions() error {
	current := s.table.CurrentPlayer()
	if len(current.Dice) == 0 {
		return model.ErrNotRolled
	}
	dice := model.Values(current.Dice)
	values := make([]int, len(dice))
	for i, d := range dice {
		values[i] = d.Int()
	}
	s.out.Print(response.ScoreResponse{
		Dice:   values,
		Scores: response.CategoryScoresFromModel(s.scoring.EvaluateAll(dice)),
	})
	return nil
}

func (s *hotSeat) printCard(args []string) error {
	player := s.table.CurrentPlayer()
	if len(args) > 0 {
		player = s.table.GetPlayer(args[0])
	}
	if player == nil {
		return model.ErrPlayerNotFound
	}
	s.out.Print(response.PlayerFromModel(*player, s.table.RollLimit))
	return nil
}

func (s *hotSeat) finish(ctx context.Context) error {
	summary, err := s.controller.CreateGameSummary(ctx, s.table.ID)
	if err != nil {
		return err
	}

	resp := response.StandingsResponse{
		State:     string(s.table.State),
		Standings: response.StandingsFromModel(summary.Standings),
	}
	s.printf("\nGame over\n")
	if summary.Winner != "" {
		resp.Winner = &summary.Winner
	} else {
		s.printf("Tied game\n")
	}
	s.out.Print(resp)
	return nil
}

func (s *hotSeat) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.w, format, args...)
}
