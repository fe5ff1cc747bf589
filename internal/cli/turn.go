package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
)

func newTurnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Turn commands for the current player",
	}

	cmd.AddCommand(newTurnRollCmd())
	cmd.AddCommand(newTurnHoldCmd("hold", "Keep dice out of the next roll"))
	cmd.AddCommand(newTurnHoldCmd("unhold", "Return held dice to the next roll"))
	cmd.AddCommand(newTurnSelectCmd())
	cmd.AddCommand(newTurnEndCmd())

	return cmd
}

func playerPath(username, action string) string {
	return "/api/v1/table/players/" + url.PathEscape(username) + "/" + action
}

func newTurnRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll <username>",
		Short: "Roll the free dice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post(playerPath(args[0], "roll"), nil, t)
			})
		},
	}
}

// newTurnHoldCmd builds hold and unhold, which differ only in the action path
func newTurnHoldCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <username> <index>...",
		Short: short,
		Long:  short + ". Dice are indexed from 0 in roll order.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			indexes := make([]int, 0, len(args)-1)
			for _, arg := range args[1:] {
				idx, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("die index must be a number: %q", arg)
				}
				indexes = append(indexes, idx)
			}

			return printTable(cmd, func(t *response.Table) error {
				for _, idx := range indexes {
					if err := client.Post(playerPath(args[0], action+"/"+strconv.Itoa(idx)), nil, t); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newTurnSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <username> <category>",
		Short: "Preview the dice in a category",
		Long: `Preview the dice in a category. The score is only committed by "turn end".

Categories: aces, twos, threes, fours, fives, sixes, three_of_a_kind,
four_of_a_kind, full_house, small_straight, large_straight, yahtzee,
bonus_yahtzee, chance`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post(playerPath(args[0], "select"), request.SelectCategoryRequest{Category: args[1]}, t)
			})
		},
	}
}

func newTurnEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <username>",
		Short: "Commit the selected category and pass the dice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post(playerPath(args[0], "end-turn"), nil, t)
			})
		},
	}
}
