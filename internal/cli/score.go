package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
)

func newScoreCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "score <d1> <d2> <d3> <d4> <d5>",
		Short: "Score five dice without a table",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			dice, err := parseDiceArgs(args)
			if err != nil {
				return err
			}

			var result response.ScoreResponse
			if err := client.Post("/api/v1/score", request.ScoreRequest{Dice: dice, Category: category}, &result); err != nil {
				return err
			}

			NewOutputTo(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Score only this category")

	return cmd
}

func parseDiceArgs(args []string) ([]int, error) {
	dice := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("dice must be numbers: %q", arg)
		}
		dice[i] = v
	}
	return dice, nil
}
