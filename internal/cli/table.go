package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/yahtzee-go/internal/api/request"
	"github.com/mcoot/yahtzee-go/internal/api/response"
	"github.com/mcoot/yahtzee-go/internal/model"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table commands",
	}

	cmd.AddCommand(newTableCreateCmd())
	cmd.AddCommand(newTableGetCmd())
	cmd.AddCommand(newTableJoinCmd())
	cmd.AddCommand(newTableAddBotCmd())
	cmd.AddCommand(newTableLeaveCmd())
	cmd.AddCommand(newTableStartCmd())
	cmd.AddCommand(newTableStandingsCmd())
	cmd.AddCommand(newTableScorecardCmd())
	cmd.AddCommand(newTableAbandonCmd())

	return cmd
}

// printTable runs a table request and prints the returned table
func printTable(cmd *cobra.Command, do func(*response.Table) error) error {
	var result response.Table
	if err := do(&result); err != nil {
		return err
	}
	NewOutputTo(cmd.OutOrStdout(), cfg.Output).Print(result)
	return nil
}

func newTableCreateCmd() *cobra.Command {
	var rollLimit int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post("/api/v1/table", request.CreateTableRequest{RollLimit: rollLimit}, t)
			})
		},
	}

	cmd.Flags().IntVar(&rollLimit, "roll-limit", 0, "Rolls per turn (0 uses the server default)")

	return cmd
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the active table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Get("/api/v1/table", t)
			})
		},
	}
}

func newTableJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <username>",
		Short: "Seat a player at the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post("/api/v1/table/players", request.AddPlayerRequest{Username: args[0]}, t)
			})
		},
	}
}

func newTableAddBotCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "add-bot",
		Short: "Seat a computer player at the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post("/api/v1/table/bots", request.AddBotRequest{Strategy: strategy}, t)
			})
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", model.BotStrategyGreedy, "Bot strategy (greedy or random)")

	return cmd
}

func newTableLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <username>",
		Short: "Remove a player from the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Delete("/api/v1/table/players/"+url.PathEscape(args[0]), t)
			})
		},
	}
}

func newTableStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start play with the seated players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Post("/api/v1/table/start", nil, t)
			})
		},
	}
}

func newTableStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show players ranked by grand total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.StandingsResponse
			if err := client.Get("/api/v1/table/standings", &result); err != nil {
				return err
			}
			NewOutputTo(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newTableScorecardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scorecard <username>",
		Short: "Show a player's scorecard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var table response.Table
			if err := client.Get("/api/v1/table", &table); err != nil {
				return err
			}
			for _, p := range table.Players {
				if p.Username == args[0] {
					NewOutputTo(cmd.OutOrStdout(), cfg.Output).Print(p)
					return nil
				}
			}
			return &RemoteError{Status: 404, Code: "PLAYER_NOT_FOUND", Message: "player not found"}
		},
	}
}

func newTableAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Abandon the active table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTable(cmd, func(t *response.Table) error {
				return client.Delete("/api/v1/table", t)
			})
		},
	}
}
