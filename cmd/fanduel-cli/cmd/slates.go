package cmd

import (
	"context"
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/cmd/fanduel-cli/utils"
	"fanduel-client/internal/fanduel"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(slatesCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(contestsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(gamesCmd)
}

// resolveSlate returns the logged in client and the slate named by `query`.
func resolveSlate(ctx context.Context, query string) (*fanduel.Client, fanduel.Slate, error) {
	client, err := globals.Get(ctx).Client(ctx)
	if err != nil {
		return nil, fanduel.Slate{}, err
	}
	slates, err := client.ListSlates(ctx)
	if err != nil {
		return nil, fanduel.Slate{}, err
	}
	slate, err := utils.ResolveSlate(slates, query)
	if err != nil {
		return nil, fanduel.Slate{}, err
	}
	return client, slate, nil
}

func renderSlates(slates []fanduel.Slate) {
	t := utils.NewTable()
	t.AppendHeader(table.Row{"Id", "Sport", "Name", "Start", "Salary Cap", "Open Contests"})
	for _, s := range slates {
		t.AppendRow(table.Row{
			s.Id,
			s.Sport,
			s.Name,
			utils.FormatStart(s.StartDate),
			s.SalaryCap,
			len(s.Contests),
		})
	}
	t.Render()
}

var slatesCmd = &cobra.Command{
	Use:   "slates",
	Short: "List the slates that are open for entry.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := globals.Get(cmd.Context()).Client(cmd.Context())
		if err != nil {
			return err
		}
		slates, err := client.ListSlates(cmd.Context())
		if err != nil {
			return err
		}
		renderSlates(slates)
		return nil
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details <slate>",
	Short: "Show the games of a slate, <slate> is an id or a slate name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, slate, err := resolveSlate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		details, err := client.SlateDetails(cmd.Context(), slate)
		if err != nil {
			return err
		}

		renderSlates([]fanduel.Slate{details.Slate})

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Game", "Start", "Status", "Away", "Home"})
		for _, g := range details.Games {
			t.AppendRow(table.Row{
				g.Id,
				utils.FormatStart(g.StartDate),
				g.Status,
				g.AwayTeam.Team,
				g.HomeTeam.Team,
			})
		}
		t.Render()
		return nil
	},
}

var contestsCmd = &cobra.Command{
	Use:   "contests <slate>",
	Short: "List the contests of a slate that are available to the account.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, slate, err := resolveSlate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		result, err := client.AvailableContests(cmd.Context(), slate)
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Name", "Entry Fee", "Size"})
		for _, c := range result.Contests {
			t.AppendRow(table.Row{c.Id, c.Name, string(c.EntryFee), string(c.Size)})
		}
		t.Render()
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players <slate>",
	Short: "List the players that can be picked on a slate.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, slate, err := resolveSlate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		players, err := client.SlatePlayers(cmd.Context(), slate)
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Name", "Position", "Salary", "FPPG", "Injury"})
		for _, p := range players {
			injury := ""
			if p.Injured {
				injury = p.InjuryStatus
			}
			t.AppendRow(table.Row{
				p.Id,
				p.FirstName + " " + p.LastName,
				p.Position,
				p.Salary,
				p.Fppg,
				injury,
			})
		}
		t.Render()
		return nil
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games <slate>",
	Short: "List the fixtures of a slate's player pool.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, slate, err := resolveSlate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		games, err := client.SlateGames(cmd.Context(), slate)
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Id", "Start", "Status"})
		for _, g := range games {
			t.AppendRow(table.Row{g.Id, utils.FormatStart(g.StartDate), g.Status})
		}
		t.Render()
		return nil
	},
}
