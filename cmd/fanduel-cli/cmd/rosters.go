package cmd

import (
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/cmd/fanduel-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rostersCmd)
}

var rostersCmd = &cobra.Command{
	Use:   "rosters",
	Short: "List the rosters of the account for contests that have not started yet.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := globals.Get(cmd.Context()).Client(cmd.Context())
		if err != nil {
			return err
		}
		upcoming, err := client.UpcomingRosters(cmd.Context())
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Roster"})
		for _, r := range upcoming.Rosters {
			t.AppendRow(table.Row{r.Id})
		}
		t.Render()
		return nil
	},
}
