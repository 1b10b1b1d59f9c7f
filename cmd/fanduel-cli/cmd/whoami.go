package cmd

import (
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/cmd/fanduel-cli/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Log in and print the identity of the account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := globals.Get(cmd.Context()).Client(cmd.Context())
		if err != nil {
			return err
		}
		identity, err := client.Identity(cmd.Context())
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"User Id", "Username", "Session", "Expires"})
		t.AppendRow(table.Row{
			identity.UserId,
			identity.Username,
			client.SessionState().String(),
			client.SessionExpiresAt().Format("3:04 PM MST"),
		})
		t.Render()
		return nil
	},
}
