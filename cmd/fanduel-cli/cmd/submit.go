package cmd

import (
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/cmd/fanduel-cli/utils"
	"fanduel-client/internal/fanduel"
	"fanduel-client/internal/lineup"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	lineupPath string
	updateId   string
)

func init() {
	submitCmd.Flags().StringVarP(&lineupPath, "lineup", "l", "", "path to a lineup json file")
	submitCmd.Flags().StringVar(&updateId, "update", "", "replace the roster of this entry instead of creating a new entry")
	submitCmd.MarkFlagRequired("lineup")
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit <slate> [contest id]",
	Short: "Enter a lineup into a contest of a slate, or update an existing entry with --update.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := utils.ReadLineup(lineupPath)
		if err != nil {
			return err
		}
		client, slate, err := resolveSlate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		orchestrator := lineup.NewOrchestrator(client, nil, globals.Get(cmd.Context()).Tel)

		var entries []fanduel.ContestEntry
		if updateId != "" {
			entries, err = orchestrator.UpdateLineup(cmd.Context(), slate, updateId, roster)
		} else {
			if len(args) < 2 {
				return fmt.Errorf("a contest id is needed unless --update is given")
			}
			entries, err = orchestrator.SubmitLineup(cmd.Context(), slate, fanduel.Contest{Id: args[1]}, roster)
		}
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Entry"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.Id})
		}
		t.Render()
		return nil
	},
}
