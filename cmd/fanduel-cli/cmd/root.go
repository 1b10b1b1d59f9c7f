package cmd

import (
	"context"
	"fanduel-client/cmd/fanduel-cli/globals"
	"fanduel-client/internal/components/telemetry"
	"fanduel-client/internal/config"
	"fanduel-client/internal/fanduel"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// accountCacheSize is how many logged in accounts are kept at once.
const accountCacheSize = 16

var (
	configPath string
	account    string
)

var rootCmd = &cobra.Command{
	Use:          "fanduel-cli",
	Short:        "fanduel-cli is a CLI interface for the FanDuel fantasy sports API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		telemetry.InitSlog(cfg.Debug, os.Stdout)

		tel := telemetry.SlogAPI{}
		value := &globals.Value{
			Config:   cfg,
			Accounts: fanduel.NewAccounts(accountCacheSize, cfg, cfg.ClientOptions(), tel),
			Tel:      tel,
			Account:  account,
		}
		cmd.SetContext(globals.Set(cmd.Context(), value))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json5", "path to the config file")
	rootCmd.PersistentFlags().StringVarP(&account, "account", "a", "", "username of the account to use (defaults to default_account)")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
