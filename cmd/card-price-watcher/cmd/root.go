// Package cmd implements the CLI commands for card-price-watcher.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "card-price-watcher",
	Short: "Watch CardTrader for the cheapest qualifying listings",
	Long: "card-price-watcher polls the CardTrader marketplace for a configured set of\n" +
		"blueprints, tracks the cheapest listing that passes each blueprint's filters,\n" +
		"and sends a notification whenever that listing appears, changes price, or\n" +
		"disappears.",
	SilenceUsage: true,
	RunE:         runWatch,
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		String("config", "config.yaml", "config file path (env CPW_CONFIG)")
	cobra.CheckErr(viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")))

	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(statusCommand())
	rootCmd.AddCommand(triggerCommand())
}

func initConfig() {
	viper.SetEnvPrefix("CPW")
	viper.AutomaticEnv()
}
