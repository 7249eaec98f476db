package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the studybuddy command tree
func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "studybuddy [command] [flags]",
		Short: "Study Buddy - a board of open study sessions",
		Long: `Study Buddy keeps a board of study sessions people can post, join and clean up.
It serves the board over HTTP, as a Discord bot, or both from the same store.

Examples:
  # Serve the HTTP API with config.yaml from the working directory
  studybuddy serve

  # Run the Discord bot against a shared redis board
  STUDYBUDDY_STORAGE_BACKEND=redis STUDYBUDDY_DISCORD_TOKEN=... studybuddy bot

  # Drop ended sessions from the store once
  studybuddy prune --config ./config/prod.yaml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default ./config/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(newServeCmd(&configFile))
	rootCmd.AddCommand(newBotCmd(&configFile))
	rootCmd.AddCommand(newPruneCmd(&configFile))

	return rootCmd
}
