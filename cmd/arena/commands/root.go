package commands

import (
	"fmt"
	"os"

	"github.com/battlesnakeio/arena/cmd/arena/commands/server"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "arena",
	Short:   "arena runs a multiplayer snake arena",
	Version: version.String(),
	PersistentPreRun: func(c *cobra.Command, args []string) {
		if err := config.Load(envFiles...); err != nil {
			log.WithError(err).Fatal("unable to load configuration")
		}
		config.SetupLogging()
	},
	Run: func(c *cobra.Command, args []string) {
		server.RootCmd.PreRun(c, args)
		server.RootCmd.Run(c, args)
	},
}

var (
	apiAddr  string
	envFiles []string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load, defaults to .env")
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")
	rootCmd.Flags().AddFlagSet(server.RootCmd.Flags())

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(server.RootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
