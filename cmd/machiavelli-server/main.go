// Command machiavelli-server hosts a Machiavelli game over TCP.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FlorentCLMichel/Machiavelli/internal/config"
	"github.com/FlorentCLMichel/Machiavelli/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// configKeys are the viper keys bound to flags of the same name with
// underscores turned into dashes.
var configKeys = []string{
	"port", "save_file", "log_level",
	"decks", "jokers", "cards_to_start", "joker_rule", "players",
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		load       bool
	)

	cmd := &cobra.Command{
		Use:          "machiavelli-server",
		Short:        "Host a Machiavelli game over TCP",
		Long:         "machiavelli-server deals a game, waits for the players to connect and runs the session. Settings come from flags, MACHIAVELLI_* environment variables or a config file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			v := viper.New()
			for _, key := range configKeys {
				flag := cmd.Flags().Lookup(strings.ReplaceAll(key, "_", "-"))
				if err := v.BindPFlag(key, flag); err != nil {
					return err
				}
			}
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			log := logrus.New()
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			log.SetLevel(level)

			var srv *server.Server
			if load {
				if srv, err = server.Restore(cfg, log); err != nil {
					return err
				}
			} else {
				srv = server.New(cfg, log)
			}
			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: machiavelli.{yaml,toml,json} in the working directory)")
	cmd.Flags().BoolVar(&load, "load", false, "resume the session stored in the save file")
	cmd.Flags().Int("port", 4321, "TCP port to listen on")
	cmd.Flags().String("save-file", "machiavelli.sav", "path of the save file")
	cmd.Flags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	cmd.Flags().Int("decks", 2, "number of 52-card decks")
	cmd.Flags().Int("jokers", 2, "jokers added per deck")
	cmd.Flags().Int("cards-to-start", 13, "cards dealt to each player")
	cmd.Flags().Bool("joker-rule", false, "jokers in hand block ending the turn")
	cmd.Flags().Int("players", 2, "number of players")

	return cmd
}
