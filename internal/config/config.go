// Package config loads the server configuration from defaults, an optional
// config file, MACHIAVELLI_* environment variables and bound flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/FlorentCLMichel/Machiavelli/engine"
)

// Config is the fully resolved server configuration.
type Config struct {
	Port     int    `mapstructure:"port"`
	SaveFile string `mapstructure:"save_file"`
	LogLevel string `mapstructure:"log_level"`

	Decks        int  `mapstructure:"decks"`
	Jokers       int  `mapstructure:"jokers"`
	CardsToStart int  `mapstructure:"cards_to_start"`
	JokerRule    bool `mapstructure:"joker_rule"`
	Players      int  `mapstructure:"players"`
}

// SetDefaults registers every key with its default on the given viper
// instance. Call it before binding flags so unbound keys still resolve.
func SetDefaults(v *viper.Viper) {
	game := engine.DefaultConfig()
	v.SetDefault("port", 4321)
	v.SetDefault("save_file", "machiavelli.sav")
	v.SetDefault("log_level", "info")
	v.SetDefault("decks", int(game.Decks))
	v.SetDefault("jokers", int(game.Jokers))
	v.SetDefault("cards_to_start", int(game.CardsToStart))
	v.SetDefault("joker_rule", game.JokerRule)
	v.SetDefault("players", int(game.Players))
}

// Load resolves the configuration on the given viper instance. A nil
// instance gets a fresh one. file names an optional config file; when
// empty, machiavelli.{yaml,toml,json} is searched in the working
// directory and it is fine for none to exist.
func Load(v *viper.Viper, file string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix("machiavelli")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("machiavelli")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the network settings and the game parameters.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SaveFile == "" {
		return fmt.Errorf("save file path cannot be empty")
	}
	if c.Players < 2 {
		return fmt.Errorf("a server game needs at least 2 players, got %d", c.Players)
	}
	if c.Decks < 1 || c.Decks > 255 || c.Jokers < 0 || c.Jokers > 255 ||
		c.CardsToStart < 1 || c.CardsToStart > 65535 || c.Players > 255 {
		return fmt.Errorf("game parameters out of range")
	}
	return c.Game().Validate()
}

// Game converts the resolved settings into the rule parameters.
func (c Config) Game() engine.Config {
	return engine.Config{
		Decks:        uint8(c.Decks),
		Jokers:       uint8(c.Jokers),
		CardsToStart: uint16(c.CardsToStart),
		JokerRule:    c.JokerRule,
		Players:      uint8(c.Players),
	}
}
