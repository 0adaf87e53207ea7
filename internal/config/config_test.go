package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 4321, cfg.Port)
	assert.Equal(t, "machiavelli.sav", cfg.SaveFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Players)
	assert.Equal(t, 13, cfg.CardsToStart)
	assert.False(t, cfg.JokerRule)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nplayers: 4\njoker_rule: true\n"), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 4, cfg.Players)
	assert.True(t, cfg.JokerRule)
	// Untouched keys keep their defaults.
	assert.Equal(t, 2, cfg.Decks)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MACHIAVELLI_PORT", "7777")
	t.Setenv("MACHIAVELLI_PLAYERS", "3")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, 3, cfg.Players)
}

func TestValidate(t *testing.T) {
	base, err := Load(viper.New(), "")
	require.NoError(t, err)

	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"empty save path", func(c *Config) { c.SaveFile = "" }},
		{"single player", func(c *Config) { c.Players = 1 }},
		{"decks overflow", func(c *Config) { c.Decks = 300 }},
		{"cannot deal", func(c *Config) { c.Decks = 1; c.Players = 8 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mut(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGameConversion(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	game := cfg.Game()
	assert.Equal(t, uint8(2), game.Decks)
	assert.Equal(t, uint16(13), game.CardsToStart)
	require.NoError(t, game.Validate())
}
