package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lox/warsim/cards"
	"github.com/lox/warsim/internal/war"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "warsim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, war.Config{
		Players:          2,
		Decks:            1,
		WarCards:         4,
		MaxRoundsPerDeck: 1000,
		ShuffleTimes:     1,
	}, cfg.WarConfig())
	assert.Equal(t, "localhost:8080", cfg.FeedAddress())
	assert.Equal(t, 250*time.Millisecond, cfg.RoundDelay())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  players         = 4
  decks           = 2
  recycle_shuffle = false
}

simulation {
  games   = 50
  seed    = 99
  workers = 3
}

feed {
  port        = 9090
  round_delay = "1s"
}

log {
  level  = "debug"
  format = "json"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	wc := cfg.WarConfig()
	assert.Equal(t, 4, wc.Players)
	assert.Equal(t, 2, wc.Decks)
	assert.Equal(t, 4, wc.WarCards, "unset fields keep defaults")
	assert.True(t, wc.NoRecycleShuffle)

	assert.Equal(t, 50, cfg.Simulation.Games)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 3, cfg.Simulation.Workers)
	assert.Equal(t, "localhost:9090", cfg.FeedAddress())
	assert.Equal(t, time.Second, cfg.RoundDelay())
	assert.Equal(t, 3*time.Second, cfg.GameDelay())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "warsim.example.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default(), cfg)
}

func TestLoadArrangedDeck(t *testing.T) {
	codes := make([]string, 0, cards.DeckSize)
	for _, c := range cards.Standard() {
		codes = append(codes, `"`+c.Short()+`"`)
	}
	path := writeConfig(t, "game {\n  arranged = ["+strings.Join(codes, ", ")+"]\n}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	deck, err := cfg.ArrangedDeck()
	require.NoError(t, err)
	assert.Equal(t, cards.Standard(), deck)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `game { players = `))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `game { colour = "red" }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WARSIM_PLAYERS", "4")
	t.Setenv("WARSIM_SEED", "17")
	t.Setenv("WARSIM_LOG_LEVEL", "warn")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, 1, cfg.Game.Decks, "unset variables leave values alone")
	assert.Equal(t, int64(17), cfg.Simulation.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv("WARSIM_PLAYERS", "many")

	err := Default().ApplyEnv()
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"uneven deal", func(c *Config) { c.Game.Players = 5 }, "game:"},
		{"no games", func(c *Config) { c.Simulation.Games = 0 }, "games must be positive"},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }, "workers"},
		{"bad port", func(c *Config) { c.Feed.Port = 70000 }, "invalid port"},
		{"bad delay", func(c *Config) { c.Feed.RoundDelay = "soon" }, "round_delay"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid format"},
		{"short arranged deck", func(c *Config) { c.Game.Arranged = []string{"AS"} }, "arranged deck has 1 cards"},
		{"bad arranged card", func(c *Config) { c.Game.Arranged = []string{"ZZ"} }, "arranged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	cfg.Game.Players = 5
	assert.ErrorIs(t, cfg.Validate(), war.ErrUnevenDeal)
}
