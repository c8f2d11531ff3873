package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/warsim/cards"
	"github.com/lox/warsim/internal/war"
)

// Config is the complete warsim configuration
type Config struct {
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Feed       *FeedSettings       `hcl:"feed,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// GameSettings mirrors war.Config
type GameSettings struct {
	Players          int      `hcl:"players,optional"`
	Decks            int      `hcl:"decks,optional"`
	WarCards         int      `hcl:"war_cards,optional"`
	MaxRoundsPerDeck int      `hcl:"max_rounds_per_deck,optional"`
	ShuffleTimes     int      `hcl:"shuffle_times,optional"`
	RecycleShuffle   *bool    `hcl:"recycle_shuffle,optional"`
	Arranged         []string `hcl:"arranged,optional"`
}

// SimulationSettings controls batch runs
type SimulationSettings struct {
	Games   int   `hcl:"games,optional"`
	Seed    int64 `hcl:"seed,optional"`
	Workers int   `hcl:"workers,optional"`
}

// FeedSettings controls the websocket event feed
type FeedSettings struct {
	Address    string `hcl:"address,optional"`
	Port       int    `hcl:"port,optional"`
	RoundDelay string `hcl:"round_delay,optional"`
	GameDelay  string `hcl:"game_delay,optional"`
}

// LogSettings controls the process logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// envOverrides are read from the environment after the file
type envOverrides struct {
	Players  int    `env:"WARSIM_PLAYERS"`
	Decks    int    `env:"WARSIM_DECKS"`
	Seed     int64  `env:"WARSIM_SEED"`
	Games    int    `env:"WARSIM_GAMES"`
	Workers  int    `env:"WARSIM_WORKERS"`
	FeedPort int    `env:"WARSIM_FEED_PORT"`
	LogLevel string `env:"WARSIM_LOG_LEVEL"`
}

// Default returns the built-in configuration
func Default() *Config {
	recycle := true
	return &Config{
		Game: &GameSettings{
			Players:          war.DefaultPlayers,
			Decks:            war.DefaultDecks,
			WarCards:         war.DefaultWarCards,
			MaxRoundsPerDeck: war.DefaultMaxRoundsPerDeck,
			ShuffleTimes:     war.DefaultShuffleTimes,
			RecycleShuffle:   &recycle,
		},
		Simulation: &SimulationSettings{
			Games: 1000,
		},
		Feed: &FeedSettings{
			Address:    "localhost",
			Port:       8080,
			RoundDelay: "250ms",
			GameDelay:  "3s",
		},
		Log: &LogSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads an HCL file on top of the defaults. A missing file yields the
// defaults unchanged.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fileCfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &fileCfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.merge(&fileCfg)
	return cfg, nil
}

// merge copies every non-zero setting from other into c
func (c *Config) merge(other *Config) {
	if g := other.Game; g != nil {
		if g.Players != 0 {
			c.Game.Players = g.Players
		}
		if g.Decks != 0 {
			c.Game.Decks = g.Decks
		}
		if g.WarCards != 0 {
			c.Game.WarCards = g.WarCards
		}
		if g.MaxRoundsPerDeck != 0 {
			c.Game.MaxRoundsPerDeck = g.MaxRoundsPerDeck
		}
		if g.ShuffleTimes != 0 {
			c.Game.ShuffleTimes = g.ShuffleTimes
		}
		if g.RecycleShuffle != nil {
			c.Game.RecycleShuffle = g.RecycleShuffle
		}
		if len(g.Arranged) > 0 {
			c.Game.Arranged = g.Arranged
		}
	}
	if s := other.Simulation; s != nil {
		if s.Games != 0 {
			c.Simulation.Games = s.Games
		}
		if s.Seed != 0 {
			c.Simulation.Seed = s.Seed
		}
		if s.Workers != 0 {
			c.Simulation.Workers = s.Workers
		}
	}
	if f := other.Feed; f != nil {
		if f.Address != "" {
			c.Feed.Address = f.Address
		}
		if f.Port != 0 {
			c.Feed.Port = f.Port
		}
		if f.RoundDelay != "" {
			c.Feed.RoundDelay = f.RoundDelay
		}
		if f.GameDelay != "" {
			c.Feed.GameDelay = f.GameDelay
		}
	}
	if l := other.Log; l != nil {
		if l.Level != "" {
			c.Log.Level = l.Level
		}
		if l.Format != "" {
			c.Log.Format = l.Format
		}
	}
}

// ApplyEnv overrides settings from WARSIM_* environment variables
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.merge(&Config{
		Game:       &GameSettings{Players: o.Players, Decks: o.Decks},
		Simulation: &SimulationSettings{Games: o.Games, Seed: o.Seed, Workers: o.Workers},
		Feed:       &FeedSettings{Port: o.FeedPort},
		Log:        &LogSettings{Level: o.LogLevel},
	})
	return nil
}

// WarConfig converts the game settings for the engine
func (c *Config) WarConfig() war.Config {
	return war.Config{
		Players:          c.Game.Players,
		Decks:            c.Game.Decks,
		WarCards:         c.Game.WarCards,
		MaxRoundsPerDeck: c.Game.MaxRoundsPerDeck,
		ShuffleTimes:     c.Game.ShuffleTimes,
		NoRecycleShuffle: c.Game.RecycleShuffle != nil && !*c.Game.RecycleShuffle,
	}
}

// ArrangedDeck parses the pinned deck order, or returns nil when none is set
func (c *Config) ArrangedDeck() ([]cards.Card, error) {
	if len(c.Game.Arranged) == 0 {
		return nil, nil
	}
	return cards.ParseCards(c.Game.Arranged)
}

// RoundDelay is the pause between rounds on the feed
func (c *Config) RoundDelay() time.Duration {
	d, _ := time.ParseDuration(c.Feed.RoundDelay)
	return d
}

// GameDelay is the pause between games on the feed
func (c *Config) GameDelay() time.Duration {
	d, _ := time.ParseDuration(c.Feed.GameDelay)
	return d
}

// FeedAddress returns host:port for the feed listener
func (c *Config) FeedAddress() string {
	return fmt.Sprintf("%s:%d", c.Feed.Address, c.Feed.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	wc := c.WarConfig().WithDefaults()
	if err := wc.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if len(c.Game.Arranged) > 0 {
		deck, err := c.ArrangedDeck()
		if err != nil {
			return fmt.Errorf("game: arranged: %w", err)
		}
		if len(deck) != wc.DeckSize() {
			return fmt.Errorf("game: arranged deck has %d cards, want %d", len(deck), wc.DeckSize())
		}
	}

	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation: games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative, got %d", c.Simulation.Workers)
	}

	if c.Feed.Port < 1 || c.Feed.Port > 65535 {
		return fmt.Errorf("feed: invalid port: %d", c.Feed.Port)
	}
	for name, value := range map[string]string{"round_delay": c.Feed.RoundDelay, "game_delay": c.Feed.GameDelay} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return fmt.Errorf("feed: invalid %s %q", name, value)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: invalid format %q", c.Log.Format)
	}

	return nil
}
