package main

import (
	"github.com/charmbracelet/log"
	"github.com/lox/warsim/cmd/warsim/shared"
	"github.com/lox/warsim/internal/config"
	"github.com/lox/warsim/internal/war"
)

// Globals are flags shared by every command
type Globals struct {
	Config    string `short:"c" default:"warsim.hcl" help:"HCL config file (ignored when missing)"`
	LogLevel  string `help:"Log level (debug|info|warn|error)"`
	LogFormat string `help:"Log format (text|json)"`
	NoColor   bool   `help:"Disable coloured output"`
}

// GameFlags override the game block of the config file
type GameFlags struct {
	Players  int `short:"p" help:"Number of players"`
	Decks    int `short:"d" help:"Number of standard decks shuffled together"`
	WarCards int `help:"Cards each player puts down in a war"`
}

func (f GameFlags) apply(cfg *config.Config) {
	if f.Players != 0 {
		cfg.Game.Players = f.Players
	}
	if f.Decks != 0 {
		cfg.Game.Decks = f.Decks
	}
	if f.WarCards != 0 {
		cfg.Game.WarCards = f.WarCards
	}
}

// load reads the config file and environment, then lets mutate apply
// command flags before validating
func (g *Globals) load(mutate func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shared.SetColor(!g.NoColor)
	return cfg, nil
}

func (g *Globals) logger(cfg *config.Config) *log.Logger {
	return shared.SetupLogger(cfg.Log.Level, cfg.Log.Format)
}

// gameOptions returns the options every command passes to the engine
func gameOptions(cfg *config.Config, logger *log.Logger) ([]war.Option, error) {
	opts := []war.Option{war.WithLogger(logger)}
	deck, err := cfg.ArrangedDeck()
	if err != nil {
		return nil, err
	}
	if deck != nil {
		opts = append(opts, war.WithDeck(deck))
	}
	return opts, nil
}
