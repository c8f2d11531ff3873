package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/warsim/cmd/warsim/shared"
	"github.com/lox/warsim/internal/config"
	"github.com/lox/warsim/internal/tui"
)

type WatchCmd struct {
	GameFlags

	Seed    int64         `help:"RNG seed (0 for random)"`
	Delay   time.Duration `default:"200ms" help:"Pause between rounds while autoplaying"`
	LogFile string        `help:"Write logs to this file while the TUI is running"`
}

func (c *WatchCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		c.GameFlags.apply(cfg)
		if c.Seed != 0 {
			cfg.Simulation.Seed = c.Seed
		}
	})
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Error("Failed to close log file", "error", err)
			}
		}()
		logger = shared.NewLogger(f, cfg.Log.Level, cfg.Log.Format)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts, err := gameOptions(cfg, logger)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Game:     cfg.WarConfig(),
		Seed:     seed,
		Delay:    c.Delay,
		Logger:   logger,
		GameOpts: opts,
	})
}
