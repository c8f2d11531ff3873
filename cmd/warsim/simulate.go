package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lox/warsim/cmd/warsim/shared"
	"github.com/lox/warsim/internal/config"
	"github.com/lox/warsim/internal/fileutil"
	"github.com/lox/warsim/internal/simulator"
	"github.com/lox/warsim/internal/statistics"
)

type SimulateCmd struct {
	GameFlags

	Games   int    `short:"n" help:"Number of games to play"`
	Seed    int64  `help:"Seed for the first game; game i uses seed+i"`
	Workers int    `short:"w" help:"Games played concurrently (0 for one per CPU)"`
	Out     string `short:"o" help:"Write one JSON line per game to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		c.GameFlags.apply(cfg)
		if c.Games != 0 {
			cfg.Simulation.Games = c.Games
		}
		if c.Seed != 0 {
			cfg.Simulation.Seed = c.Seed
		}
		if c.Workers != 0 {
			cfg.Simulation.Workers = c.Workers
		}
	})
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	logger.Info("Starting simulation",
		"games", cfg.Simulation.Games,
		"players", cfg.Game.Players,
		"decks", cfg.Game.Decks,
		"seed", cfg.Simulation.Seed)

	sim := simulator.New(simulator.Config{
		Games:   cfg.Simulation.Games,
		Game:    cfg.WarConfig(),
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
		Logger:  logger,
	})
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	if c.Out != "" {
		if err := writeResults(c.Out, report.Results); err != nil {
			return err
		}
		logger.Info("Wrote game results", "file", c.Out, "games", len(report.Results))
	}

	fmt.Print(report.Stats.Summary())
	fmt.Printf("Elapsed: %s (%.0f games/sec)\n",
		report.Elapsed.Round(1e6), float64(report.Stats.Games)/max(report.Elapsed.Seconds(), 1e-9))
	return nil
}

// writeResults stores results as JSON lines
func writeResults(filename string, results []statistics.GameResult) error {
	return fileutil.WriteAtomic(filename, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	})
}
