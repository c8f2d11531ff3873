package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/lox/warsim/internal/config"
	"github.com/lox/warsim/internal/war"
)

type PlayCmd struct {
	GameFlags

	Seed    int64 `help:"RNG seed (0 for random)"`
	Quiet   bool  `short:"q" help:"Only print the result"`
	Narrate bool  `help:"Narrate through the logger instead of the styled display"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		c.GameFlags.apply(cfg)
		if c.Seed != 0 {
			cfg.Simulation.Seed = c.Seed
		}
	})
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("Dealing game", "seed", seed)

	opts, err := gameOptions(cfg, logger)
	if err != nil {
		return err
	}
	opts = append(opts, war.WithRNG(rand.New(rand.NewSource(seed))))
	switch {
	case c.Quiet:
	case c.Narrate:
		opts = append(opts, war.WithSubscriber(war.NewNarrator(logger)))
	default:
		opts = append(opts, war.WithSubscriber(war.NewDisplay(os.Stdout)))
	}

	game, err := war.NewGame(cfg.WarConfig(), opts...)
	if err != nil {
		return err
	}
	result := game.PlayGame()

	if c.Quiet {
		fmt.Println(war.Describe(war.GameOverEvent{Result: result}))
	}
	fmt.Printf("Rounds: %d  Wars: %d  Longest war: %d  Seed: %d\n",
		result.Rounds, result.Wars, result.LongestWar, seed)
	return nil
}
