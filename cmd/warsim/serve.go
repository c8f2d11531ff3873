package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lox/warsim/cmd/warsim/shared"
	"github.com/lox/warsim/internal/config"
	"github.com/lox/warsim/internal/feed"
	"golang.org/x/sync/errgroup"
)

type ServeCmd struct {
	GameFlags

	Addr       string `help:"Listen host (default from config)"`
	Port       int    `help:"Listen port (default from config)"`
	RoundDelay string `help:"Pause between rounds, e.g. 250ms"`
	GameDelay  string `help:"Pause between games, e.g. 3s"`
	Games      int    `help:"Stop after this many games (0 plays forever)"`
	Seed       int64  `help:"Seed for the first game; game i uses seed+i"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load(func(cfg *config.Config) {
		c.GameFlags.apply(cfg)
		if c.Addr != "" {
			cfg.Feed.Address = c.Addr
		}
		if c.Port != 0 {
			cfg.Feed.Port = c.Port
		}
		if c.RoundDelay != "" {
			cfg.Feed.RoundDelay = c.RoundDelay
		}
		if c.GameDelay != "" {
			cfg.Feed.GameDelay = c.GameDelay
		}
		if c.Seed != 0 {
			cfg.Simulation.Seed = c.Seed
		}
	})
	if err != nil {
		return err
	}
	logger := g.logger(cfg)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	deck, err := cfg.ArrangedDeck()
	if err != nil {
		return err
	}

	hub := feed.NewHub(logger)
	runner := feed.NewRunner(feed.RunnerConfig{
		Game:       cfg.WarConfig(),
		Deck:       deck,
		Seed:       cfg.Simulation.Seed,
		Games:      c.Games,
		RoundDelay: cfg.RoundDelay(),
		GameDelay:  cfg.GameDelay(),
		Logger:     logger,
	}, hub)

	srv := &http.Server{
		Addr:              cfg.FeedAddress(),
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		logger.Info("Feed listening", "addr", srv.Addr, "ws", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		err := runner.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err == nil {
			logger.Info("Finished streaming games", "games", c.Games)
			cancel()
		}
		return err
	})
	grp.Go(func() error {
		<-ctx.Done()
		hub.Close()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	})

	return grp.Wait()
}
