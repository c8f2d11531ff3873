package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/warsim/internal/statistics"
	"github.com/lox/warsim/internal/war"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games   int
	Game    war.Config
	Seed    int64
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Report is what a finished simulation returns
type Report struct {
	Stats   *statistics.Statistics
	Results []statistics.GameResult // one per game, in seed order
	Elapsed time.Duration
}

// Simulator plays many independent games of War
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays config.Games games, game i seeded with Seed+i. Results are
// gathered by index, so the statistics do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	// Fail fast on bad settings instead of once per worker.
	if err := s.config.Game.WithDefaults().Validate(); err != nil {
		return nil, err
	}

	start := s.config.Clock.Now()
	logger := s.config.Logger.WithPrefix("simulator")
	logger.Debug("Starting simulation", "games", s.config.Games, "workers", s.config.Workers, "seed", s.config.Seed)

	results := make([]statistics.GameResult, s.config.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := s.playGame(gctx, s.config.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Wait cancels gctx even on success; only the caller's context matters here
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	logger.Info("Simulation complete",
		"games", stats.Games,
		"meanRounds", fmt.Sprintf("%.1f", stats.Mean()),
		"timeouts", stats.Timeouts,
		"elapsed", elapsed)

	return &Report{Stats: stats, Results: results, Elapsed: elapsed}, nil
}

// playGame plays a single seeded game to completion
func (s *Simulator) playGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	rng := rand.New(rand.NewSource(seed))
	game, err := war.NewGame(s.config.Game, war.WithRNG(rng))
	if err != nil {
		return statistics.GameResult{}, err
	}

	result, err := game.PlayGameContext(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	s.config.Logger.Debug("Game finished", "seed", seed, "winner", result.Winner+1, "rounds", result.Rounds)
	return statistics.GameResult{
		Seed:       seed,
		Players:    game.Config().Players,
		Winner:     result.Winner,
		Rounds:     result.Rounds,
		Wars:       result.Wars,
		LongestWar: result.LongestWar,
		Pushes:     result.Pushes,
		TimedOut:   result.TimedOut,
	}, nil
}

// RunSimulation is a convenience wrapper around New(...).Run
func RunSimulation(ctx context.Context, games int, game war.Config, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	report, err := New(Config{Games: games, Game: game, Seed: seed, Logger: logger}).Run(ctx)
	if err != nil {
		return nil, err
	}
	return report.Stats, nil
}
