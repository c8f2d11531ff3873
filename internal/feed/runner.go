package feed

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/warsim/cards"
	"github.com/lox/warsim/internal/war"
)

// RunnerConfig controls how games are paced on the feed
type RunnerConfig struct {
	Game       war.Config
	Deck       []cards.Card // pins the deal for every game when set
	Seed       int64
	Games      int // 0 plays until the context is cancelled
	RoundDelay time.Duration
	GameDelay  time.Duration
	Clock      quartz.Clock
	Logger     *log.Logger
}

// Runner plays games back to back, publishing every event to a subscriber
type Runner struct {
	cfg     RunnerConfig
	factory *war.Factory
}

// NewRunner creates a runner publishing into sink
func NewRunner(cfg RunnerConfig, sink war.EventSubscriber) *Runner {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	opts := []war.Option{war.WithLogger(cfg.Logger), war.WithSubscriber(sink)}
	if cfg.Deck != nil {
		opts = append(opts, war.WithDeck(cfg.Deck))
	}
	return &Runner{
		cfg:     cfg,
		factory: war.NewFactory(cfg.Game, opts...),
	}
}

// Run plays games until cfg.Games have finished or ctx is cancelled. Game i
// is seeded with Seed+i.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.cfg.Logger.WithPrefix("runner")
	for i := 0; r.cfg.Games == 0 || i < r.cfg.Games; i++ {
		seed := r.cfg.Seed + int64(i)
		g, err := r.factory.Create(war.Config{}, war.WithRNG(rand.New(rand.NewSource(seed))))
		if err != nil {
			return err
		}
		logger.Debug("Starting game", "game", i+1, "seed", seed)

		for !g.Done() {
			g.Step()
			if err := r.sleep(ctx, r.cfg.RoundDelay); err != nil {
				return err
			}
		}
		if _, err := g.PlayGameContext(ctx); err != nil {
			return err
		}

		if err := r.sleep(ctx, r.cfg.GameDelay); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := r.cfg.Clock.NewTimer(d, "feed", "delay")
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
