package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/warsim/internal/war"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	sim := New(Config{Games: 100, Seed: 12345, Logger: quietLogger()})

	if sim == nil {
		t.Fatal("New() returned nil")
	}
	if sim.config.Games != 100 {
		t.Errorf("Expected 100 games, got %d", sim.config.Games)
	}
	if sim.config.Workers < 1 {
		t.Errorf("Expected a positive default worker count, got %d", sim.config.Workers)
	}
	if sim.config.Clock == nil {
		t.Error("Expected a default clock")
	}
}

func TestSimulator_Run(t *testing.T) {
	clock := quartz.NewMock(t)
	sim := New(Config{
		Games:   20,
		Game:    war.Config{Players: 2, Decks: 1},
		Seed:    42,
		Workers: 4,
		Logger:  quietLogger(),
		Clock:   clock,
	})

	report, err := sim.Run(context.Background())
	require.NoError(t, err)

	stats := report.Stats
	assert.Equal(t, 20, stats.Games)
	assert.Zero(t, report.Elapsed, "mock clock never advanced")
	require.NoError(t, stats.Validate())

	decided := 0
	for _, w := range stats.Wins {
		decided += w
	}
	assert.Equal(t, 20, decided+stats.Timeouts+stats.Undecided)
	assert.Greater(t, stats.Mean(), 0.0)
	assert.LessOrEqual(t, stats.LongestGame, 1000)

	require.Len(t, report.Results, 20)
	for i, r := range report.Results {
		assert.Equal(t, int64(42+i), r.Seed)
	}
}

func TestSimulator_DeterministicAcrossWorkerCounts(t *testing.T) {
	base := Config{
		Games:  30,
		Game:   war.Config{Players: 4, Decks: 1},
		Seed:   7,
		Logger: quietLogger(),
		Clock:  quartz.NewMock(t),
	}

	serial := base
	serial.Workers = 1
	parallel := base
	parallel.Workers = 8

	a, err := New(serial).Run(context.Background())
	require.NoError(t, err)
	b, err := New(parallel).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Values, b.Stats.Values)
	assert.Equal(t, a.Stats.Wins, b.Stats.Wins)
	assert.Equal(t, a.Stats.TotalWars, b.Stats.TotalWars)
	assert.Equal(t, a.Results, b.Results)
}

func TestSimulator_RejectsBadConfig(t *testing.T) {
	_, err := New(Config{Games: 5, Game: war.Config{Players: 5}, Logger: quietLogger()}).Run(context.Background())
	assert.ErrorIs(t, err, war.ErrUnevenDeal)

	_, err = New(Config{Games: 0, Logger: quietLogger()}).Run(context.Background())
	assert.Error(t, err)
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 50, Logger: quietLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSimulation_Convenience(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 3, war.Config{}, 12345, quietLogger())
	if err != nil {
		t.Fatalf("RunSimulation failed: %v", err)
	}
	if stats.Games != 3 {
		t.Errorf("Expected 3 games, got %d", stats.Games)
	}
}

func TestSimulator_RunSingleWorkerReturnsStats(t *testing.T) {
	report, err := New(Config{Games: 2, Seed: 1, Workers: 1, Logger: quietLogger()}).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Stats.Games)
	assert.Len(t, report.Results, 2)
}
