package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

func testConfig() Config {
	return Config{
		Game:     game.DefaultConfig(),
		Sessions: 4,
		Rounds:   50,
		Strategy: "basic",
		Bet:      10,
		Seed:     12345,
		Workers:  2,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }, ErrInvalidConfig},
		{"no rounds", func(c *Config) { c.Rounds = 0 }, ErrInvalidConfig},
		{"bet below table minimum", func(c *Config) { c.Game.MinBet = 20 }, ErrInvalidConfig},
		{"bet above table maximum", func(c *Config) { c.Bet = 1000 }, ErrInvalidConfig},
		{"negative workers", func(c *Config) { c.Workers = -1 }, ErrInvalidConfig},
		{"unknown strategy", func(c *Config) { c.Strategy = "martingale" }, strategy.ErrUnknownStrategy},
		{"bad table", func(c *Config) { c.Game.Decks = 0 }, game.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)

			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	sim, err := New(testConfig())
	require.NoError(t, err)

	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Sessions)
	assert.Equal(t, 200, res.Stats.Rounds, "no session goes broke at 10 a round from 2000")
	assert.Zero(t, res.BrokeSessions)
	assert.Equal(t, res.Stats.Rounds, res.Stats.Outcomes.Total())
	assert.GreaterOrEqual(t, res.Stats.Wagered, 200*10)
	require.NoError(t, res.Stats.Validate())
}

func TestRunIsReproducible(t *testing.T) {
	run := func(workers int) *Result {
		cfg := testConfig()
		cfg.Workers = workers
		sim, err := New(cfg)
		require.NoError(t, err)
		res, err := sim.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(1), run(4)
	assert.Equal(t, a.Stats.Rounds, b.Stats.Rounds)
	assert.Equal(t, a.Stats.SumNet, b.Stats.SumNet)
	assert.Equal(t, a.Stats.Outcomes, b.Stats.Outcomes)
	assert.Equal(t, a.Reshuffles, b.Reshuffles)
	assert.ElementsMatch(t, a.Stats.Values, b.Stats.Values)
}

func TestRunReshufflesSmallShoes(t *testing.T) {
	cfg := testConfig()
	cfg.Game.Decks = 1
	cfg.Game.ShuffleLimit = 15
	cfg.Sessions = 1
	cfg.Rounds = 100

	sim, err := New(cfg)
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 100, res.Stats.Rounds)
	assert.Positive(t, res.Reshuffles)
}

func TestRunStopsBrokeSessions(t *testing.T) {
	cfg := testConfig()
	cfg.Game.StartingBalance = 10
	cfg.Game.MinBet = 10
	cfg.Strategy = "stand"
	cfg.Sessions = 8
	cfg.Rounds = 500

	sim, err := New(cfg)
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Positive(t, res.BrokeSessions)
	assert.Less(t, res.Stats.Rounds, 8*500)
}

func TestRunCancelled(t *testing.T) {
	sim, err := New(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Sessions = 1
	cfg.Rounds = 5
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	cfg.Logger = &logger

	sim, err := New(cfg)
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Starting simulation")
	assert.Contains(t, buf.String(), "Session finished")
	assert.Contains(t, buf.String(), "Simulation complete")
}

func TestReport(t *testing.T) {
	cfg := testConfig()
	sim, err := New(cfg)
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	report := NewReport(cfg, res)
	assert.Len(t, report.RunID, 36)
	assert.Equal(t, "basic", report.Strategy)
	assert.Equal(t, 200, report.RoundsPlayed)
	assert.Equal(t, res.Stats.Mean(), report.Mean)
	assert.LessOrEqual(t, report.CI95[0], report.CI95[1])
	require.NoError(t, report.Validate())

	data, err := json.Marshal(report)
	require.NoError(t, err)
	require.NoError(t, ValidateReport(data))
}

func TestValidateReportRejectsMalformed(t *testing.T) {
	assert.Error(t, ValidateReport([]byte(`not json`)))
	assert.Error(t, ValidateReport([]byte(`{"run_id": "x"}`)), "missing fields")

	cfg := testConfig()
	report := NewReport(cfg, &Result{Stats: fakeStats(), Sessions: 1})
	report.BiggestLoss = 5
	assert.Error(t, report.Validate(), "losses are reported as negative numbers")
}

func fakeStats() *statistics.Statistics {
	s := &statistics.Statistics{}
	s.Add(statistics.RoundResult{Net: 10, Bet: 10, Outcome: game.Win})
	return s
}
