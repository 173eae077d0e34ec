// Package simulator plays many unattended blackjack sessions in parallel
// and aggregates their results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// ErrInvalidConfig is returned for impossible simulation parameters
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds configuration for running simulations
type Config struct {
	Game     game.Config
	Sessions int    // independent sessions, each with its own shoe and balance
	Rounds   int    // maximum rounds per session; a broke session stops early
	Strategy string // registered strategy name
	Bet      int    // flat stake per round
	Seed     int64
	Workers  int // zero picks one per CPU, capped at 8

	// Logger receives progress; nil logs nothing
	Logger *zerolog.Logger
}

// Validate checks the simulation parameters
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if c.Sessions < 1 {
		return fmt.Errorf("%w: need at least one session, got %d", ErrInvalidConfig, c.Sessions)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: need at least one round per session, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Bet < c.Game.MinBet || c.Bet > c.Game.MaxBet {
		return fmt.Errorf("%w: bet %d outside table limits [%d, %d]",
			ErrInvalidConfig, c.Bet, c.Game.MinBet, c.Game.MaxBet)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}
	if !slices.Contains(strategy.Names(), c.Strategy) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, strategy.ErrUnknownStrategy, c.Strategy)
	}
	return nil
}

// Result is the aggregate of every session in a run
type Result struct {
	Stats         *statistics.Statistics
	Sessions      int
	BrokeSessions int
	Reshuffles    int
	Duration      time.Duration
}

type sessionResult struct {
	stats      *statistics.Statistics
	broke      bool
	reshuffles int
}

// Simulator runs blackjack sessions
type Simulator struct {
	config Config
	logger zerolog.Logger
	quiet  *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Workers == 0 {
		config.Workers = min(runtime.NumCPU(), 8)
	}
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}
	return &Simulator{config: config, logger: logger, quiet: log.New(io.Discard)}, nil
}

// Run plays every session and merges the results. Sessions are seeded
// from the run seed, so a run is reproducible whatever the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := s.logger

	logger.Info().
		Int("sessions", s.config.Sessions).
		Int("rounds", s.config.Rounds).
		Str("strategy", s.config.Strategy).
		Int64("seed", s.config.Seed).
		Int("workers", s.config.Workers).
		Msg("Starting simulation")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	results := make(chan sessionResult, s.config.Workers)

	go func() {
		defer close(results)
		for i := 0; i < s.config.Sessions; i++ {
			g.Go(func() error {
				res, err := s.playSession(ctx, i)
				if err != nil {
					return err
				}
				select {
				case results <- res:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
		}
		g.Wait()
	}()

	out := &Result{Stats: &statistics.Statistics{}}
	for res := range results {
		out.Sessions++
		out.Stats.Merge(res.stats)
		out.Reshuffles += res.reshuffles
		if res.broke {
			out.BrokeSessions++
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := out.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	out.Duration = time.Since(start)
	logger.Info().
		Int("rounds", out.Stats.Rounds).
		Float64("mean", out.Stats.Mean()).
		Int("broke", out.BrokeSessions).
		Dur("duration", out.Duration).
		Msg("Simulation complete")
	return out, nil
}

func (s *Simulator) playSession(ctx context.Context, index int) (sessionResult, error) {
	seed := randutil.Derive(s.config.Seed, index)

	engine, err := game.NewEngine(s.config.Game, game.WithRNG(randutil.New(seed)), game.WithLogger(s.quiet))
	if err != nil {
		return sessionResult{}, err
	}
	decider, err := strategy.New(s.config.Strategy, randutil.New(randutil.Derive(seed, 0)), s.quiet)
	if err != nil {
		return sessionResult{}, err
	}
	bettor := strategy.FlatBettor{Amount: s.config.Bet}

	res := sessionResult{stats: &statistics.Statistics{}}
	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return sessionResult{}, err
		}
		if !engine.CanPlay() {
			res.broke = true
			break
		}
		if engine.NeedsReshuffle() {
			engine.Reshuffle()
			res.reshuffles++
		}

		result, err := engine.PlayRound(ctx, bettor, decider)
		if err != nil {
			return sessionResult{}, fmt.Errorf("session %d round %d (seed %d): %w", index, round+1, seed, err)
		}
		res.stats.Add(statistics.FromGame(result))
	}

	s.logger.Debug().
		Int("session", index).
		Int("rounds", res.stats.Rounds).
		Int("balance", engine.Player().Balance()).
		Bool("broke", res.broke).
		Msg("Session finished")
	return res, nil
}
