package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/roundid"
)

// Config holds the table parameters, validated once by NewEngine
type Config struct {
	Decks           int
	ShuffleLimit    int
	MinBet          int
	MaxBet          int
	StartingBalance int
	PeekRule        PeekRule
	MaxAttempts     int // per decision; bettors and deciders are retried up to this many times
}

// DefaultConfig returns the house defaults
func DefaultConfig() Config {
	return Config{
		Decks:           8,
		ShuffleLimit:    10,
		MinBet:          1,
		MaxBet:          500,
		StartingBalance: 2000,
		PeekRule:        PeekBeforePlay,
		MaxAttempts:     10,
	}
}

// Validate checks the parameter ranges
func (c Config) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("%w: decks must be at least 1, got %d", ErrInvalidConfig, c.Decks)
	}
	if c.ShuffleLimit < 0 || c.ShuffleLimit >= c.Decks*deck.CardsPerDeck {
		return fmt.Errorf("%w: shuffle limit %d must be in [0, %d)",
			ErrInvalidConfig, c.ShuffleLimit, c.Decks*deck.CardsPerDeck)
	}
	if c.MinBet < 0 {
		return fmt.Errorf("%w: minimum bet must not be negative, got %d", ErrInvalidConfig, c.MinBet)
	}
	if c.MaxBet < c.MinBet {
		return fmt.Errorf("%w: maximum bet %d is below minimum bet %d", ErrInvalidConfig, c.MaxBet, c.MinBet)
	}
	if c.StartingBalance < c.MinBet {
		return fmt.Errorf("%w: starting balance %d is below minimum bet %d",
			ErrInvalidConfig, c.StartingBalance, c.MinBet)
	}
	if c.PeekRule != PeekBeforePlay && c.PeekRule != PeekAfterReveal {
		return fmt.Errorf("%w: unknown peek rule %d", ErrInvalidConfig, c.PeekRule)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

// Engine owns the shoe, the player and the dealer, and plays rounds one
// at a time. It is not safe for concurrent use; run one engine per
// goroutine.
type Engine struct {
	cfg      Config
	shoe     *deck.Shoe
	player   *Player
	dealer   *Dealer
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	ids      *roundid.Generator
	rounds   int
	current  *Round
	reserve  int // most cards one round can draw from this shoe
}

// NewEngine validates the configuration and builds an engine. Without
// WithShoe or WithRNG the shoe is shuffled from a time-seeded source.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ec := &engineConfig{}
	for _, opt := range opts {
		opt(ec)
	}

	if ec.logger == nil {
		ec.logger = log.New(io.Discard)
	}
	if ec.eventBus == nil {
		ec.eventBus = NewEventBus()
	}
	if ec.clock == nil {
		ec.clock = quartz.NewReal()
	}
	if ec.ids == nil {
		var src roundid.RandSource
		if ec.rng != nil {
			src = ec.rng
		}
		ec.ids = roundid.NewGenerator(ec.clock, src)
	}

	shoe := ec.shoe
	if shoe == nil {
		rng := ec.rng
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		var err error
		shoe, err = deck.NewShoe(rng, cfg.Decks, cfg.ShuffleLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return &Engine{
		cfg:      cfg,
		shoe:     shoe,
		reserve:  roundReserve(shoe),
		player:   NewPlayer(cfg.StartingBalance),
		dealer:   NewDealer(),
		logger:   ec.logger,
		eventBus: ec.eventBus,
		clock:    ec.clock,
		ids:      ec.ids,
	}, nil
}

// Config returns the engine's table parameters
func (e *Engine) Config() Config { return e.cfg }

// Player returns the seated player
func (e *Engine) Player() *Player { return e.player }

// Dealer returns the dealer
func (e *Engine) Dealer() *Dealer { return e.dealer }

// Shoe returns the shoe in play
func (e *Engine) Shoe() *deck.Shoe { return e.shoe }

// EventBus returns the event bus for subscribing to round events
func (e *Engine) EventBus() EventBus { return e.eventBus }

// Rounds returns the number of rounds started
func (e *Engine) Rounds() int { return e.rounds }

// CanPlay reports whether the player can still cover the minimum bet
func (e *Engine) CanPlay() bool {
	return e.player.Balance() >= e.cfg.MinBet
}

// NeedsReshuffle reports whether the shoe crossed its shuffle limit, or
// holds fewer cards than a round can use. The caller polls it after a
// round and calls Reshuffle before the next one.
func (e *Engine) NeedsReshuffle() bool {
	return e.shoe.NeedsReshuffle() || e.shoe.Remaining() < e.reserve
}

// roundReserve bounds the cards one round can draw. Before its last card
// a player hand totals at most 20 and a dealer hand at most 16, counting
// aces low, so both hands together hold no more than the shoe's lowest
// cards summing to 36, plus one last card each.
func roundReserve(shoe *deck.Shoe) int {
	n := shoe.CardsWithin(Target-1+DealerStandsOn-1) + 2
	return min(n, shoe.Size())
}

// Reshuffle rebuilds the shoe
func (e *Engine) Reshuffle() {
	e.shoe.Rebuild()
	e.logger.Info("Shoe reshuffled", "cards", e.shoe.Remaining())
	e.eventBus.Publish(ShoeReshuffledEvent{Cards: e.shoe.Remaining(), timestamp: e.clock.Now()})
}

// NewRound clears both hands and opens a round for betting
func (e *Engine) NewRound() *Round {
	if e.current != nil && e.current.phase != PhaseComplete {
		e.logger.Warn("Abandoning unfinished round", "round", e.current.id, "phase", e.current.phase)
	}

	e.player.Reset()
	e.dealer.Reset()
	e.rounds++

	r := &Round{
		id:      e.ids.Generate(),
		phase:   PhaseBetting,
		minBet:  e.cfg.MinBet,
		maxBet:  e.cfg.MaxBet,
		peek:    e.cfg.PeekRule,
		shoe:    e.shoe,
		player:  e.player,
		dealer:  e.dealer,
		outcome: Continue,
		publish: e.eventBus.Publish,
		now:     func() time.Time { return e.clock.Now() },
		logger:  e.logger,
	}
	e.current = r

	e.logger.Debug("Starting round", "round", r.id, "balance", e.player.Balance(), "shoe", e.shoe.Remaining())
	e.eventBus.Publish(RoundStartEvent{
		RoundID:       r.id,
		Balance:       e.player.Balance(),
		CardsInShoe:   e.shoe.Remaining(),
		RoundsStarted: e.rounds,
		timestamp:     e.clock.Now(),
	})
	return r
}

// PlayRound runs a complete round, asking the bettor for a stake and the
// decider for every player action. Invalid bets and illegal actions are
// re-requested up to Config.MaxAttempts times.
func (e *Engine) PlayRound(ctx context.Context, bettor Bettor, decider Decider) (RoundResult, error) {
	round := e.NewRound()

	if err := e.collectBet(ctx, round, bettor); err != nil {
		return RoundResult{}, err
	}
	if err := round.Deal(); err != nil {
		return RoundResult{}, err
	}
	if err := e.collectActions(ctx, round, decider); err != nil {
		return RoundResult{}, err
	}

	if round.Phase() != PhaseComplete || !round.Outcome().Terminal() {
		return RoundResult{}, fmt.Errorf("%w: round %s ended in %s with %s",
			ErrUnreachableOutcome, round.ID(), round.Phase(), round.Outcome())
	}
	return round.Result(), nil
}

func (e *Engine) collectBet(ctx context.Context, round *Round, bettor Bettor) error {
	var lastErr error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		amount, err := bettor.PlaceBet(ctx, BetRequest{
			RoundID: round.ID(),
			MinBet:  e.cfg.MinBet,
			MaxBet:  e.cfg.MaxBet,
			Balance: e.player.Balance(),
			Attempt: attempt,
			LastErr: lastErr,
		})
		if err != nil {
			return fmt.Errorf("bettor: %w", err)
		}

		err = round.PlaceBet(amount)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrInvalidBet) {
			return err
		}
		e.logger.Debug("Bet refused", "round", round.ID(), "amount", amount, "error", err)
		lastErr = err
	}

	e.logger.Warn("Giving up on bet", "round", round.ID(), "attempts", e.cfg.MaxAttempts)
	return fmt.Errorf("%w: %w", ErrTooManyAttempts, lastErr)
}

func (e *Engine) collectActions(ctx context.Context, round *Round, decider Decider) error {
	var lastErr error
	attempt := 0

	for round.Phase() == PhasePlayerTurn {
		attempt++
		if attempt > e.cfg.MaxAttempts {
			e.logger.Warn("Giving up on action", "round", round.ID(), "attempts", e.cfg.MaxAttempts)
			return fmt.Errorf("%w: %w", ErrTooManyAttempts, lastErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := decider.ChooseAction(ctx, ActionRequest{
			RoundID:   round.ID(),
			Legal:     round.LegalActions(),
			Player:    e.player.Hand.Snapshot(),
			Dealer:    e.dealer.Hand.Snapshot(),
			DrawCount: round.DrawCount(),
			Bet:       e.player.Bet(),
			Balance:   e.player.Balance(),
			Attempt:   attempt,
			LastErr:   lastErr,
		})
		if err != nil {
			return fmt.Errorf("decider: %w", err)
		}

		if err := round.Act(action); err != nil {
			if !errors.Is(err, ErrIllegalAction) {
				return err
			}
			e.logger.Debug("Action refused", "round", round.ID(), "action", action, "error", err)
			lastErr = err
			continue
		}

		attempt = 0
		lastErr = nil
		if action == Split {
			lastErr = ErrSplitUnsupported
		}
	}
	return nil
}
