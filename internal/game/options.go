package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/roundid"
)

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	rng      *rand.Rand
	shoe     *deck.Shoe
	logger   *log.Logger
	eventBus EventBus
	clock    quartz.Clock
	ids      *roundid.Generator
}

// WithRNG shuffles the shoe (and derives round IDs) from the given source.
//
//	// Production - time-seeded RNG
//	e, err := game.NewEngine(cfg, game.WithRNG(randutil.New(time.Now().UnixNano())))
//
//	// Testing - deterministic RNG
//	e, err := game.NewEngine(cfg, game.WithRNG(randutil.New(42)))
func WithRNG(rng *rand.Rand) Option {
	return func(c *engineConfig) {
		c.rng = rng
	}
}

// WithShoe plays from a prepared shoe, such as a stacked shoe in tests.
// This overrides the deck count and shuffle limit in Config.
func WithShoe(shoe *deck.Shoe) Option {
	return func(c *engineConfig) {
		c.shoe = shoe
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithEventBus publishes round events on the given bus
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) {
		c.eventBus = bus
	}
}

// WithClock sets the clock used for event timestamps and round IDs
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithRoundIDs sets the round ID generator
func WithRoundIDs(ids *roundid.Generator) Option {
	return func(c *engineConfig) {
		c.ids = ids
	}
}
