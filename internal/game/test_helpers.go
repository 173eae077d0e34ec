package game

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/roundid"
)

// StackedDeal lays out shoe cards so the opening deal gives the player and
// dealer the named cards. player and dealer hold two cards each (the
// dealer's second card is the hole card); rest lists later draws in order.
//
//	cards := StackedDeal("AS KH", "9C 7D", "5H")
func StackedDeal(player, dealer, rest string) ([]deck.Card, error) {
	p, err := deck.ParseCards(player)
	if err != nil {
		return nil, err
	}
	d, err := deck.ParseCards(dealer)
	if err != nil {
		return nil, err
	}
	if len(p) != 2 || len(d) != 2 {
		return nil, fmt.Errorf("opening deal needs two cards each, got player %d dealer %d", len(p), len(d))
	}
	r, err := deck.ParseCards(rest)
	if err != nil {
		return nil, err
	}

	cards := []deck.Card{d[0], p[0], d[1], p[1]}
	return append(cards, r...), nil
}

// TestEngineOption configures test engine creation
type TestEngineOption func(*testEngineBuilder)

type testEngineBuilder struct {
	config   Config
	eventBus EventBus
	clock    quartz.Clock
}

// WithTestConfig replaces the default test configuration
func WithTestConfig(cfg Config) TestEngineOption {
	return func(b *testEngineBuilder) { b.config = cfg }
}

// WithBalance sets the player's starting balance
func WithBalance(balance int) TestEngineOption {
	return func(b *testEngineBuilder) { b.config.StartingBalance = balance }
}

// WithPeekRule sets the hole-card peek rule
func WithPeekRule(rule PeekRule) TestEngineOption {
	return func(b *testEngineBuilder) { b.config.PeekRule = rule }
}

// WithTestEventBus publishes to the given bus
func WithTestEventBus(bus EventBus) TestEngineOption {
	return func(b *testEngineBuilder) { b.eventBus = bus }
}

// NewTestEngine creates an engine dealing the given stacked cards, with
// sensible defaults: 1000 tokens, bets 1-500, peek before play.
func NewTestEngine(cards []deck.Card, opts ...TestEngineOption) (*Engine, error) {
	builder := &testEngineBuilder{
		config: Config{
			Decks:           1,
			ShuffleLimit:    0,
			MinBet:          1,
			MaxBet:          500,
			StartingBalance: 1000,
			PeekRule:        PeekBeforePlay,
			MaxAttempts:     5,
		},
		eventBus: NewEventBus(),
		clock:    quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(builder)
	}

	shoe, err := deck.NewStackedShoe(cards, 0)
	if err != nil {
		return nil, err
	}

	return NewEngine(builder.config,
		WithShoe(shoe),
		WithEventBus(builder.eventBus),
		WithClock(builder.clock),
		WithRoundIDs(roundid.NewGenerator(builder.clock, randutil.New(1))),
		WithLogger(log.New(io.Discard)),
	)
}

// FixedBettor always bets the same amount
type FixedBettor int

func (b FixedBettor) PlaceBet(ctx context.Context, req BetRequest) (int, error) {
	return int(b), nil
}

// ScriptedBettor returns the scripted amounts in order, then repeats the last
type ScriptedBettor struct {
	Amounts []int
	Calls   int
}

func (b *ScriptedBettor) PlaceBet(ctx context.Context, req BetRequest) (int, error) {
	if len(b.Amounts) == 0 {
		return 0, fmt.Errorf("no scripted bets")
	}
	i := min(b.Calls, len(b.Amounts)-1)
	b.Calls++
	return b.Amounts[i], nil
}

// ScriptedDecider plays a fixed sequence of actions and stands once the
// script runs out. It records every request it receives.
type ScriptedDecider struct {
	Actions  []Action
	Requests []ActionRequest
}

func (d *ScriptedDecider) ChooseAction(ctx context.Context, req ActionRequest) (Action, error) {
	d.Requests = append(d.Requests, req)
	if len(d.Actions) == 0 {
		return Stand, nil
	}
	action := d.Actions[0]
	d.Actions = d.Actions[1:]
	return action, nil
}

// EventRecorder captures published events
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the captured events in publish order
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]GameEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the type of each captured event in publish order
func (r *EventRecorder) Types() []EventType {
	events := r.Events()
	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.EventType()
	}
	return types
}
