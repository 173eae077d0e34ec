package game

import "time"

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a new round opens for betting
type RoundStartEvent struct {
	RoundID       string
	Balance       int
	CardsInShoe   int
	RoundsStarted int
	timestamp     time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// BetPlacedEvent is published once the stake is accepted
type BetPlacedEvent struct {
	RoundID   string
	Bet       int
	Balance   int
	timestamp time.Time
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }
func (e BetPlacedEvent) Timestamp() time.Time { return e.timestamp }

// HandsEvent carries both hands after every state transition
type HandsEvent struct {
	RoundID   string
	Phase     Phase
	Player    HandSnapshot
	Dealer    HandSnapshot
	timestamp time.Time
}

func (e HandsEvent) EventType() EventType { return EventTypeHands }
func (e HandsEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when the player's action is applied
type PlayerActionEvent struct {
	RoundID   string
	Action    Action
	DrawCount int
	Bet       int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// SplitDeclinedEvent is published when the player asks to split
type SplitDeclinedEvent struct {
	RoundID   string
	Err       error
	timestamp time.Time
}

func (e SplitDeclinedEvent) EventType() EventType { return EventTypeSplitDeclined }
func (e SplitDeclinedEvent) Timestamp() time.Time { return e.timestamp }

// DealerPeekEvent is published when the dealer checks the hole card and
// finds a blackjack before the player acts.
type DealerPeekEvent struct {
	RoundID   string
	timestamp time.Time
}

func (e DealerPeekEvent) EventType() EventType { return EventTypeDealerPeek }
func (e DealerPeekEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when a round settles
type RoundEndEvent struct {
	Result    RoundResult
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// ShoeReshuffledEvent is published after the shoe is rebuilt
type ShoeReshuffledEvent struct {
	Cards     int
	timestamp time.Time
}

func (e ShoeReshuffledEvent) EventType() EventType { return EventTypeShoeReshuffled }
func (e ShoeReshuffledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery
// is synchronous and in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
