package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart     EventType = "round_start"
	EventTypeBetPlaced      EventType = "bet_placed"
	EventTypeHands          EventType = "hands"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeSplitDeclined  EventType = "split_declined"
	EventTypeDealerPeek     EventType = "dealer_peek"
	EventTypeRoundEnd       EventType = "round_end"
	EventTypeShoeReshuffled EventType = "shoe_reshuffled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
