package game

import "context"

// BetRequest describes the bet a Bettor is asked for
type BetRequest struct {
	RoundID string
	MinBet  int
	MaxBet  int
	Balance int
	Attempt int   // 1 on the first request of a round
	LastErr error // why the previous amount was refused, if any
}

// ActionRequest is the read-only view a Decider receives for one decision
type ActionRequest struct {
	RoundID   string
	Legal     ActionSet
	Player    HandSnapshot
	Dealer    HandSnapshot // hole card masked until the dealer reveals
	DrawCount int
	Bet       int
	Balance   int
	Attempt   int
	LastErr   error
}

// Bettor supplies the stake for a round. Invalid amounts are refused with
// ErrInvalidBet and the Bettor is asked again.
type Bettor interface {
	PlaceBet(ctx context.Context, req BetRequest) (int, error)
}

// Decider chooses the player's action from the legal set. Agents only
// make decisions; the round applies them and owns all state.
type Decider interface {
	ChooseAction(ctx context.Context, req ActionRequest) (Action, error)
}

// BettorFunc adapts a function to the Bettor interface
type BettorFunc func(ctx context.Context, req BetRequest) (int, error)

func (f BettorFunc) PlaceBet(ctx context.Context, req BetRequest) (int, error) {
	return f(ctx, req)
}

// DeciderFunc adapts a function to the Decider interface
type DeciderFunc func(ctx context.Context, req ActionRequest) (Action, error)

func (f DeciderFunc) ChooseAction(ctx context.Context, req ActionRequest) (Action, error) {
	return f(ctx, req)
}
