// Package game implements a single-player blackjack round engine.
//
// The main type is Engine, which owns a multi-deck shoe, the player and
// the dealer, and plays rounds through an explicit state machine:
//
//	betting → initial deal → player turn → dealer reveal → dealer turn → compare → payout
//
// # Basic Usage
//
// Play a round with externally supplied decisions:
//
//	e, err := game.NewEngine(game.DefaultConfig(), game.WithRNG(randutil.New(42)))
//	result, err := e.PlayRound(ctx, bettor, decider)
//	if e.NeedsReshuffle() {
//	    e.Reshuffle()
//	}
//
// Bettor and Decider are the only inputs; invalid bets (ErrInvalidBet)
// and illegal actions (ErrIllegalAction) are requested again. Display is
// a subscriber on the EventBus, which receives a HandsEvent after every
// state transition.
//
// # Step-by-step Rounds
//
// NewRound exposes the transitions directly, which tests and alternative
// front ends use to drive a round one decision at a time:
//
//	r := e.NewRound()
//	_ = r.PlaceBet(10)
//	_ = r.Deal()
//	for r.Phase() == game.PhasePlayerTurn {
//	    _ = r.Act(game.Stand)
//	}
//	result := r.Result()
//
// # Hand Values
//
// PossibleTotals returns every total a hand can make, branching on each
// revealed ace; face-down cards count as zero. BestValue picks the highest
// total up to 21, or Bust.
package game
