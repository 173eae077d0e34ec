package game

import (
	"errors"

	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrInvalidBet is returned when a bet is outside the table limits or
	// exceeds the player's balance. Bettors are asked again.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrIllegalAction is returned when the chosen action is not in the
	// legal set for the current turn. Deciders are asked again.
	ErrIllegalAction = errors.New("illegal action")

	// ErrSplitUnsupported marks a split request. Splitting is accepted as a
	// legal choice but never played out.
	ErrSplitUnsupported = errors.New("split is not supported")

	// ErrEmptyShoe is returned when the shoe runs dry mid-round
	ErrEmptyShoe = deck.ErrEmptyShoe

	// ErrUnreachableOutcome signals an internal consistency failure in the
	// round state machine.
	ErrUnreachableOutcome = errors.New("unreachable outcome")

	// ErrInvalidConfig is returned by NewEngine for out-of-range parameters
	ErrInvalidConfig = errors.New("invalid engine configuration")

	// ErrWrongPhase is returned when a round transition is requested out of order
	ErrWrongPhase = errors.New("operation not allowed in this phase")

	// ErrTooManyAttempts is returned when a bettor or decider keeps
	// supplying invalid input.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)
