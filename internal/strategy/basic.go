package strategy

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// BasicStrategy plays the standard single-hand chart for a dealer who
// stands on soft 17. Pairs are played as hard totals because splits are
// declined. Doubles fall back to hitting (or standing on soft 18) when a
// double is not legal.
type BasicStrategy struct {
	logger *log.Logger
}

// NewBasicStrategy creates a new BasicStrategy
func NewBasicStrategy(logger *log.Logger) *BasicStrategy {
	return &BasicStrategy{logger: logger}
}

func (b *BasicStrategy) ChooseAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	up, ok := req.Dealer.Upcard()
	if !ok {
		return pick(req.Legal, game.DealerPolicy(req.Player.Best), game.Stand), nil
	}

	dealer := upcardValue(up)
	total := req.Player.Best

	var action game.Action
	if req.Player.IsSoft() {
		action = softDecision(req.Legal, total, dealer)
	} else {
		action = hardDecision(req.Legal, total, dealer)
	}

	b.logger.Debug("basic strategy decision",
		"total", total,
		"soft", req.Player.IsSoft(),
		"dealer", up.Code(),
		"action", action)
	return action, nil
}

// upcardValue counts an ace as 11, the way strategy charts index it
func upcardValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Value()
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

func hardDecision(legal game.ActionSet, total, dealer int) game.Action {
	switch {
	case total >= 17:
		return pick(legal, game.Stand)
	case total >= 13:
		if between(dealer, 2, 6) {
			return pick(legal, game.Stand)
		}
		return pick(legal, game.Hit)
	case total == 12:
		if between(dealer, 4, 6) {
			return pick(legal, game.Stand)
		}
		return pick(legal, game.Hit)
	case total == 11:
		if dealer != 11 {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	case total == 10:
		if between(dealer, 2, 9) {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	case total == 9:
		if between(dealer, 3, 6) {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	default:
		return pick(legal, game.Hit)
	}
}

func softDecision(legal game.ActionSet, total, dealer int) game.Action {
	switch {
	case total >= 19:
		return pick(legal, game.Stand)
	case total == 18:
		switch {
		case between(dealer, 3, 6):
			return pick(legal, game.Double, game.Stand)
		case dealer == 2 || dealer == 7 || dealer == 8:
			return pick(legal, game.Stand)
		default:
			return pick(legal, game.Hit)
		}
	case total == 17:
		if between(dealer, 3, 6) {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	case total >= 15:
		if between(dealer, 4, 6) {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	default:
		if between(dealer, 5, 6) {
			return pick(legal, game.Double, game.Hit)
		}
		return pick(legal, game.Hit)
	}
}
