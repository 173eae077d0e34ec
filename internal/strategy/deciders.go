package strategy

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// DealerMimic plays the player's hand with the dealer's fixed policy:
// hit below 17, stand otherwise.
type DealerMimic struct {
	logger *log.Logger
}

// NewDealerMimic creates a new DealerMimic
func NewDealerMimic(logger *log.Logger) *DealerMimic {
	return &DealerMimic{logger: logger}
}

func (d *DealerMimic) ChooseAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	action := pick(req.Legal, game.DealerPolicy(req.Player.Best), game.Stand)
	d.logger.Debug("dealer-mimic decision", "total", req.Player.Best, "action", action)
	return action, nil
}

// AlwaysStand stands on the dealt hand
type AlwaysStand struct {
	logger *log.Logger
}

// NewAlwaysStand creates a new AlwaysStand
func NewAlwaysStand(logger *log.Logger) *AlwaysStand {
	return &AlwaysStand{logger: logger}
}

func (a *AlwaysStand) ChooseAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	a.logger.Debug("always-stand decision", "total", req.Player.Best, "action", game.Stand)
	return game.Stand, nil
}

// Random picks a uniformly random legal action. Split is never chosen
// since it is always declined.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a new Random decider
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger}
}

func (r *Random) ChooseAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	legal := withoutSplit(req.Legal)
	if len(legal) == 0 {
		return game.Stand, nil
	}
	action := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("random decision", "legal", legal, "action", action)
	return action, nil
}

// FlatBettor stakes the same amount every round, clamped to the table
// limits and the player's balance.
type FlatBettor struct {
	Amount int
}

func (b FlatBettor) PlaceBet(ctx context.Context, req game.BetRequest) (int, error) {
	amount := max(b.Amount, req.MinBet)
	amount = min(amount, req.MaxBet, req.Balance)
	return amount, nil
}
