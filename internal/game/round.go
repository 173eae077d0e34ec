package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

// Phase is a state of the round state machine
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseInitialDeal
	PhasePlayerTurn
	PhaseDealerReveal
	PhaseDealerTurn
	PhaseCompare
	PhasePayout
	PhaseComplete
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseInitialDeal:
		return "initial-deal"
	case PhasePlayerTurn:
		return "player-turn"
	case PhaseDealerReveal:
		return "dealer-reveal"
	case PhaseDealerTurn:
		return "dealer-turn"
	case PhaseCompare:
		return "compare"
	case PhasePayout:
		return "payout"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// PeekRule controls when the dealer's hole card is checked for blackjack
type PeekRule int

const (
	// PeekBeforePlay checks the hole card before the player's first
	// decision; a dealer blackjack beats any player hand except 21.
	PeekBeforePlay PeekRule = iota
	// PeekAfterReveal only discovers a dealer blackjack when the hole card
	// is turned over after the player's turn.
	PeekAfterReveal
)

// String returns the string representation of a peek rule
func (r PeekRule) String() string {
	switch r {
	case PeekBeforePlay:
		return "before-play"
	case PeekAfterReveal:
		return "after-reveal"
	default:
		return "unknown"
	}
}

// ParsePeekRule parses the config/CLI spelling of a peek rule
func ParsePeekRule(s string) (PeekRule, error) {
	switch s {
	case "before-play", "":
		return PeekBeforePlay, nil
	case "after-reveal":
		return PeekAfterReveal, nil
	default:
		return 0, fmt.Errorf("%w: unknown peek rule %q", ErrInvalidConfig, s)
	}
}

// RoundResult summarises a settled round
type RoundResult struct {
	RoundID         string
	Outcome         Outcome
	Bet             int // final stake, doubled if the player doubled
	Payout          int // tokens credited back at settlement
	Net             int // Payout - Bet
	Balance         int // balance after settlement
	DrawCount       int
	Doubled         bool
	SplitRequested  bool
	DealerBlackjack bool // settled by the hole-card peek
	Player          HandSnapshot
	Dealer          HandSnapshot
}

// Round drives one round through its phases. The player-facing
// transitions (PlaceBet, Deal, Act) take externally supplied decisions;
// the dealer's turn, comparison and payout run automatically once the
// player's turn ends.
type Round struct {
	id     string
	phase  Phase
	minBet int
	maxBet int
	peek   PeekRule

	shoe   *deck.Shoe
	player *Player
	dealer *Dealer

	drawCount       int
	outcome         Outcome
	payout          int
	doubled         bool
	splitDeclined   bool
	peeked          bool
	dealerBlackjack bool
	playerOn21      bool

	publish func(GameEvent)
	now     func() time.Time
	logger  *log.Logger
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// Phase returns the current state of the round
func (r *Round) Phase() Phase { return r.phase }

// DrawCount returns the number of player draw events; the initial deal
// counts as one.
func (r *Round) DrawCount() int { return r.drawCount }

// Outcome returns Continue until the round settles
func (r *Round) Outcome() Outcome { return r.outcome }

// PlaceBet stakes the amount and moves the round to the initial deal
func (r *Round) PlaceBet(amount int) error {
	if r.phase != PhaseBetting {
		return fmt.Errorf("%w: bet during %s", ErrWrongPhase, r.phase)
	}
	if err := r.player.PlaceBet(amount, r.minBet, r.maxBet); err != nil {
		return err
	}

	r.logger.Debug("Bet placed", "round", r.id, "bet", amount, "balance", r.player.Balance())
	r.phase = PhaseInitialDeal
	r.publish(BetPlacedEvent{RoundID: r.id, Bet: amount, Balance: r.player.Balance(), timestamp: r.now()})
	return nil
}

// Deal deals the opening cards in order: dealer up, player up, dealer
// hole card down, player up. A natural, a bust (impossible on two cards
// but checked all the same) or a dealer blackjack found by the peek ends
// the player's turn immediately.
func (r *Round) Deal() error {
	if r.phase != PhaseInitialDeal {
		return fmt.Errorf("%w: deal during %s", ErrWrongPhase, r.phase)
	}

	steps := []struct {
		hand   *Hand
		faceUp bool
	}{
		{&r.dealer.Hand, true},
		{&r.player.Hand, true},
		{&r.dealer.Hand, false},
		{&r.player.Hand, true},
	}
	for _, s := range steps {
		if err := r.draw(s.hand, s.faceUp); err != nil {
			return err
		}
	}

	r.drawCount = 1
	r.phase = PhasePlayerTurn
	r.publish(r.handsEvent())
	return r.resolvePlayer()
}

// LegalActions returns the actions the player may choose now, or nil
// outside the player's turn.
func (r *Round) LegalActions() ActionSet {
	if r.phase != PhasePlayerTurn {
		return nil
	}
	legal := r.player.LegalActions(r.drawCount)
	if r.splitDeclined {
		legal = legal.Without(Split)
	}
	return legal
}

// Act applies the player's action. Actions outside the legal set fail
// with ErrIllegalAction and leave the round unchanged.
func (r *Round) Act(action Action) error {
	if r.phase != PhasePlayerTurn {
		return fmt.Errorf("%w: %s during %s", ErrWrongPhase, action, r.phase)
	}
	legal := r.LegalActions()
	if !legal.Contains(action) {
		return fmt.Errorf("%w: %s not in [%s]", ErrIllegalAction, action, legal)
	}

	switch action {
	case Stand:
		r.publishAction(action)
		return r.finishPlayerTurn()

	case Hit:
		if err := r.draw(&r.player.Hand, true); err != nil {
			return err
		}
		r.drawCount++
		r.publishAction(action)
		r.publish(r.handsEvent())
		return r.resolvePlayer()

	case Double:
		if err := r.player.doubleDown(); err != nil {
			return err
		}
		r.doubled = true
		if err := r.draw(&r.player.Hand, true); err != nil {
			return err
		}
		r.drawCount++
		r.publishAction(action)
		r.publish(r.handsEvent())

		// Exactly one card on a double, whatever it brings.
		if IsBust(r.player.Hand.Best()) {
			r.revealDealer()
			return r.settle(Lose)
		}
		return r.finishPlayerTurn()

	case Split:
		r.splitDeclined = true
		r.logger.Warn("Split requested but not supported", "round", r.id)
		r.publish(SplitDeclinedEvent{RoundID: r.id, Err: ErrSplitUnsupported, timestamp: r.now()})
		return nil

	default:
		return fmt.Errorf("%w: unhandled action %s", ErrUnreachableOutcome, action)
	}
}

// Result returns the summary of the round. It is only final once the
// round is complete.
func (r *Round) Result() RoundResult {
	return RoundResult{
		RoundID:         r.id,
		Outcome:         r.outcome,
		Bet:             r.player.Bet(),
		Payout:          r.payout,
		Net:             r.payout - r.player.Bet(),
		Balance:         r.player.Balance(),
		DrawCount:       r.drawCount,
		Doubled:         r.doubled,
		SplitRequested:  r.splitDeclined,
		DealerBlackjack: r.dealerBlackjack,
		Player:          r.player.Hand.Snapshot(),
		Dealer:          r.dealer.Hand.Snapshot(),
	}
}

func (r *Round) draw(hand *Hand, faceUp bool) error {
	card, err := r.shoe.Draw()
	if err != nil {
		return fmt.Errorf("round %s: %w", r.id, err)
	}
	if faceUp {
		card.Reveal()
	}
	hand.Add(card)
	return nil
}

func (r *Round) publishAction(action Action) {
	r.logger.Debug("Player action", "round", r.id, "action", action, "draws", r.drawCount)
	r.publish(PlayerActionEvent{
		RoundID:   r.id,
		Action:    action,
		DrawCount: r.drawCount,
		Bet:       r.player.Bet(),
		timestamp: r.now(),
	})
}

func (r *Round) handsEvent() HandsEvent {
	return HandsEvent{
		RoundID:   r.id,
		Phase:     r.phase,
		Player:    r.player.Hand.Snapshot(),
		Dealer:    r.dealer.Hand.Snapshot(),
		timestamp: r.now(),
	}
}

// resolvePlayer checks the player's hand after every draw
func (r *Round) resolvePlayer() error {
	best := r.player.Hand.Best()

	if r.drawCount == 1 && r.peek == PeekBeforePlay && !r.peeked {
		r.peeked = true
		if best != Target && r.dealer.Hand.Peek() == Target {
			r.dealerBlackjack = true
			r.logger.Debug("Dealer blackjack on peek", "round", r.id)
			r.publish(DealerPeekEvent{RoundID: r.id, timestamp: r.now()})
			r.revealDealer()
			return r.settle(Lose)
		}
	}

	switch {
	case best == Target:
		r.playerOn21 = true
		return r.finishPlayerTurn()
	case IsBust(best):
		// The dealer shows the hole card but never draws against a bust.
		r.revealDealer()
		return r.settle(Lose)
	default:
		return nil
	}
}

func (r *Round) revealDealer() {
	r.phase = PhaseDealerReveal
	r.dealer.Hand.RevealAll()
	r.publish(r.handsEvent())
}

// finishPlayerTurn runs the dealer's reveal and turn, then settles
func (r *Round) finishPlayerTurn() error {
	r.revealDealer()

	r.phase = PhaseDealerTurn
	// A player on 21 only faces the revealed hand; a dealer 21 there pushes.
	if !r.playerOn21 {
		for r.dealer.ChooseAction() == Hit {
			if err := r.draw(&r.dealer.Hand, true); err != nil {
				return err
			}
			r.publish(r.handsEvent())
		}
	}

	r.phase = PhaseCompare
	outcome, err := r.compare()
	if err != nil {
		return err
	}
	return r.settle(outcome)
}

func (r *Round) compare() (Outcome, error) {
	playerBest := r.player.Hand.Best()
	dealerBest := r.dealer.Hand.Best()

	switch {
	case playerBest == Target && dealerBest != Target && r.drawCount == 1:
		return Blackjack, nil
	case IsBust(dealerBest):
		return Win, nil
	case playerBest > dealerBest:
		return Win, nil
	case playerBest < dealerBest:
		return Lose, nil
	case playerBest == dealerBest:
		return Push, nil
	default:
		return Continue, fmt.Errorf("%w: player %d vs dealer %d", ErrUnreachableOutcome, playerBest, dealerBest)
	}
}

func (r *Round) settle(outcome Outcome) error {
	r.phase = PhasePayout
	payout, err := outcome.Payout(r.player.Bet())
	if err != nil {
		return err
	}

	r.outcome = outcome
	r.payout = payout
	r.player.credit(payout)
	r.phase = PhaseComplete

	r.logger.Debug("Round settled",
		"round", r.id,
		"outcome", outcome,
		"bet", r.player.Bet(),
		"payout", payout,
		"balance", r.player.Balance())
	r.publish(RoundEndEvent{Result: r.Result(), timestamp: r.now()})
	return nil
}
