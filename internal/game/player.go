package game

import "fmt"

// DealerStandsOn is the lowest total the dealer stands on. The dealer
// stands on every 17, soft or hard.
const DealerStandsOn = 17

// Player is the single seat at the table
type Player struct {
	Hand    Hand
	balance int
	bet     int
}

// NewPlayer creates a player with the given token balance
func NewPlayer(balance int) *Player {
	return &Player{balance: balance}
}

// Balance returns the player's tokens not currently staked
func (p *Player) Balance() int {
	return p.balance
}

// Bet returns the stake for the current round
func (p *Player) Bet() int {
	return p.bet
}

// Reset clears the hand and stake for the next round
func (p *Player) Reset() {
	p.Hand.Reset()
	p.bet = 0
}

// PlaceBet validates the amount against the table limits and the balance,
// then moves it from the balance into the stake.
func (p *Player) PlaceBet(amount, minBet, maxBet int) error {
	switch {
	case amount < minBet:
		return fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidBet, amount, minBet)
	case amount > maxBet:
		return fmt.Errorf("%w: %d is above the maximum of %d", ErrInvalidBet, amount, maxBet)
	case amount > p.balance:
		return fmt.Errorf("%w: %d exceeds balance of %d", ErrInvalidBet, amount, p.balance)
	}

	p.balance -= amount
	p.bet = amount
	return nil
}

// CanDouble reports whether the balance covers a second stake
func (p *Player) CanDouble() bool {
	return p.bet > 0 && p.balance >= p.bet
}

// doubleDown takes a second stake equal to the first
func (p *Player) doubleDown() error {
	if !p.CanDouble() {
		return fmt.Errorf("%w: balance %d cannot cover a double of %d", ErrIllegalAction, p.balance, p.bet)
	}
	p.balance -= p.bet
	p.bet *= 2
	return nil
}

// credit returns tokens to the balance at payout time
func (p *Player) credit(amount int) {
	p.balance += amount
}

// LegalActions returns the actions open to the player. Hit and stand are
// always open; double and split only on the first decision of a round.
func (p *Player) LegalActions(drawCount int) ActionSet {
	actions := ActionSet{Hit, Stand}
	if drawCount == 1 {
		if p.CanDouble() {
			actions = append(actions, Double)
		}
		if p.Hand.IsPair() {
			actions = append(actions, Split)
		}
	}
	return actions
}

// Dealer plays a fixed policy against the player
type Dealer struct {
	Hand Hand
}

// NewDealer creates a dealer with an empty hand
func NewDealer() *Dealer {
	return &Dealer{}
}

// Reset clears the dealer's hand for the next round
func (d *Dealer) Reset() {
	d.Hand.Reset()
}

// ChooseAction hits below 17 and stands otherwise
func (d *Dealer) ChooseAction() Action {
	return DealerPolicy(d.Hand.Best())
}

// DealerPolicy is the dealer's rule applied to a best total
func DealerPolicy(best int) Action {
	if best < DealerStandsOn {
		return Hit
	}
	return Stand
}
