package game

import "fmt"

// Outcome is the result code of a round. Every round starts at Continue
// and settles on exactly one of the terminal outcomes.
type Outcome int

const (
	Continue Outcome = iota
	Blackjack
	Win
	Lose
	Push
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Blackjack:
		return "blackjack"
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome settles a round
func (o Outcome) Terminal() bool {
	switch o {
	case Blackjack, Win, Lose, Push:
		return true
	default:
		return false
	}
}

// Payout returns the tokens credited back to the player for a settled
// round. The stake has already been taken at bet time, so a loss pays
// nothing and a push returns the stake. Blackjack pays 3:2, rounded down.
func (o Outcome) Payout(bet int) (int, error) {
	switch o {
	case Blackjack:
		return bet * 5 / 2, nil
	case Win:
		return bet * 2, nil
	case Lose:
		return 0, nil
	case Push:
		return bet, nil
	default:
		return 0, fmt.Errorf("%w: no payout for outcome %s", ErrUnreachableOutcome, o)
	}
}

// ParseOutcome parses the string form of a terminal outcome
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range []Outcome{Blackjack, Win, Lose, Push} {
		if s == o.String() {
			return o, nil
		}
	}
	return Continue, fmt.Errorf("%w: unknown outcome %q", ErrUnreachableOutcome, s)
}
